package apperror

// Stable machine-readable codes carried in every error envelope.
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"

	CodeInternalError = "INTERNAL_ERROR"
)
