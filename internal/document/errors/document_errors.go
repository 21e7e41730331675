package documenterrors

import (
	"net/http"

	"github.com/Qoxxoraliyev/employee-management/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)
	ErrFileMissing = apperror.New(
		apperror.CodeNotFound,
		"Stored file is missing",
		http.StatusNotFound,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"File exceeds the maximum allowed size of 10 MB",
		http.StatusBadRequest,
	)
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"A file is required",
		http.StatusBadRequest,
	)
	ErrInvalidFilePath = apperror.New(
		apperror.CodeInvalidInput,
		"Resolved file path escapes the upload directory",
		http.StatusBadRequest,
	)
)
