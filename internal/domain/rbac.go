package domain

// EnforceRequest is one authorization question: may this role perform
// this action on this resource.
type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}
