package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes used across the service.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION"
	CodeStore             = "STORE"
	CodeRenderUnavailable = "RENDER_UNAVAILABLE"
	CodeRenderFailed      = "RENDER_FAILED"
)

// Common domain errors
var (
	ErrNotFound          = NewDomainError(CodeNotFound, "Resource not found")
	ErrNoValidFields     = NewDomainError(CodeValidation, "No valid fields to update")
	ErrInvalidInput      = NewDomainError(CodeValidation, "Invalid input provided")
	ErrStore             = NewDomainError(CodeStore, "Persistence operation failed")
	ErrRenderUnavailable = NewDomainError(CodeRenderUnavailable, "PDF rendering is not available")
	ErrRenderFailed      = NewDomainError(CodeRenderFailed, "PDF rendering failed")
)
