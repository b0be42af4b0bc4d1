package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so
// errors.Is(err, ErrNotFound) matches any not-found message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared by every bounded context
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeInvalidState = "INVALID_STATE"
)

// Common domain errors
var (
	ErrInvalidInput = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrNotFound     = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidState = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
)

// InvalidInput returns an INVALID_INPUT error with a formatted message
func InvalidInput(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidInput, fmt.Sprintf(format, args...))
}

// ReferenceNotFound returns a NOT_FOUND error with a formatted message
func ReferenceNotFound(format string, args ...any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf(format, args...))
}

// InvalidState returns an INVALID_STATE error with a formatted message
func InvalidState(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidState, fmt.Sprintf(format, args...))
}
