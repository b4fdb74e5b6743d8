package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeAlreadyExists    = "ALREADY_EXISTS"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeInvalidOperation = "INVALID_OPERATION"
)

// Validation errors
var (
	ErrEmptyTerm        = NewDomainError(ErrCodeValidation, "search term is empty")
	ErrNotConfigured    = NewDomainError(ErrCodeInvalidOperation, "help search action URL is not configured")
	ErrActionURLEmpty   = NewDomainError(ErrCodeValidation, "please enter a URL")
	ErrActionURLScheme  = NewDomainError(ErrCodeValidation, "the URL must start with http:// or https://")
	ErrActionURLInvalid = NewDomainError(ErrCodeValidation, "please enter a valid URL")
	ErrInvalidRole      = NewDomainError(ErrCodeValidation, "invalid session role")
)

// Not found errors
var (
	ErrTenantNotFound    = NewDomainError(ErrCodeNotFound, "tenant not found")
	ErrSessionNotFound   = NewDomainError(ErrCodeNotFound, "session not found")
	ErrSettingNotFound   = NewDomainError(ErrCodeNotFound, "setting not found")
	ErrSearchLogNotFound = NewDomainError(ErrCodeNotFound, "search log entry not found")
)

// Authorization errors
var (
	ErrInvalidSession  = NewDomainError(ErrCodeUnauthorized, "invalid session token")
	ErrSessionRevoked  = NewDomainError(ErrCodeUnauthorized, "session has been revoked")
	ErrInvalidLogToken = NewDomainError(ErrCodeUnauthorized, "invalid log token")
	ErrManagerRequired = NewDomainError(ErrCodeForbidden, "manager role required")
)
