package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeParse      = "PARSE_ERROR"
	ErrCodeWrite      = "WRITE_ERROR"
	ErrCodeProtected  = "PROTECTED_PROFILE"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// AppError represents an application error with a machine-readable error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "PARSE_ERROR")
	Message string // Human-readable error message
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
	}
}

// NewParseError creates a new PARSE_ERROR
func NewParseError(what string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeParse,
		Message: fmt.Sprintf("failed to parse %s", what),
		Err:     err,
	}
}

// NewWriteError creates a new WRITE_ERROR
func NewWriteError(path string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeWrite,
		Message: fmt.Sprintf("failed to write %s", path),
		Err:     err,
	}
}

// NewProtectedError creates a new PROTECTED_PROFILE error
func NewProtectedError(name string) *AppError {
	return &AppError{
		Code:    ErrCodeProtected,
		Message: fmt.Sprintf("profile is protected and cannot be removed: %s", name),
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
	}
}
