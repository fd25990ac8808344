package errors

import "fmt"

// ErrorCode represents a library error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"  // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"        // 404
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"   // 404
	ErrCategoryInUse  ErrorCode = "CATEGORY_IN_USE"  // 409
	ErrParse          ErrorCode = "PARSE_ERROR"      // 422
	ErrValidation     ErrorCode = "VALIDATION_ERROR" // 422
	ErrIO             ErrorCode = "IO_ERROR"         // 500
	ErrInternal       ErrorCode = "INTERNAL"         // 500
)

// LibError represents a structured error with code, status, and details.
type LibError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	cause   error
}

// Error implements the error interface.
func (e *LibError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying OS or decoder error, if any.
func (e *LibError) Unwrap() error {
	return e.cause
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *LibError {
	return &LibError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing prompt, checkpoint, category or snapshot.
func NewNotFound(kind, id string) *LibError {
	return &LibError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, id),
		Details: map[string]any{"kind": kind, "id": id},
	}
}

// NewFileNotFound creates a 404 error for a missing import file.
func NewFileNotFound(path string) *LibError {
	return &LibError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewCategoryInUse creates a 409 error when a category still has items.
func NewCategoryInUse(kind, id string, refs int) *LibError {
	return &LibError{
		Code:    ErrCategoryInUse,
		Status:  409,
		Message: fmt.Sprintf("%s category %q still has %d item(s); delete or move them first", kind, id, refs),
		Details: map[string]any{"kind": kind, "id": id, "references": refs},
	}
}

// NewParse creates a 422 error for input that is not valid JSON.
func NewParse(source string, err error) *LibError {
	msg := "invalid JSON"
	if err != nil {
		msg = fmt.Sprintf("invalid JSON in %s: %v", source, err)
	}
	return &LibError{
		Code:    ErrParse,
		Status:  422,
		Message: msg,
		Details: map[string]any{"source": source},
		cause:   err,
	}
}

// NewValidation creates a 422 error for a document that fails the shape check.
func NewValidation(reason string) *LibError {
	return &LibError{
		Code:    ErrValidation,
		Status:  422,
		Message: reason,
	}
}

// NewIO creates a 500 error for filesystem failures.
func NewIO(op string, err error) *LibError {
	msg := op
	if err != nil {
		msg = fmt.Sprintf("%s: %v", op, err)
	}
	return &LibError{
		Code:    ErrIO,
		Status:  500,
		Message: msg,
		cause:   err,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *LibError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &LibError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		cause:   err,
	}
}

// Is checks if an error is a LibError with the given code.
func Is(err error, code ErrorCode) bool {
	if lErr, ok := err.(*LibError); ok {
		return lErr.Code == code
	}
	return false
}
