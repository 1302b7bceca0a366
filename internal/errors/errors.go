package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Jotter error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"    // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrDuplicateCategory ErrorCode = "DUPLICATE_CATEGORY" // 409
	ErrCancelled         ErrorCode = "CANCELLED"          // 499
	ErrInternal          ErrorCode = "INTERNAL"           // 500
)

// JotError represents a structured error with code, status, and details.
type JotError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *JotError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *JotError {
	return &JotError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a note cannot be found.
// The store itself never returns it; surfaces that must show a note do.
func NewNotFound(id int64) *JotError {
	return &JotError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("note not found: %d", id),
		Details: map[string]any{"id": id},
	}
}

// NewDuplicateCategory creates a 409 error for an empty or already present category name.
func NewDuplicateCategory(name string) *JotError {
	msg := fmt.Sprintf("category %q already exists", name)
	if name == "" {
		msg = "category name must not be empty"
	}
	return &JotError{
		Code:    ErrDuplicateCategory,
		Status:  409,
		Message: msg,
		Details: map[string]any{"name": name},
	}
}

// NewCancelled creates a 499 error for an operation aborted by its context.
func NewCancelled(op string) *JotError {
	return &JotError{
		Code:    ErrCancelled,
		Status:  499,
		Message: fmt.Sprintf("%s cancelled", op),
		Details: map[string]any{"operation": op},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *JotError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &JotError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is (or wraps) a JotError with the given code.
func Is(err error, code ErrorCode) bool {
	var jErr *JotError
	if stderrors.As(err, &jErr) {
		return jErr.Code == code
	}
	return false
}
