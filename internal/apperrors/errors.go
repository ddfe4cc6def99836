package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the acting user lacks the role required for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates the operation cannot proceed in the resource's current state.
var ErrConflict = errors.New("conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrHierarchyViolation indicates a cross-entity link was attempted on a child
// journal without an equivalent link on its parent journal.
var ErrHierarchyViolation = errors.New("hierarchical integrity violation")

// ErrWrongApprovalLevel indicates the acting user's tier does not match the
// entity's current pending approval level. No state is mutated.
var ErrWrongApprovalLevel = errors.New("wrong approval level")

// ErrEntityNotPending indicates an approve/reject was attempted on an entity
// that has already reached a terminal approval state.
var ErrEntityNotPending = errors.New("entity is not pending approval")

// ErrInvalidInsertion indicates a loop chain insertion targeted a missing edge,
// an unknown journal, or would duplicate a journal already in the loop.
var ErrInvalidInsertion = errors.New("invalid loop insertion")

// AppError wraps an underlying error with a status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
