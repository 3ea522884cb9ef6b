package services

import (
	"errors"
	"fmt"

	"github.com/NCHRD-2025/training-service/internal/validator"
)

// Sentinel errors. Handlers map these onto HTTP status codes; services
// never import net/http.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrForbidden        = errors.New("permission denied")
	ErrNotFound         = errors.New("record not found")
	ErrConflict         = errors.New("conflict with existing record")
)

// ValidationError carries per-field details alongside the sentinel.
type ValidationError struct {
	Errors validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Errors.Error())
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Errors: validator.ValidationErrors{{
			Field:   field,
			Message: message,
			Value:   value,
			Rule:    "business_logic",
		}},
	}
}

// NewValidationErrors wraps validator output.
func NewValidationErrors(errs validator.ValidationErrors) *ValidationError {
	return &ValidationError{Errors: errs}
}

// PermissionError identifies who was denied what.
type PermissionError struct {
	UserID     uint
	ResourceID uint
	Resource   string
	Action     string
	Reason     string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %d cannot %s %s %d: %s",
		e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func (e *PermissionError) Unwrap() error {
	return ErrForbidden
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}
