package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates a request that failed validation.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate indicates a uniqueness conflict.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrTenantMissing occurs when a request carries no tenant scope.
	ErrTenantMissing = errors.New("tenant missing")
	// ErrInsufficientStock occurs when checkout would drive stock negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)
