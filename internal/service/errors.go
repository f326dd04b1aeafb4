package service

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrProductNotFound    = errors.New("product not found")
	ErrForbidden          = errors.New("product not found or not owned by you")
	ErrUploadsDisabled    = errors.New("image uploads are not configured")
)

// ValidationError carries the human-readable reason and matches ErrValidation
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}
