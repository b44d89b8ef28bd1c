package services

import (
	"errors"
	"fmt"

	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/internal/validation"
)

// Common service errors
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("duplicate record")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid navigation transition")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// ValidationError carries the violations of a rejected input. It matches
// ErrValidation, and ErrDuplicate when a violation is a duplicate.
type ValidationError struct {
	Result validation.Result
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Result.Error())
}

func (e *ValidationError) Unwrap() []error {
	errs := []error{ErrValidation}
	for _, v := range e.Result.Violations {
		if v.Rule == validation.RuleDuplicate {
			errs = append(errs, ErrDuplicate)
			break
		}
	}
	return errs
}

func newValidationError(result validation.Result) error {
	if result.Valid() {
		return nil
	}
	return &ValidationError{Result: result}
}

// storeError maps store-level errors onto service errors
func storeError(what string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%s: %w", what, ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
