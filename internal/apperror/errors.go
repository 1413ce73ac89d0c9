package apperror

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Services return these (usually wrapped) and the HTTP
// error handler maps each kind to a status code. Ownership failures are
// reported as ErrNotFound on purpose so callers cannot probe for other users'
// projects.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrStorage          = errors.New("storage failure")
	ErrModelUnavailable = errors.New("model backend unavailable")
)

func InvalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func NotFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

func Storage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

func ModelUnavailable(err error) error {
	if err == nil {
		return ErrModelUnavailable
	}
	return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
}
