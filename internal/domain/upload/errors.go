package upload

import (
	"errors"
	"fmt"
)

// Kind tags every error returned by Service.
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindIOFailure    Kind = "io_failure"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrIOFailure    = errors.New("storage failure")

	ErrEmptyFile           = errors.New("file is empty")
	ErrFileTooLarge        = errors.New("file size exceeds maximum limit of 10MB")
	ErrExtensionNotAllowed = errors.New("file type not allowed. Allowed types: jpg, jpeg, png, gif, webp")
)

// Error is the only error type Service hands back to callers.
// errors.Is matches it against ErrInvalidInput / ErrIOFailure by kind, and
// against the wrapped cause (ErrFileTooLarge, *fs.PathError, ...).
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	if e.Reason == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrIOFailure:
		return e.Kind == KindIOFailure
	}
	return false
}

func invalidInput(cause error) error {
	return &Error{Kind: KindInvalidInput, Err: cause}
}

func ioFailure(reason string, cause error) error {
	return &Error{Kind: KindIOFailure, Reason: reason, Err: cause}
}
