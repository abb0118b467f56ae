package service

import (
	"errors"
	"fmt"
)

// ErrSubjectNotFound is returned when a task or session references an unknown subject.
var ErrSubjectNotFound = errors.New("subject not found")

// InputError reports a form value that is present but cannot be parsed.
type InputError struct {
	Field string
	Value string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
