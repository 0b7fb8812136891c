package action

import (
	"errors"
	"fmt"
	"strings"

	"wayfarer/internal/app/ports"
)

var ErrValidation = errors.New("validation failed")

// ValidationError names the missing parameters or collaborators, or carries
// a reason when the input is present but unusable.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "missing required parameters: " + strings.Join(e.Missing, ", ")
	}
	if e.Reason != "" {
		return e.Reason
	}
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// UnavailableError reports collaborators an action needs but the engine was
// built without.
type UnavailableError struct {
	Collaborators []Collaborator
}

func (e *UnavailableError) Error() string {
	names := make([]string, 0, len(e.Collaborators))
	for _, c := range e.Collaborators {
		names = append(names, string(c))
	}
	return "action unavailable, missing collaborators: " + strings.Join(names, ", ")
}

func (e *UnavailableError) Unwrap() error {
	return ErrValidation
}

// NotFoundError carries the user-facing name of what was not found.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return e.What + " not found"
}

func (e *NotFoundError) Unwrap() error {
	return ports.ErrNotFound
}

func notFound(format string, args ...any) error {
	return &NotFoundError{What: fmt.Sprintf(format, args...)}
}
