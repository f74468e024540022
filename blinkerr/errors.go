// Package blinkerr defines the error taxonomy shared by the blink packages.
package blinkerr

import (
	"fmt"

	"github.com/gruntwork-io/go-commons/errors"
)

// InvalidConfiguration is returned when a timing value is out of range, for example a
// non-positive interval or ramp duration.
type InvalidConfiguration struct {
	Field string
	Value int
}

func (err InvalidConfiguration) Error() string {
	return fmt.Sprintf("invalid configuration: %s must be positive, got %d", err.Field, err.Value)
}

// InvalidArgument is returned when a required name or reference is missing.
type InvalidArgument struct {
	Name string
}

func (err InvalidArgument) Error() string {
	return fmt.Sprintf("invalid argument: %s is required", err.Name)
}

// AlreadyDisposed reports an operation on a torn down component. Most operations
// tolerate disposal silently; only calls that cannot degrade to a no-op return it.
type AlreadyDisposed struct {
	Component string
}

func (err AlreadyDisposed) Error() string {
	return fmt.Sprintf("%s has already been disposed", err.Component)
}

// NewInvalidConfiguration returns an InvalidConfiguration with a stack trace attached.
func NewInvalidConfiguration(field string, value int) error {
	return errors.WithStackTrace(InvalidConfiguration{Field: field, Value: value})
}

// NewInvalidArgument returns an InvalidArgument with a stack trace attached.
func NewInvalidArgument(name string) error {
	return errors.WithStackTrace(InvalidArgument{Name: name})
}

// NewAlreadyDisposed returns an AlreadyDisposed with a stack trace attached.
func NewAlreadyDisposed(component string) error {
	return errors.WithStackTrace(AlreadyDisposed{Component: component})
}

func IsInvalidConfiguration(err error) bool {
	_, ok := errors.Unwrap(err).(InvalidConfiguration)
	return ok
}

func IsInvalidArgument(err error) bool {
	_, ok := errors.Unwrap(err).(InvalidArgument)
	return ok
}

func IsAlreadyDisposed(err error) bool {
	_, ok := errors.Unwrap(err).(AlreadyDisposed)
	return ok
}

// RequirePositive returns an InvalidConfiguration for value <= 0.
func RequirePositive(field string, value int) error {
	if value <= 0 {
		return NewInvalidConfiguration(field, value)
	}
	return nil
}
