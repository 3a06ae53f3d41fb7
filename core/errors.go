package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// NotFoundError is returned when a record does not exist.
type NotFoundError struct {
	Entity string
}

func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

func (err NotFoundError) Error() string {
	return err.Entity + " not found"
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

// OperationError wraps a storage backend failure.
type OperationError struct {
	Op  string
	Err error
}

func NewOperationError(op string, err error) error {
	return &OperationError{Op: op, Err: err}
}

func (err OperationError) Error() string {
	return fmt.Sprintf("%s: %v", err.Op, err.Err)
}

func (err OperationError) Unwrap() error { return err.Err }

// ConnectivityError is returned by the startup database probe.
// It is never surfaced to API clients.
type ConnectivityError struct {
	Stage string
	Err   error
}

func NewConnectivityError(stage string, err error) error {
	return &ConnectivityError{Stage: stage, Err: err}
}

func (err ConnectivityError) Error() string {
	return fmt.Sprintf("database unavailable (%s): %v", err.Stage, err.Err)
}

func (err ConnectivityError) Unwrap() error { return err.Err }
