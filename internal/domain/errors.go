package domain

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user types the cancel sentinel at a prompt.
var ErrCancelled = errors.New("operation cancelled")

// ConnectionError means the initial connection could not be established.
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Driver, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// StatementError means the engine rejected a statement. Op is the gateway
// call shape: execute|query|count|scalar.
type StatementError struct {
	Op  string
	Err error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

// ValidationError is a rejected field value. Msg is shown to the user as is.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}
