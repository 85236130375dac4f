package main

import (
	"errors"
	"fmt"
)

// Setup errors
var (
	ErrMissingSeparator = errors.New(`missing "--" before child command`)
	ErrNoChildCommand   = errors.New("child command required after \"--\"")
	ErrUnexpectedArg    = errors.New("unexpected argument before \"--\"")
	ErrGrantPath        = errors.New("invalid grant path")
)

// Query errors
var (
	ErrProbeRequired = errors.New("either --path or --host is required")
	ErrProbeConflict = errors.New("--path and --host are mutually exclusive")
	ErrInvalidOp     = errors.New("invalid --op")
	ErrInvalidPort   = errors.New("--port must be between 1 and 65535")
)

// usageError marks argument-shape problems so main can point at
// --help. The offending token is carried in the message.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(sentinel error, format string, args ...any) error {
	if format == "" {
		return &usageError{err: sentinel}
	}
	return &usageError{err: fmt.Errorf("%w"+format, append([]any{sentinel}, args...)...)}
}
