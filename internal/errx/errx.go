// Package errx provides small helpers for attaching context to sentinel
// errors while keeping them matchable with errors.Is.
package errx

import "fmt"

// Wrap chains a cause onto a sentinel: "sentinel: cause".
// Both remain visible to errors.Is / errors.As.
func Wrap(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// With appends formatted detail to a sentinel. The format string is
// appended verbatim, so callers control the separator:
//
//	errx.With(ErrPathNotExist, ": %s", raw)
func With(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w"+format, append([]any{sentinel}, args...)...)
}
