package domain

import (
	"errors"
	"fmt"
)

// Error kinds for the read path. Handlers map these onto HTTP statuses;
// everything else is treated as an upstream failure.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("invalid state")
	ErrUpstream         = errors.New("upstream failure")
)

// InvalidParameterf wraps ErrInvalidParameter with caller-facing detail.
func InvalidParameterf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}

// NotFoundf wraps ErrNotFound with caller-facing detail.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// InvalidStatef wraps ErrInvalidState with caller-facing detail.
func InvalidStatef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidState}, args...)...)
}

// Upstreamf wraps a storage error as ErrUpstream. The wrapped cause is for
// logs only and must not be leaked verbatim to callers.
func Upstreamf(op string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrUpstream, op, cause)
}
