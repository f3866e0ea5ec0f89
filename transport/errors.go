package transport

import "errors"

// ErrServiceUnavailable is a sentinel a transport (or a policy guarding it,
// such as policy/circuitbreaker) can return for a remote endpoint known to be
// down, without constructing a fresh *IOError for every failed attempt.
var ErrServiceUnavailable = errors.New("service unavailable")

// IOError wraps a transport-level failure (connection refused, DNS failure,
// TLS handshake failure, response stream truncated, ...) as the TRANSPORT-IO
// error kind spec.md §7 describes. Cancellation (context.Canceled /
// context.DeadlineExceeded) is propagated unwrapped instead, since spec.md
// §7 treats it as a distinct CANCELLED kind that policies must never retry.
type IOError struct {
	Message string
	Cause   error
}

func (e *IOError) Error() string { return e.Message }
func (e *IOError) Unwrap() error { return e.Cause }
