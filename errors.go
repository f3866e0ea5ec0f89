package restengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/nategraf/restengine/descriptor"
	"github.com/nategraf/restengine/response"
	"github.com/nategraf/restengine/transport"
)

// Kind classifies an Error by which stage of the invocation raised it, per
// spec.md §7's error taxonomy.
type Kind int

const (
	// KindMalformedInterface reports a descriptor that could not be built
	// (parse-time).
	KindMalformedInterface Kind = iota
	// KindUnsupportedReturnType reports a return shape the engine cannot
	// adapt to any of {VOID, SYNC, FUTURE, COMPLETION-ONLY} (parse-time).
	KindUnsupportedReturnType
	// KindTransportIO reports a network, connection, or timeout failure.
	KindTransportIO
	// KindSerialization reports a codec failure encoding a request body or
	// decoding a response body.
	KindSerialization
	// KindUnexpectedStatus reports a response status outside the
	// descriptor's expected set.
	KindUnexpectedStatus
	// KindCancelled reports cooperative cancellation of an in-flight call.
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindMalformedInterface:
		return "MALFORMED-INTERFACE"
	case KindUnsupportedReturnType:
		return "UNSUPPORTED-RETURN-TYPE"
	case KindTransportIO:
		return "TRANSPORT-IO"
	case KindSerialization:
		return "SERIALIZATION"
	case KindUnexpectedStatus:
		return "UNEXPECTED-STATUS"
	case KindCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// Error is the error type every Client-driven invocation fails with. Parse-time
// errors (KindMalformedInterface, KindUnsupportedReturnType) surface
// synchronously from Resolve; runtime errors surface from the returned
// Future or from blocking on a SYNC/VOID call (spec.md §7's propagation
// policy).
type Error struct {
	Kind   Kind
	Method string
	Cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("restengine: %s: %s: %v", e.Method, e.Kind, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// StatusError, when the Kind is KindUnexpectedStatus, recovers the
// underlying *response.StatusError carrying the response status and typed
// error body, via errors.As.
func (e *Error) StatusError() (*response.StatusError, bool) {
	var se *response.StatusError
	if errors.As(e.Cause, &se) {
		return se, true
	}
	return nil, false
}

func classifyDescriptorErr(method string, err error) *Error {
	kind := KindMalformedInterface
	var urt *descriptor.UnsupportedReturnTypeError
	if errors.As(err, &urt) {
		kind = KindUnsupportedReturnType
	}
	return &Error{Kind: kind, Method: method, Cause: err}
}

// classifyTransportErr maps a pipeline.Send failure to CANCELLED or
// TRANSPORT-IO: retry policies may recover TRANSPORT-IO, but cancellation is
// never retried and must surface as its own kind (spec.md §7).
func classifyTransportErr(method string, err error) *Error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindCancelled, Method: method, Cause: err}
	}
	return &Error{Kind: KindTransportIO, Method: method, Cause: err}
}

// classifyResponseErr maps a response.Handle failure to its error kind. A
// failure to build the typed UNEXPECTED-STATUS error body falls back to
// TRANSPORT-IO with the original response text embedded, exactly as
// response.IOFallbackError already carries it (spec.md §7).
func classifyResponseErr(method string, err error) *Error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindCancelled, Method: method, Cause: err}
	}

	var statusErr *response.StatusError
	var serErr *response.SerializationError
	var ioFallbackErr *response.IOFallbackError
	var ioErr *transport.IOError

	switch {
	case errors.As(err, &statusErr):
		return &Error{Kind: KindUnexpectedStatus, Method: method, Cause: err}
	case errors.As(err, &serErr):
		return &Error{Kind: KindSerialization, Method: method, Cause: err}
	case errors.As(err, &ioFallbackErr):
		return &Error{Kind: KindTransportIO, Method: method, Cause: err}
	case errors.As(err, &ioErr):
		return &Error{Kind: KindTransportIO, Method: method, Cause: err}
	default:
		return &Error{Kind: KindTransportIO, Method: method, Cause: err}
	}
}
