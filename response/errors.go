package response

import "github.com/nategraf/restengine/message"

// StatusError is constructed when a response status falls outside the
// descriptor's expected set (spec.md §4.F Stage 1). Body holds the
// deserialized typed error body when the error schema could be applied, or
// nil for an empty response body.
type StatusError struct {
	Status   int
	Message  string
	Response *message.Response
	Body     interface{}
}

func (e *StatusError) Error() string { return e.Message }

// IOFallbackError is returned in place of a StatusError when the declared
// error body schema could not be applied to the response (spec.md §7:
// "Failure to construct an UNEXPECTED-STATUS typed error falls back to
// TRANSPORT-IO with the original response text embedded in the message").
// restengine.Invoke maps this to KindTransportIO rather than
// KindUnexpectedStatus.
type IOFallbackError struct {
	Message string
	Cause   error
}

func (e *IOFallbackError) Error() string { return e.Message }
func (e *IOFallbackError) Unwrap() error { return e.Cause }

// SerializationError wraps a codec failure decoding a response body into the
// declared entity type (spec.md §7's SERIALIZATION kind).
type SerializationError struct {
	Message string
	Cause   error
}

func (e *SerializationError) Error() string { return e.Message }
func (e *SerializationError) Unwrap() error { return e.Cause }
