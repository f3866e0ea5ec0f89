// Package transport defines the boundary contract a concrete HTTP transport
// must satisfy to sit at the bottom of a policy pipeline (spec.md §6:
// "sendRequestAsync(request) -> future<response>. May fail with
// TRANSPORT-IO. Must honor cancellation and never retry internally.").
// A reference implementation lives in transport/nethttp; spec.md explicitly
// places concrete transports out of scope for the core engine.
package transport

import (
	"context"

	"github.com/nategraf/restengine/message"
)

// Transport sends a single request to completion. Implementations must
// respect ctx cancellation and must never retry internally — retry is a
// pipeline policy's concern (spec.md §4.E).
type Transport interface {
	SendRequestAsync(ctx context.Context, req *message.Request) (*message.Response, error)
	Capabilities() Capabilities
}

// Capabilities describes what a transport natively supports, used by the
// request/response layers to decide when a fallback encoding is required.
type Capabilities struct {
	// SupportsPATCH reports whether the transport can issue PATCH directly.
	// When false, PATCH must be rewritten to POST with an
	// X-HTTP-Method-Override: PATCH header (spec.md §6, testable property 7).
	SupportsPATCH bool
}
