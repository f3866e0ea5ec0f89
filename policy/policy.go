// Package policy builds the outbound request pipeline spec.md §4.E
// describes: an ordered chain of policies terminating in a transport, each
// free to forward (possibly mutated) to its inner neighbor or short-circuit
// with a synthetic response or failure. It is grounded on
// server/middleware.go's MiddlewareFactory chain-building shape, generalized
// from inbound request handling to outbound request sending.
package policy

import (
	"context"

	"github.com/nategraf/restengine/message"
)

// Policy is one link in the outbound pipeline.
type Policy interface {
	Send(ctx context.Context, req *message.Request) (*message.Response, error)
}

// Func adapts an ordinary function to the Policy interface.
type Func func(ctx context.Context, req *message.Request) (*message.Response, error)

// Send calls f(ctx, req).
func (f Func) Send(ctx context.Context, req *message.Request) (*message.Response, error) {
	return f(ctx, req)
}

// Factory generates a Policy that wraps next, the policy immediately inside
// it in the chain.
type Factory func(next Policy) Policy

// Build assembles factories (declared outer-to-inner) into a single Policy
// terminating in terminal, which is typically an adapter over a
// transport.Transport. The mandatory ordering spec.md §4.E describes —
// user-agent, retry, cookie jar, credentials, transport — is expressed by
// the caller's factories slice, not hard-coded here.
func Build(terminal Policy, factories ...Factory) Policy {
	p := terminal
	for i := len(factories) - 1; i >= 0; i-- {
		p = factories[i](p)
	}
	return p
}
