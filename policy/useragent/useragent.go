// Package useragent provides the outermost mandatory pipeline policy
// (spec.md §4.E): it stamps every outgoing request with a User-Agent header
// before forwarding. Grounded on client/middleware.go's lightweight Pre hook
// (a single header mutation, no state), rewritten against policy.Policy.
package useragent

import (
	"context"

	"github.com/nategraf/restengine/message"
	"github.com/nategraf/restengine/policy"
)

// Factory returns a policy.Factory that sets the User-Agent header to value
// on every request, unless the caller already set one.
func Factory(value string) policy.Factory {
	return func(next policy.Policy) policy.Policy {
		return policy.Func(func(ctx context.Context, req *message.Request) (*message.Response, error) {
			if !req.Headers.Has("User-Agent") {
				req.Headers.Set("User-Agent", value)
			}
			return next.Send(ctx, req)
		})
	}
}
