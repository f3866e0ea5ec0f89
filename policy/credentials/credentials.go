// Package credentials provides the pipeline policy that stamps the
// Authorization header on every outgoing request, delegating the header
// value to an injected Provider (spec.md §4.E: "Credentials policy mutates
// only the request's auth header"). Grounded on client/middleware.go's
// single-hook Pre pattern, rewritten against policy.Policy.
package credentials

import (
	"context"

	"github.com/nategraf/restengine/message"
	"github.com/nategraf/restengine/policy"
)

// Provider supplies the Authorization header value for an outgoing request.
// Implementations are free to refresh tokens, consult a secrets store, etc.
type Provider interface {
	AuthorizationHeader(ctx context.Context, req *message.Request) (string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, req *message.Request) (string, error)

// AuthorizationHeader calls f(ctx, req).
func (f ProviderFunc) AuthorizationHeader(ctx context.Context, req *message.Request) (string, error) {
	return f(ctx, req)
}

// Factory returns a policy.Factory that sets the Authorization header to the
// value provider yields, leaving every other header untouched.
func Factory(provider Provider) policy.Factory {
	return func(next policy.Policy) policy.Policy {
		return policy.Func(func(ctx context.Context, req *message.Request) (*message.Response, error) {
			value, err := provider.AuthorizationHeader(ctx, req)
			if err != nil {
				return nil, err
			}
			if value != "" {
				req.Headers.Set("Authorization", value)
			}
			return next.Send(ctx, req)
		})
	}
}
