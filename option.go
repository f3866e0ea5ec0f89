package restengine

import (
	"github.com/nategraf/restengine/encoding"
	"github.com/nategraf/restengine/policy"
	"github.com/nategraf/restengine/transport"
)

// Option applies a configuration option to a Client instance.
type Option func(c *Client) error

// WithTransport configures the client to use a specific transport instead of
// the one resolved via DefaultTransportFactory.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) error {
		c.transport = t
		return nil
	}
}

// WithCodecs configures the client to use a specific codec registry instead
// of the one resolved via DefaultCodecsFactory.
func WithCodecs(codecs *encoding.Registry) Option {
	return func(c *Client) error {
		c.codecs = codecs
		return nil
	}
}

// WithPolicies appends factories to the client's outbound pipeline, applied
// in the order given, outermost first (spec.md §4.E's mandatory ordering —
// user-agent, retry, cookie jar, credentials — is the caller's
// responsibility to preserve when composing this list). Supplying any
// WithPolicies option suppresses New's DefaultPolicies fallback.
func WithPolicies(factories ...policy.Factory) Option {
	return func(c *Client) error {
		list := make([]policy.Factory, 0, len(factories))
		for _, f := range factories {
			if f == nil {
				continue
			}
			list = append(list, f)
		}
		c.factories = append(c.factories, list...)
		c.policiesSet = true
		return nil
	}
}
