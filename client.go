// Package restengine is the invocation façade spec.md §4.G describes: given
// a cached method descriptor and an argument vector, it drives request
// building (§4.D), the policy pipeline (§4.E), and response handling (§4.F)
// to completion and adapts the result to the caller's declared return shape.
//
// Client and Option are grounded on client/client.go and client/option.go:
// the struct shape, functional-option pattern, and default-resolution flow
// are carried forward from the RPC client, retargeted from a transport-level
// "service name + endpoint" dispatch to a descriptor-level "built request"
// dispatch, with the middleware chain replaced by a policy.Policy pipeline.
package restengine

import (
	"context"

	"github.com/nategraf/restengine/descriptor"
	"github.com/nategraf/restengine/encoding"
	"github.com/nategraf/restengine/message"
	"github.com/nategraf/restengine/policy"
	"github.com/nategraf/restengine/request"
	"github.com/nategraf/restengine/response"
	"github.com/nategraf/restengine/transport"
)

// Client drives the request/pipeline/response cycle for a set of generated
// bindings sharing one transport, codec registry, and policy chain.
//
// Unless overridden by a WithTransport option, the client resolves its
// transport via DefaultTransportFactory. Unless overridden by WithCodecs, it
// resolves its codec registry via DefaultCodecsFactory.
type Client struct {
	transport transport.Transport
	codecs    *encoding.Registry
	factories []policy.Factory

	policiesSet bool
	cache       descriptor.Cache
	pipeline    policy.Policy
}

// New creates a Client and applies the supplied options. If no WithPolicies
// option was given, the client falls back to DefaultPolicies(nil) — the
// mandatory user-agent/retry/cookie-jar chain with no credentials policy —
// grounded on createDefaultPipeline()'s null-credentials-policy branch.
func New(options ...Option) (*Client, error) {
	c := &Client{}

	for _, opt := range options {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.setDefaults()
	if !c.policiesSet {
		factories, err := DefaultPolicies(nil)
		if err != nil {
			return nil, err
		}
		c.factories = factories
	}
	c.pipeline = policy.Build(transportPolicy{c.transport}, c.factories...)

	return c, nil
}

// setDefaults applies default settings for fields not set by an option.
func (c *Client) setDefaults() {
	if c.transport == nil {
		c.transport = DefaultTransportFactory()
	}
	if c.codecs == nil {
		c.codecs = DefaultCodecsFactory()
	}
}

// Resolve returns the cached descriptor for key, building and storing it via
// build on first lookup (spec.md §4.G step 1 / §5's "read-mostly, last-write-wins"
// cache). A generated binding calls this once per method, typically from a
// package-level sync.Once or var, and reuses the result across invocations.
func (c *Client) Resolve(key descriptor.Key, build func() (*descriptor.Descriptor, error)) (*descriptor.Descriptor, error) {
	d, err := c.cache.GetOrBuild(key, build)
	if err != nil {
		return nil, classifyDescriptorErr(string(key), err)
	}
	return d, nil
}

// call drives steps 2-4 of the invocation façade: build the request, submit
// it to the pipeline, and route the response through the response handler.
// extraAllowed widens the expected-status set for this call only, beyond
// d.ExpectedStatuses (spec.md §4.F's "extraAllowed").
func (c *Client) call(ctx context.Context, d *descriptor.Descriptor, args []interface{}, extraAllowed ...int) (interface{}, error) {
	req, err := request.Build(d, args, c.codecs)
	if err != nil {
		return nil, &Error{Kind: KindSerialization, Method: d.Name, Cause: err}
	}

	res, err := c.pipeline.Send(ctx, req)
	if err != nil {
		return nil, classifyTransportErr(d.Name, err)
	}

	result, err := response.Handle(d, c.codecs, res, extraAllowed...)
	if err != nil {
		return nil, classifyResponseErr(d.Name, err)
	}

	return result, nil
}

// transportPolicy adapts a transport.Transport into the innermost link of a
// policy.Policy chain, keeping the policy and transport packages mutually
// decoupled (neither imports the other).
type transportPolicy struct {
	transport transport.Transport
}

func (t transportPolicy) Send(ctx context.Context, req *message.Request) (*message.Response, error) {
	return t.transport.SendRequestAsync(ctx, req)
}
