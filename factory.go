package restengine

import (
	"github.com/nategraf/restengine/encoding"
	"github.com/nategraf/restengine/encoding/json"
	"github.com/nategraf/restengine/encoding/xml"
	"github.com/nategraf/restengine/transport"
	"github.com/nategraf/restengine/transport/nethttp"
)

var (
	// DefaultTransportFactory returns a new instance of the default
	// restengine transport.
	//
	// When restengine is imported, DefaultTransportFactory is set up to
	// return net/http transport instances.
	DefaultTransportFactory func() transport.Transport

	// DefaultCodecsFactory returns a new instance of the default codec
	// registry used for serializing request bodies and deserializing
	// response bodies.
	//
	// When restengine is imported, DefaultCodecsFactory is set up to
	// register the JSON and XML codecs, the pair spec.md §6 fixes as the
	// codec encoding set.
	DefaultCodecsFactory func() *encoding.Registry
)

func init() {
	DefaultTransportFactory = func() transport.Transport { return nethttp.New() }
	DefaultCodecsFactory = func() *encoding.Registry {
		return encoding.NewRegistry().
			Register(encoding.JSON, json.Codec()).
			Register(encoding.XML, xml.Codec())
	}
}
