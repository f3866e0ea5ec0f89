package encoding

import "strings"

// MediaEncoding identifies which wire encoding a resolved Content-Type maps
// to (spec.md §4.D step 5).
type MediaEncoding int

const (
	// Opaque means the body value is treated as raw bytes or text rather
	// than run through a Codec.
	Opaque MediaEncoding = iota
	// JSON selects the application/json codec.
	JSON
	// XML selects the application/xml or text/xml codec.
	XML
)

// SelectEncoding maps a resolved Content-Type to a MediaEncoding by its
// media-type prefix (case-insensitive, segment-delimited by ";"), per
// spec.md §4.D step 5.
func SelectEncoding(contentType string) MediaEncoding {
	mediaType := contentType
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	switch mediaType {
	case "application/json":
		return JSON
	case "application/xml", "text/xml":
		return XML
	default:
		return Opaque
	}
}

// Registry maps a MediaEncoding to the Codec that implements it, used by the
// request builder to serialize and the response handler to deserialize
// entity bodies without either depending on a concrete codec package
// directly (those are wired by restengine.Client at construction time via
// DefaultCodecsFactory).
type Registry struct {
	codecs map[MediaEncoding]Codec
}

// NewRegistry returns an empty codec registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[MediaEncoding]Codec)}
}

// Register associates enc with codec, returning r for chaining.
func (r *Registry) Register(enc MediaEncoding, codec Codec) *Registry {
	r.codecs[enc] = codec
	return r
}

// For returns the codec registered for enc, if any.
func (r *Registry) For(enc MediaEncoding) (Codec, bool) {
	c, ok := r.codecs[enc]
	return c, ok
}
