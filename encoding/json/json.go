// Package json provides a codec for serializing and deserializing JSON
// entity bodies.
package json

import (
	"encoding/json"

	"github.com/nategraf/restengine/encoding"
)

type jsonCodec struct{}

func (c *jsonCodec) Serializer() encoding.Serializer {
	return json.Marshal
}

func (c *jsonCodec) Deserializer() encoding.Deserializer {
	return json.Unmarshal
}

// Codec returns a codec that serializes and deserializes JSON entity bodies.
func Codec() encoding.Codec {
	return &jsonCodec{}
}
