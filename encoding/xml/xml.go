// Package xml provides a codec for serializing and deserializing XML entity
// bodies.
package xml

import (
	"encoding/xml"

	"github.com/nategraf/restengine/encoding"
)

type xmlCodec struct{}

func (c *xmlCodec) Serializer() encoding.Serializer {
	return xml.Marshal
}

func (c *xmlCodec) Deserializer() encoding.Deserializer {
	return xml.Unmarshal
}

// Codec returns a codec that serializes and deserializes XML entity bodies.
func Codec() encoding.Codec {
	return &xmlCodec{}
}
