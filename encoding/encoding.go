// Package encoding defines the interfaces shared by the entity codecs used to
// serialize and deserialize request and response bodies exchanged between a
// restengine client and a remote service.
package encoding

// Serializer produces a byte representation of a value.
type Serializer func(interface{}) ([]byte, error)

// Deserializer populates a value from its byte representation.
type Deserializer func([]byte, interface{}) error

// Codec is implemented by objects that can produce a Serializer and a
// Deserializer for a particular wire format.
type Codec interface {
	Serializer() Serializer
	Deserializer() Deserializer
}
