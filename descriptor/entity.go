package descriptor

import (
	"reflect"
	"time"
)

var timeZero time.Time

// EntityKind identifies the shape of a result or parameter entity type,
// forming the sum type over which wire-type remapping (response.remap) walks.
type EntityKind int

const (
	// Void is the absence of a result.
	Void EntityKind = iota
	// BoolEntity is a boolean entity (used for HEAD-verb status checks).
	BoolEntity
	// BytesEntity is a raw byte-array entity.
	BytesEntity
	// StreamEntity is an input-byte-stream entity.
	StreamEntity
	// ChunkSequenceEntity is a lazy byte-chunk sequence entity.
	ChunkSequenceEntity
	// ListEntity is list<Elem>.
	ListEntity
	// MapEntity is map<string, Elem> (keys always pass through untouched).
	MapEntity
	// EnvelopeEntity is the status+headers+body envelope.
	EnvelopeEntity
	// OpaqueEntity is any other deserializable type, carried via reflection.
	OpaqueEntity
	// ObservableEntity models a lazy observable sequence of non-byte
	// elements. It exists only so Builder.Build can reject it with
	// UnsupportedReturnTypeError, matching RestProxy.handleAsyncReturnType's
	// explicit Observable rejection in original_source.
	ObservableEntity
)

// WireType is the closed set of on-the-wire representations distinct from
// the caller-visible result type.
type WireType int

const (
	// WireNone means the result type is deserialized directly, with no
	// carrier conversion.
	WireNone WireType = iota
	// WireBase64URL marks a bytes entity carried as a base64url string.
	WireBase64URL
	// WireRFC1123 marks a datetime entity carried as an RFC1123 string.
	WireRFC1123
	// WireUnixEpoch marks a datetime entity carried as an integer epoch.
	WireUnixEpoch
)

// Type is a node in the entity type tree (Design Note 9's "sum type tree"):
// Bytes | DateTime | List(T) | Map(K,V) | Envelope(H,B) | Opaque(schema).
type Type struct {
	Kind EntityKind

	// Elem is the element type for ListEntity and MapEntity.
	Elem *Type

	// Headers and Body are the two envelope slots for EnvelopeEntity.
	Headers *Type
	Body    *Type

	// GoType is the concrete Go type backing OpaqueEntity deserialization.
	GoType reflect.Type

	// Wire is the wire-type marker attached to this entity, drawn from the
	// closed {BASE64URL, RFC1123, UNIX-EPOCH} set, or WireNone.
	Wire WireType

	// IsDateTime distinguishes a datetime OpaqueEntity from any other
	// opaque type, since RFC1123/UNIX-EPOCH wire types only apply to
	// datetime-shaped entities.
	IsDateTime bool
}

// VoidType returns the Void entity.
func VoidType() *Type { return &Type{Kind: Void} }

// BoolType returns the boolean entity.
func BoolType() *Type { return &Type{Kind: BoolEntity} }

// BytesType returns a raw byte-array entity, optionally carried on the wire
// as base64url.
func BytesType(wire WireType) *Type { return &Type{Kind: BytesEntity, Wire: wire} }

// StreamType returns the input-byte-stream entity.
func StreamType() *Type { return &Type{Kind: StreamEntity} }

// ChunkSequenceType returns the lazy byte-chunk sequence entity.
func ChunkSequenceType() *Type { return &Type{Kind: ChunkSequenceEntity} }

// ListType returns list<elem>.
func ListType(elem *Type) *Type { return &Type{Kind: ListEntity, Elem: elem} }

// MapType returns map<string, elem>.
func MapType(elem *Type) *Type { return &Type{Kind: MapEntity, Elem: elem} }

// EnvelopeType returns the status+headers+body envelope over the given
// headers and body entity types. A nil headers type means "void headers",
// which skips typed-header deserialization (§3).
func EnvelopeType(headers, body *Type) *Type {
	return &Type{Kind: EnvelopeEntity, Headers: headers, Body: body}
}

// OpaqueType returns an entity deserialized directly into goType.
func OpaqueType(goType reflect.Type) *Type {
	return &Type{Kind: OpaqueEntity, GoType: goType}
}

// DateTimeType returns an opaque entity representing a datetime, carried on
// the wire as RFC1123 or unix-epoch.
func DateTimeType(wire WireType) *Type {
	return &Type{Kind: OpaqueEntity, GoType: reflect.TypeOf(timeZero), Wire: wire, IsDateTime: true}
}

// ObservableType returns an entity that Builder.Build always rejects.
func ObservableType() *Type { return &Type{Kind: ObservableEntity} }
