// Package response enforces the expected-status gate, extracts the declared
// result entity, and assembles the envelope shape, implementing spec.md
// §4.F's three-stage algorithm. It is grounded on
// RestProxy.ensureExpectedStatus / handleBodyReturnTypeAsync /
// handleRestResponseReturnTypeAsync / constructWireResponseType /
// convertToResultType in original_source.
package response

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/nategraf/restengine/descriptor"
	"github.com/nategraf/restengine/encoding"
	"github.com/nategraf/restengine/message"
)

// Envelope is the tri-part result spec.md §3 describes for an
// envelope<H,B>-shaped return: the status code, the typed headers
// (nil if the declared headers type is void), the raw header map, and the
// typed body.
type Envelope struct {
	Status     int
	Headers    interface{}
	RawHeaders map[string]string
	Body       interface{}
}

// Handle runs the three-stage response algorithm against res, using d's
// declared expected statuses, error shape, and return shape. extraAllowed
// widens the expected-status set for a single call (spec.md §4.F Stage 1's
// "expectedStatuses ∪ additionalAllowed").
func Handle(d *descriptor.Descriptor, codecs *encoding.Registry, res *message.Response, extraAllowed ...int) (interface{}, error) {
	status := int(res.Status)
	if err := checkStatus(d, codecs, res, status, extraAllowed); err != nil {
		return nil, err
	}

	result := d.Return.Result
	if result == nil {
		return nil, nil
	}

	entity := result
	if result.Kind == descriptor.EnvelopeEntity {
		entity = result.Body
	}

	body, err := extract(d, codecs, res, status, entity)
	if err != nil {
		return nil, err
	}

	if result.Kind != descriptor.EnvelopeEntity {
		return body, nil
	}

	var typedHeaders interface{}
	if result.Headers != nil {
		typedHeaders, err = decodeHeaders(res, result.Headers)
		if err != nil {
			return nil, err
		}
	}

	return &Envelope{
		Status:     status,
		Headers:    typedHeaders,
		RawHeaders: res.Headers.Map(),
		Body:       body,
	}, nil
}

// checkStatus implements Stage 1. When status falls outside the allowed set
// it materializes the body as text, attempts to build the declared typed
// error, and returns either a *StatusError or, on construction failure, an
// *IOFallbackError per spec.md §7.
func checkStatus(d *descriptor.Descriptor, codecs *encoding.Registry, res *message.Response, status int, extraAllowed []int) error {
	if statusAllowed(status, d.ExpectedStatuses, extraAllowed) {
		return nil
	}

	text, err := res.Text()
	if err != nil {
		return &IOFallbackError{
			Message: fmt.Sprintf("response: status %d outside expected set and body could not be read: %v", status, err),
			Cause:   err,
		}
	}

	var typedBody interface{}
	if text != "" && d.Error.BodySchema != nil {
		typedBody, err = deserializeInto(codecs, res.Headers.Get("Content-Type"), []byte(text), d.Error.BodySchema)
		if err != nil {
			return &IOFallbackError{
				Message: fmt.Sprintf("response: status %d, but declared error body could not be deserialized: %v; raw body: %s", status, err, text),
				Cause:   err,
			}
		}
	}

	return &StatusError{
		Status:   status,
		Message:  fmt.Sprintf("unexpected response status %d", status),
		Response: res,
		Body:     typedBody,
	}
}

func statusAllowed(status int, expected, extra []int) bool {
	for _, s := range expected {
		if s == status {
			return true
		}
	}
	for _, s := range extra {
		if s == status {
			return true
		}
	}
	return false
}

// extract implements Stage 2's dispatch on the inner entity type.
func extract(d *descriptor.Descriptor, codecs *encoding.Registry, res *message.Response, status int, entity *descriptor.Type) (interface{}, error) {
	if entity == nil || entity.Kind == descriptor.Void {
		return nil, nil
	}

	if d.Verb == "HEAD" && entity.Kind == descriptor.BoolEntity {
		return status >= 200 && status < 300, nil
	}

	switch entity.Kind {
	case descriptor.StreamEntity:
		return res.Stream()

	case descriptor.ChunkSequenceEntity:
		return res.Chunks()

	case descriptor.BytesEntity:
		if entity.Wire != descriptor.WireBase64URL {
			return res.Bytes()
		}
		var carrier string
		if err := deserializeValue(codecs, res.Headers.Get("Content-Type"), res, &carrier); err != nil {
			return nil, &IOFallbackError{Message: fmt.Sprintf("response: decoding base64url carrier: %v", err), Cause: err}
		}
		return decodeBase64URL(carrier)

	default:
		return extractGeneric(codecs, res, entity)
	}
}

// extractGeneric handles every entity kind that goes through the codec and
// possible wire-type remapping: plain opaque structs, standalone datetimes,
// and list/map containers.
func extractGeneric(codecs *encoding.Registry, res *message.Response, entity *descriptor.Type) (interface{}, error) {
	raw, err := res.Bytes()
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	codec, err := codecFor(codecs, res.Headers.Get("Content-Type"))
	if err != nil {
		return nil, &SerializationError{Message: err.Error(), Cause: err}
	}

	needsRemap := entity.Wire != descriptor.WireNone || entity.Kind == descriptor.ListEntity || entity.Kind == descriptor.MapEntity

	if !needsRemap && entity.GoType != nil {
		target := reflect.New(entity.GoType)
		if err := codec.Deserializer()(raw, target.Interface()); err != nil {
			return nil, &SerializationError{Message: fmt.Sprintf("response: deserializing body: %v", err), Cause: err}
		}
		return target.Elem().Interface(), nil
	}

	var generic interface{}
	if err := codec.Deserializer()(raw, &generic); err != nil {
		return nil, &SerializationError{Message: fmt.Sprintf("response: deserializing body: %v", err), Cause: err}
	}

	return remap(generic, entity)
}

func deserializeInto(codecs *encoding.Registry, contentType string, raw []byte, schema *descriptor.Type) (interface{}, error) {
	if schema.GoType == nil {
		var generic interface{}
		if err := json.Unmarshal(raw, &generic); err != nil {
			return nil, err
		}
		return generic, nil
	}
	codec, err := codecFor(codecs, contentType)
	if err != nil {
		return nil, err
	}
	target := reflect.New(schema.GoType)
	if err := codec.Deserializer()(raw, target.Interface()); err != nil {
		return nil, err
	}
	return target.Elem().Interface(), nil
}

func deserializeValue(codecs *encoding.Registry, contentType string, res *message.Response, out interface{}) error {
	raw, err := res.Bytes()
	if err != nil {
		return err
	}
	codec, err := codecFor(codecs, contentType)
	if err != nil {
		return err
	}
	return codec.Deserializer()(raw, out)
}

// codecFor resolves contentType to a codec, defaulting an absent or
// unrecognized content-type to JSON, matching original_source's
// RestProxy.bodyEncoding: it special-cases XML and otherwise always returns
// JSON, never leaving a body undeserializable for want of a Content-Type.
func codecFor(codecs *encoding.Registry, contentType string) (encoding.Codec, error) {
	enc := encoding.SelectEncoding(contentType)
	codec, ok := codecs.For(enc)
	if !ok && enc == encoding.Opaque {
		codec, ok = codecs.For(encoding.JSON)
	}
	if !ok {
		return nil, fmt.Errorf("response: no codec registered for content-type %q", contentType)
	}
	return codec, nil
}

// decodeHeaders implements §3's typed-headers rule: re-serialize the raw
// header map as a JSON dictionary and deserialize it into the declared
// headers type.
func decodeHeaders(res *message.Response, headersType *descriptor.Type) (interface{}, error) {
	if headersType.GoType == nil {
		return res.Headers.Map(), nil
	}
	raw, err := json.Marshal(res.Headers.Map())
	if err != nil {
		return nil, &SerializationError{Message: fmt.Sprintf("response: re-serializing headers: %v", err), Cause: err}
	}
	target := reflect.New(headersType.GoType)
	if err := json.Unmarshal(raw, target.Interface()); err != nil {
		return nil, &SerializationError{Message: fmt.Sprintf("response: deserializing headers: %v", err), Cause: err}
	}
	return target.Elem().Interface(), nil
}
