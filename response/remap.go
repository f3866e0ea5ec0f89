package response

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"time"

	"github.com/nategraf/restengine/descriptor"
)

// remap implements spec.md §4.F.1's wire-type remapping table as a pure
// function over the entity-type sum tree: a carrier value decoded generically
// by the codec (string, float64, []interface{}, map[string]interface{}, ...)
// is converted into its final Go-native shape. Containers that replace no
// element are returned identity-equal to raw, avoiding needless copies.
func remap(raw interface{}, t *descriptor.Type) (interface{}, error) {
	if t == nil {
		return raw, nil
	}

	switch {
	case t.Kind == descriptor.BytesEntity && t.Wire == descriptor.WireBase64URL:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("response: base64url carrier must be a string, got %T", raw)
		}
		return decodeBase64URL(s)

	case t.Kind == descriptor.OpaqueEntity && t.IsDateTime && t.Wire == descriptor.WireRFC1123:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("response: RFC1123 carrier must be a string, got %T", raw)
		}
		return time.Parse(time.RFC1123, s)

	case t.Kind == descriptor.OpaqueEntity && t.IsDateTime && t.Wire == descriptor.WireUnixEpoch:
		epoch, ok := asInt64(raw)
		if !ok {
			return nil, fmt.Errorf("response: unix-epoch carrier must be numeric, got %T", raw)
		}
		return time.Unix(epoch, 0).UTC(), nil

	case t.Kind == descriptor.ListEntity:
		list, ok := raw.([]interface{})
		if !ok {
			return nil, fmt.Errorf("response: list carrier must be an array, got %T", raw)
		}
		return remapList(list, t.Elem)

	case t.Kind == descriptor.MapEntity:
		m, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("response: map carrier must be an object, got %T", raw)
		}
		return remapMap(m, t.Elem)

	case t.Kind == descriptor.EnvelopeEntity:
		return remap(raw, t.Body)

	default:
		return raw, nil
	}
}

func decodeBase64URL(s string) ([]byte, error) {
	if b, err := base64.URLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawURLEncoding.DecodeString(s)
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

func remapList(list []interface{}, elem *descriptor.Type) (interface{}, error) {
	out := make([]interface{}, len(list))
	changed := false
	for i, v := range list {
		r, err := remap(v, elem)
		if err != nil {
			return nil, err
		}
		out[i] = r
		if r != v {
			changed = true
		}
	}
	if !changed {
		return list, nil
	}
	return coerceSlice(out, elem), nil
}

func remapMap(m map[string]interface{}, elem *descriptor.Type) (interface{}, error) {
	out := make(map[string]interface{}, len(m))
	changed := false
	for k, v := range m {
		r, err := remap(v, elem)
		if err != nil {
			return nil, err
		}
		out[k] = r
		if r != v {
			changed = true
		}
	}
	if !changed {
		return m, nil
	}
	return coerceMap(out, elem), nil
}

// coerceSlice rebuilds a generic []interface{} result as a concretely typed
// slice when elem names a concrete Go type (e.g. []time.Time for
// list<datetime>), since the caller of response.Handle expects Go-native
// values rather than a bag of interface{}.
func coerceSlice(generic []interface{}, elem *descriptor.Type) interface{} {
	if elem == nil || elem.GoType == nil {
		return generic
	}
	sliceType := reflect.SliceOf(elem.GoType)
	out := reflect.MakeSlice(sliceType, len(generic), len(generic))
	for i, v := range generic {
		if v == nil {
			continue
		}
		val := reflect.ValueOf(v)
		if val.Type() != elem.GoType && val.Type().ConvertibleTo(elem.GoType) {
			val = val.Convert(elem.GoType)
		}
		if val.Type() == elem.GoType {
			out.Index(i).Set(val)
		}
	}
	return out.Interface()
}

func coerceMap(generic map[string]interface{}, elem *descriptor.Type) interface{} {
	if elem == nil || elem.GoType == nil {
		return generic
	}
	mapType := reflect.MapOf(reflect.TypeOf(""), elem.GoType)
	out := reflect.MakeMapWithSize(mapType, len(generic))
	for k, v := range generic {
		if v == nil {
			continue
		}
		val := reflect.ValueOf(v)
		if val.Type() != elem.GoType && val.Type().ConvertibleTo(elem.GoType) {
			val = val.Convert(elem.GoType)
		}
		if val.Type() == elem.GoType {
			out.SetMapIndex(reflect.ValueOf(k), val)
		}
	}
	return out.Interface()
}
