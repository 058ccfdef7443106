package variant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrNotJSON is returned by JSONValue for variants with no JSON
// representation (blobs).
var ErrNotJSON = errors.New("variant has no JSON representation")

// FromJSON parses a JSON document into a Variant tree. Numbers without
// a fraction or exponent become int64 variants, everything else becomes
// a double, matching how the Realtime Database distinguishes the two.
func FromJSON(data []byte) (Variant, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return Variant{}, fmt.Errorf("parse json: %w", err)
	}
	return FromJSONValue(raw), nil
}

// FromJSONValue converts an already-unmarshalled JSON value (the shapes
// produced by encoding/json, with or without UseNumber) into a Variant.
// Object keys are emitted in sorted order so the result is deterministic.
func FromJSONValue(raw interface{}) Variant {
	switch val := raw.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Int64(i)
		}
		f, _ := val.Float64()
		return Double(f)
	case float64:
		return Double(val)
	case int64:
		return Int64(val)
	case int:
		return Int64(int64(val))
	case string:
		return String(val)
	case []interface{}:
		elems := make([]Variant, len(val))
		for i, e := range val {
			elems[i] = FromJSONValue(e)
		}
		return Vector(elems)
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		entries := make([]MapEntry, 0, len(val))
		for _, k := range keys {
			entries = append(entries, Entry(k, FromJSONValue(val[k])))
		}
		return Map(entries...)
	default:
		return Null()
	}
}

// JSONValue renders a Variant as a value encoding/json can marshal.
// Blobs and maps with non-string keys have no JSON form and error out.
func (v Variant) JSONValue() (interface{}, error) {
	switch {
	case v.IsNull():
		return nil, nil
	case v.typ == TypeBool:
		return v.b, nil
	case v.typ == TypeInt64:
		return v.i, nil
	case v.typ == TypeDouble:
		return v.f, nil
	case v.IsString():
		return v.s, nil
	case v.IsBlob():
		return nil, ErrNotJSON
	case v.typ == TypeVector:
		out := make([]interface{}, len(v.vec))
		for i, e := range v.vec {
			ev, err := e.JSONValue()
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	case v.typ == TypeMap:
		out := make(map[string]interface{}, len(v.entries))
		for _, e := range v.entries {
			if !e.Key.IsString() {
				return nil, fmt.Errorf("%w: map key of type %s", ErrNotJSON, e.Key.Type())
			}
			ev, err := e.Value.JSONValue()
			if err != nil {
				return nil, err
			}
			out[e.Key.StringValue()] = ev
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: type %s", ErrNotJSON, v.typ)
	}
}
