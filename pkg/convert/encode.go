package convert

import (
	"fmt"

	"github.com/ripixel/firevariant/pkg/fieldvalue"
	"github.com/ripixel/firevariant/pkg/variant"
)

// ToFieldValue converts a variant into a Firestore field value.
//
// Primitives map one to one. Strings and blobs of either ownership
// flavor become owned field values. Vectors nested directly inside
// another vector are wrapped in a nested_array envelope because
// Firestore rejects arrays of arrays. Maps carrying the special marker
// are decoded as envelopes; all other maps convert recursively and must
// use string keys.
func (c *Converter) ToFieldValue(from variant.Variant) (fieldvalue.Value, error) {
	return c.encodeAny(from, false)
}

// withinArray is the only state threaded through the recursion: it
// records whether the current value sits directly inside a vector, which
// decides if a vector at this position must be envelope-wrapped.
func (c *Converter) encodeAny(from variant.Variant, withinArray bool) (fieldvalue.Value, error) {
	switch from.Type() {
	case variant.TypeNull:
		return fieldvalue.Null(), nil
	case variant.TypeBool:
		return fieldvalue.Boolean(from.BoolValue()), nil
	case variant.TypeInt64:
		return fieldvalue.Integer(from.Int64Value()), nil
	case variant.TypeDouble:
		return fieldvalue.Double(from.DoubleValue()), nil

	// Firestore has no static/mutable distinction; the result always
	// owns its string or blob.
	case variant.TypeStaticString, variant.TypeMutableString:
		return fieldvalue.String(from.StringValue()), nil
	case variant.TypeStaticBlob, variant.TypeMutableBlob:
		return fieldvalue.Blob(from.BlobValue()), nil

	case variant.TypeVector:
		return c.encodeArray(from.VectorValue(), withinArray)
	case variant.TypeMap:
		return c.encodeMap(from)

	default:
		return fieldvalue.Value{}, fmt.Errorf("%w: variant tag %d", ErrUnknownType, from.Type())
	}
}

func (c *Converter) encodeArray(from []variant.Variant, withinArray bool) (fieldvalue.Value, error) {
	arr, err := c.encodeRegularArray(from)
	if err != nil {
		return fieldvalue.Value{}, err
	}
	if !withinArray {
		return arr, nil
	}

	// Firestore doesn't support nested arrays. As a workaround, wrap the
	// nested array in an intermediate envelope map.
	return fieldvalue.Map(map[string]fieldvalue.Value{
		fieldSpecial: fieldvalue.Boolean(true),
		fieldType:    fieldvalue.String(typeNestedArray),
		fieldValue:   arr,
	}), nil
}

func (c *Converter) encodeRegularArray(from []variant.Variant) (fieldvalue.Value, error) {
	result := make([]fieldvalue.Value, 0, len(from))
	for i, v := range from {
		elem, err := c.encodeAny(v, true)
		if err != nil {
			return fieldvalue.Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		result = append(result, elem)
	}
	return fieldvalue.Array(result), nil
}

func (c *Converter) encodeMap(from variant.Variant) (fieldvalue.Value, error) {
	// A map with the special marker represents a Firestore entity (e.g.
	// a timestamp) that should round-trip rather than stay a map.
	if tryGetBool(from, fieldSpecial) {
		return c.encodeSpecialValue(from)
	}
	return c.encodeRegularMap(from)
}

func (c *Converter) encodeRegularMap(from variant.Variant) (fieldvalue.Value, error) {
	result := make(map[string]fieldvalue.Value, len(from.Entries()))
	for _, e := range from.Entries() {
		// Firestore only supports string keys.
		if !e.Key.IsString() {
			return fieldvalue.Value{}, fmt.Errorf("%w: %s", ErrInvalidMapKey, e.Key.Type())
		}
		v, err := c.encodeAny(e.Value, false)
		if err != nil {
			return fieldvalue.Value{}, fmt.Errorf("key %q: %w", e.Key.StringValue(), err)
		}
		result[e.Key.StringValue()] = v
	}
	return fieldvalue.Map(result), nil
}

// encodeSpecialValue rebuilds a Firestore entity from its envelope map.
// An empty or unrecognized type yields a null value rather than an
// error, so envelope kinds minted by newer converters pass through
// older ones without crashing them.
func (c *Converter) encodeSpecialValue(from variant.Variant) (fieldvalue.Value, error) {
	typ := tryGetString(from, fieldType)
	if typ == "" {
		return fieldvalue.Null(), nil
	}

	switch typ {
	case typeTimestamp:
		return fieldvalue.Timestamp(
			tryGetInt64(from, "seconds"),
			int32(tryGetInt64(from, "nanoseconds")),
		), nil

	case typeGeoPoint:
		return fieldvalue.GeoPoint(
			tryGetDouble(from, "latitude"),
			tryGetDouble(from, "longitude"),
		), nil

	case typeDocumentReference:
		if c.resolver == nil {
			return fieldvalue.Value{}, ErrNoResolver
		}
		return fieldvalue.Reference(c.resolver.Doc(tryGetString(from, "document_path"))), nil

	case typeDelete:
		return fieldvalue.Delete(), nil

	case typeServerTimestamp:
		return fieldvalue.ServerTimestamp(), nil
	}

	return fieldvalue.Null(), nil
}
