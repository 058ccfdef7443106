package convert

import (
	"fmt"
	"sort"

	"github.com/ripixel/firevariant/pkg/fieldvalue"
	"github.com/ripixel/firevariant/pkg/variant"
)

// ToVariant converts a Firestore field value into a variant.
//
// Primitives map one to one; strings and blobs come back as the mutable
// (owned) flavor. Firestore entities with no variant counterpart
// (timestamps, geo points, references, the delete and server-timestamp
// sentinels) come back as the same envelope maps ToFieldValue accepts,
// so they round-trip. The array union/remove and increment sentinels
// cannot round-trip and return ErrUnsupportedSentinel.
func (c *Converter) ToVariant(from fieldvalue.Value) (variant.Variant, error) {
	switch from.Type() {
	case fieldvalue.TypeNull:
		return variant.Null(), nil
	case fieldvalue.TypeBoolean:
		return variant.Bool(from.BooleanValue()), nil
	case fieldvalue.TypeInteger:
		return variant.Int64(from.IntegerValue()), nil
	case fieldvalue.TypeDouble:
		return variant.Double(from.DoubleValue()), nil

	// Field values always own their string or blob, so the safest
	// result is a variant that owns a copy.
	case fieldvalue.TypeString:
		return variant.String(from.StringValue()), nil
	case fieldvalue.TypeBlob:
		return variant.Blob(from.BlobValue()), nil

	case fieldvalue.TypeArray:
		return c.decodeArray(from.ArrayValue())
	case fieldvalue.TypeMap:
		return c.decodeMap(from.MapValue())

	// Firestore entities are encoded as envelope maps carrying their
	// payload fields, the exact shape the encoder accepts back.
	case fieldvalue.TypeTimestamp:
		return variant.Map(
			variant.Entry(fieldSpecial, variant.Bool(true)),
			variant.Entry(fieldType, variant.String(typeTimestamp)),
			variant.Entry("seconds", variant.Int64(from.TimestampSeconds())),
			variant.Entry("nanoseconds", variant.Int64(int64(from.TimestampNanoseconds()))),
		), nil

	case fieldvalue.TypeGeoPoint:
		gp := from.GeoPointValue()
		return variant.Map(
			variant.Entry(fieldSpecial, variant.Bool(true)),
			variant.Entry(fieldType, variant.String(typeGeoPoint)),
			variant.Entry("latitude", variant.Double(gp.GetLatitude())),
			variant.Entry("longitude", variant.Double(gp.GetLongitude())),
		), nil

	case fieldvalue.TypeReference:
		return variant.Map(
			variant.Entry(fieldSpecial, variant.Bool(true)),
			variant.Entry(fieldType, variant.String(typeDocumentReference)),
			variant.Entry("document_path", variant.String(refPath(from.ReferenceValue()))),
		), nil

	case fieldvalue.TypeDelete:
		return variant.Map(
			variant.Entry(fieldSpecial, variant.Bool(true)),
			variant.Entry(fieldType, variant.String(typeDelete)),
		), nil

	case fieldvalue.TypeServerTimestamp:
		return variant.Map(
			variant.Entry(fieldSpecial, variant.Bool(true)),
			variant.Entry(fieldType, variant.String(typeServerTimestamp)),
		), nil

	// These sentinels don't expose their operands, so there is nothing
	// to round-trip. Callers must filter them out.
	case fieldvalue.TypeArrayUnion, fieldvalue.TypeArrayRemove,
		fieldvalue.TypeIncrementInteger, fieldvalue.TypeIncrementDouble:
		return variant.Variant{}, fmt.Errorf("%w: %s", ErrUnsupportedSentinel, from.Type())

	default:
		return variant.Variant{}, fmt.Errorf("%w: field value tag %d", ErrUnknownType, from.Type())
	}
}

func (c *Converter) decodeArray(from []fieldvalue.Value) (variant.Variant, error) {
	result := make([]variant.Variant, 0, len(from))
	for i, v := range from {
		elem, err := c.ToVariant(v)
		if err != nil {
			return variant.Variant{}, fmt.Errorf("element %d: %w", i, err)
		}
		result = append(result, elem)
	}
	return variant.Vector(result), nil
}

func (c *Converter) decodeMap(from map[string]fieldvalue.Value) (variant.Variant, error) {
	// Nested arrays were stored as array-map-array envelopes; unwrap
	// them so the original shape round-trips. Any other map, special
	// marker or not, decodes as a regular map: its content is already
	// representable.
	if fvGetBool(from, fieldSpecial) && fvGetString(from, fieldType) == typeNestedArray {
		return c.decodeArray(fvGetArray(from, fieldValue))
	}
	return c.decodeRegularMap(from)
}

func (c *Converter) decodeRegularMap(from map[string]fieldvalue.Value) (variant.Variant, error) {
	keys := make([]string, 0, len(from))
	for k := range from {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]variant.MapEntry, 0, len(from))
	for _, k := range keys {
		v, err := c.ToVariant(from[k])
		if err != nil {
			return variant.Variant{}, fmt.Errorf("key %q: %w", k, err)
		}
		entries = append(entries, variant.Entry(k, v))
	}
	return variant.Map(entries...), nil
}
