// Package fieldvalue implements the document-field value model: the
// closed set of types a Firestore document field can hold, including the
// server-side sentinels (delete, server timestamp, array union/remove,
// increments) that carry an operation rather than a stored value.
package fieldvalue

import (
	"bytes"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/genproto/googleapis/type/latlng"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type Type int

const (
	TypeNull Type = iota
	TypeBoolean
	TypeInteger
	TypeDouble
	TypeString
	TypeBlob
	TypeArray
	TypeMap
	TypeTimestamp
	TypeGeoPoint
	TypeReference
	TypeDelete
	TypeServerTimestamp
	TypeArrayUnion
	TypeArrayRemove
	TypeIncrementInteger
	TypeIncrementDouble
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeBlob:
		return "blob"
	case TypeArray:
		return "array"
	case TypeMap:
		return "map"
	case TypeTimestamp:
		return "timestamp"
	case TypeGeoPoint:
		return "geo_point"
	case TypeReference:
		return "reference"
	case TypeDelete:
		return "delete"
	case TypeServerTimestamp:
		return "server_timestamp"
	case TypeArrayUnion:
		return "array_union"
	case TypeArrayRemove:
		return "array_remove"
	case TypeIncrementInteger:
		return "increment_integer"
	case TypeIncrementDouble:
		return "increment_double"
	default:
		return "unknown"
	}
}

// Value is an immutable document-field value. The zero Value is null.
type Value struct {
	typ  Type
	b    bool
	i    int64
	f    float64
	s    string
	blob []byte
	arr  []Value // also the operand of array_union / array_remove
	m    map[string]Value
	sec  int64
	nsec int32
	gp   *latlng.LatLng
	ref  *firestore.DocumentRef
}

func Null() Value { return Value{typ: TypeNull} }

func Boolean(b bool) Value { return Value{typ: TypeBoolean, b: b} }

func Integer(i int64) Value { return Value{typ: TypeInteger, i: i} }

func Double(f float64) Value { return Value{typ: TypeDouble, f: f} }

func String(s string) Value { return Value{typ: TypeString, s: s} }

// Blob returns a blob value owning a copy of b.
func Blob(b []byte) Value { return Value{typ: TypeBlob, blob: bytes.Clone(b)} }

func Array(elems []Value) Value {
	a := make([]Value, len(elems))
	copy(a, elems)
	return Value{typ: TypeArray, arr: a}
}

func Map(fields map[string]Value) Value {
	m := make(map[string]Value, len(fields))
	for k, v := range fields {
		m[k] = v
	}
	return Value{typ: TypeMap, m: m}
}

func Timestamp(seconds int64, nanoseconds int32) Value {
	return Value{typ: TypeTimestamp, sec: seconds, nsec: nanoseconds}
}

func TimestampFromTime(t time.Time) Value {
	return Timestamp(t.Unix(), int32(t.Nanosecond()))
}

func TimestampFromProto(ts *timestamppb.Timestamp) Value {
	return Timestamp(ts.GetSeconds(), ts.GetNanos())
}

func GeoPoint(latitude, longitude float64) Value {
	return Value{typ: TypeGeoPoint, gp: &latlng.LatLng{Latitude: latitude, Longitude: longitude}}
}

func GeoPointFromProto(gp *latlng.LatLng) Value {
	return GeoPoint(gp.GetLatitude(), gp.GetLongitude())
}

func Reference(ref *firestore.DocumentRef) Value {
	return Value{typ: TypeReference, ref: ref}
}

func Delete() Value { return Value{typ: TypeDelete} }

func ServerTimestamp() Value { return Value{typ: TypeServerTimestamp} }

func ArrayUnion(elems ...Value) Value {
	a := make([]Value, len(elems))
	copy(a, elems)
	return Value{typ: TypeArrayUnion, arr: a}
}

func ArrayRemove(elems ...Value) Value {
	a := make([]Value, len(elems))
	copy(a, elems)
	return Value{typ: TypeArrayRemove, arr: a}
}

func IncrementInteger(by int64) Value {
	return Value{typ: TypeIncrementInteger, i: by}
}

func IncrementDouble(by float64) Value {
	return Value{typ: TypeIncrementDouble, f: by}
}

func (v Value) Type() Type { return v.typ }

func (v Value) IsNull() bool { return v.typ == TypeNull }

func (v Value) BooleanValue() bool { return v.b }

func (v Value) IntegerValue() int64 { return v.i }

func (v Value) DoubleValue() float64 { return v.f }

func (v Value) StringValue() string { return v.s }

func (v Value) BlobValue() []byte { return v.blob }

func (v Value) ArrayValue() []Value { return v.arr }

func (v Value) MapValue() map[string]Value { return v.m }

func (v Value) TimestampSeconds() int64 { return v.sec }

func (v Value) TimestampNanoseconds() int32 { return v.nsec }

func (v Value) TimestampTime() time.Time {
	return time.Unix(v.sec, int64(v.nsec)).UTC()
}

func (v Value) TimestampProto() *timestamppb.Timestamp {
	return &timestamppb.Timestamp{Seconds: v.sec, Nanos: v.nsec}
}

func (v Value) GeoPointValue() *latlng.LatLng { return v.gp }

func (v Value) ReferenceValue() *firestore.DocumentRef { return v.ref }

// Equal reports structural equality. References compare by resource
// path, geo points by coordinates.
func (v Value) Equal(o Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeNull, TypeDelete, TypeServerTimestamp:
		return true
	case TypeBoolean:
		return v.b == o.b
	case TypeInteger, TypeIncrementInteger:
		return v.i == o.i
	case TypeDouble, TypeIncrementDouble:
		return v.f == o.f
	case TypeString:
		return v.s == o.s
	case TypeBlob:
		return bytes.Equal(v.blob, o.blob)
	case TypeArray, TypeArrayUnion, TypeArrayRemove:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case TypeMap:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, val := range v.m {
			ov, ok := o.m[k]
			if !ok || !val.Equal(ov) {
				return false
			}
		}
		return true
	case TypeTimestamp:
		return v.sec == o.sec && v.nsec == o.nsec
	case TypeGeoPoint:
		return v.gp.GetLatitude() == o.gp.GetLatitude() &&
			v.gp.GetLongitude() == o.gp.GetLongitude()
	case TypeReference:
		if v.ref == nil || o.ref == nil {
			return v.ref == o.ref
		}
		return v.ref.Path == o.ref.Path
	default:
		return false
	}
}
