// Package variant implements the loosely typed value model used by the
// Realtime Database side of the bridge: a closed tagged union over null,
// booleans, 64-bit integers, doubles, strings, blobs, vectors and maps.
// Strings and blobs carry an ownership flavor (static vs mutable); the
// flavor only matters for aliasing, not for comparison or conversion.
package variant

import "bytes"

type Type int

const (
	TypeNull Type = iota
	TypeBool
	TypeInt64
	TypeDouble
	TypeStaticString
	TypeMutableString
	TypeStaticBlob
	TypeMutableBlob
	TypeVector
	TypeMap
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt64:
		return "int64"
	case TypeDouble:
		return "double"
	case TypeStaticString:
		return "static_string"
	case TypeMutableString:
		return "mutable_string"
	case TypeStaticBlob:
		return "static_blob"
	case TypeMutableBlob:
		return "mutable_blob"
	case TypeVector:
		return "vector"
	case TypeMap:
		return "map"
	default:
		return "unknown"
	}
}

// MapEntry is one key/value pair of a Variant map. Keys are Variants so
// the model can represent maps with non-string keys, even though most
// consumers (the converter included) only accept string keys.
type MapEntry struct {
	Key   Variant
	Value Variant
}

// Variant is an immutable loosely typed value. The zero Variant is null.
type Variant struct {
	typ     Type
	b       bool
	i       int64
	f       float64
	s       string
	blob    []byte
	vec     []Variant
	entries []MapEntry
}

func Null() Variant { return Variant{typ: TypeNull} }

func Bool(b bool) Variant { return Variant{typ: TypeBool, b: b} }

func Int64(i int64) Variant { return Variant{typ: TypeInt64, i: i} }

func Double(f float64) Variant { return Variant{typ: TypeDouble, f: f} }

// String returns a mutable (owned) string variant.
func String(s string) Variant { return Variant{typ: TypeMutableString, s: s} }

// StaticString returns a static (borrowed) string variant.
func StaticString(s string) Variant { return Variant{typ: TypeStaticString, s: s} }

// Blob returns a mutable blob variant owning a copy of b.
func Blob(b []byte) Variant {
	return Variant{typ: TypeMutableBlob, blob: bytes.Clone(b)}
}

// StaticBlob returns a static blob variant aliasing b. The caller must
// keep b alive and unmodified for the lifetime of the variant.
func StaticBlob(b []byte) Variant {
	return Variant{typ: TypeStaticBlob, blob: b}
}

func Vector(elems []Variant) Variant {
	v := make([]Variant, len(elems))
	copy(v, elems)
	return Variant{typ: TypeVector, vec: v}
}

// Map returns a map variant holding the given entries in order.
func Map(entries ...MapEntry) Variant {
	e := make([]MapEntry, len(entries))
	copy(e, entries)
	return Variant{typ: TypeMap, entries: e}
}

// Entry builds a map entry with a string key.
func Entry(key string, v Variant) MapEntry {
	return MapEntry{Key: String(key), Value: v}
}

func (v Variant) Type() Type { return v.typ }

func (v Variant) IsNull() bool { return v.typ == TypeNull }

// IsString reports whether v is a string of either ownership flavor.
func (v Variant) IsString() bool {
	return v.typ == TypeStaticString || v.typ == TypeMutableString
}

// IsBlob reports whether v is a blob of either ownership flavor.
func (v Variant) IsBlob() bool {
	return v.typ == TypeStaticBlob || v.typ == TypeMutableBlob
}

func (v Variant) IsVector() bool { return v.typ == TypeVector }

func (v Variant) IsMap() bool { return v.typ == TypeMap }

func (v Variant) BoolValue() bool { return v.b }

func (v Variant) Int64Value() int64 { return v.i }

func (v Variant) DoubleValue() float64 { return v.f }

func (v Variant) StringValue() string { return v.s }

func (v Variant) BlobValue() []byte { return v.blob }

func (v Variant) VectorValue() []Variant { return v.vec }

func (v Variant) Entries() []MapEntry { return v.entries }

// MapGet looks up a string key in a map variant.
func (v Variant) MapGet(key string) (Variant, bool) {
	for _, e := range v.entries {
		if e.Key.IsString() && e.Key.StringValue() == key {
			return e.Value, true
		}
	}
	return Variant{}, false
}

// Equal reports structural equality. Ownership flavor of strings and
// blobs is ignored, and map entries are compared without regard to
// order, so values that round-trip through a document store (which
// normalizes both) still compare equal to the originals.
func (v Variant) Equal(o Variant) bool {
	if v.IsString() || v.IsBlob() {
		if v.IsString() {
			return o.IsString() && v.s == o.s
		}
		return o.IsBlob() && bytes.Equal(v.blob, o.blob)
	}
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeNull:
		return true
	case TypeBool:
		return v.b == o.b
	case TypeInt64:
		return v.i == o.i
	case TypeDouble:
		return v.f == o.f
	case TypeVector:
		if len(v.vec) != len(o.vec) {
			return false
		}
		for i := range v.vec {
			if !v.vec[i].Equal(o.vec[i]) {
				return false
			}
		}
		return true
	case TypeMap:
		if len(v.entries) != len(o.entries) {
			return false
		}
		for _, e := range v.entries {
			found := false
			for _, oe := range o.entries {
				if e.Key.Equal(oe.Key) {
					found = e.Value.Equal(oe.Value)
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	default:
		return false
	}
}
