// Package convert translates between the two value models of the
// bridge: loosely typed Realtime Database variants and Firestore
// document-field values.
//
// Both directions are lossless for everything the target model can
// express. Shapes with no native counterpart ride in "special" maps: a
// map with a boolean field "special" set to true and a string field
// "type" naming the payload. Nested arrays (which Firestore rejects)
// are wrapped the same way under type "nested_array". These maps
// round-trip exactly, so the wire convention is part of the public
// contract and must not change.
//
// Conversions that cannot be expressed at all (the array union/remove
// and increment sentinels, whose operands the other model cannot carry)
// return typed errors instead of values.
package convert

import (
	"errors"
	"strings"

	"cloud.google.com/go/firestore"

	"github.com/ripixel/firevariant/pkg/fieldvalue"
	"github.com/ripixel/firevariant/pkg/variant"
)

// Envelope field and type names. These are interchange format, shared
// with every other implementation of the convention.
const (
	fieldSpecial = "special"
	fieldType    = "type"
	fieldValue   = "value"

	typeNestedArray       = "nested_array"
	typeTimestamp         = "timestamp"
	typeGeoPoint          = "geo_point"
	typeDocumentReference = "document_reference"
	typeDelete            = "delete"
	typeServerTimestamp   = "server_timestamp"
)

var (
	// ErrInvalidMapKey is returned when a variant map holds a
	// non-string key. Firestore documents only support string keys.
	ErrInvalidMapKey = errors.New("map key is not a string")

	// ErrUnsupportedSentinel is returned for field values whose
	// operands cannot be read back (array union/remove, increments).
	ErrUnsupportedSentinel = errors.New("sentinel value cannot be converted")

	// ErrUnknownType is returned for a value tag outside either model's
	// closed set. It indicates a caller bug, not bad data.
	ErrUnknownType = errors.New("unknown value type")

	// ErrNoResolver is returned when a document_reference envelope is
	// encoded on a Converter built without a Resolver.
	ErrNoResolver = errors.New("no document resolver configured")
)

// Resolver turns a slash-delimited document path into a document
// reference. *firestore.Client satisfies it directly.
type Resolver interface {
	Doc(path string) *firestore.DocumentRef
}

// Converter converts variants to field values and back. It is stateless
// apart from the resolver and safe for concurrent use.
type Converter struct {
	resolver Resolver
}

// New builds a Converter. The resolver may be nil for callers that never
// convert document_reference envelopes.
func New(r Resolver) *Converter {
	return &Converter{resolver: r}
}

// refPath returns the path of a reference relative to the database
// documents root, the form stored in document_path envelope fields.
func refPath(ref *firestore.DocumentRef) string {
	const root = "/documents/"
	if i := strings.Index(ref.Path, root); i >= 0 {
		return ref.Path[i+len(root):]
	}
	return ref.Path
}

// Lookup helpers over variant maps. Missing keys and type mismatches
// yield zero values, mirroring how envelope payloads are read: a
// malformed envelope degrades, it does not fail.

func tryGetBool(m variant.Variant, key string) bool {
	v, ok := m.MapGet(key)
	if !ok || v.Type() != variant.TypeBool {
		return false
	}
	return v.BoolValue()
}

func tryGetInt64(m variant.Variant, key string) int64 {
	v, ok := m.MapGet(key)
	if !ok || v.Type() != variant.TypeInt64 {
		return 0
	}
	return v.Int64Value()
}

func tryGetDouble(m variant.Variant, key string) float64 {
	v, ok := m.MapGet(key)
	if !ok || v.Type() != variant.TypeDouble {
		return 0
	}
	return v.DoubleValue()
}

func tryGetString(m variant.Variant, key string) string {
	v, ok := m.MapGet(key)
	if !ok || !v.IsString() {
		return ""
	}
	return v.StringValue()
}

// Same helpers over field-value maps.

func fvGetBool(m map[string]fieldvalue.Value, key string) bool {
	v, ok := m[key]
	if !ok || v.Type() != fieldvalue.TypeBoolean {
		return false
	}
	return v.BooleanValue()
}

func fvGetString(m map[string]fieldvalue.Value, key string) string {
	v, ok := m[key]
	if !ok || v.Type() != fieldvalue.TypeString {
		return ""
	}
	return v.StringValue()
}

func fvGetArray(m map[string]fieldvalue.Value, key string) []fieldvalue.Value {
	v, ok := m[key]
	if !ok || v.Type() != fieldvalue.TypeArray {
		return nil
	}
	return v.ArrayValue()
}
