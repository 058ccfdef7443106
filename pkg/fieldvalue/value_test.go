package fieldvalue

import (
	"reflect"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/genproto/googleapis/type/latlng"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestTimestampConstructors(t *testing.T) {
	want := Timestamp(123, 456)

	if got := TimestampFromTime(time.Unix(123, 456).UTC()); !got.Equal(want) {
		t.Errorf("TimestampFromTime = %+v", got)
	}
	if got := TimestampFromProto(&timestamppb.Timestamp{Seconds: 123, Nanos: 456}); !got.Equal(want) {
		t.Errorf("TimestampFromProto = %+v", got)
	}
	if got := want.TimestampProto(); got.Seconds != 123 || got.Nanos != 456 {
		t.Errorf("TimestampProto = %+v", got)
	}
	if got := want.TimestampTime(); got.Unix() != 123 || got.Nanosecond() != 456 {
		t.Errorf("TimestampTime = %v", got)
	}
}

func TestEqual(t *testing.T) {
	ref := &firestore.DocumentRef{Path: "projects/p/databases/d/documents/foo/bar", ID: "bar"}
	sameRef := &firestore.DocumentRef{Path: "projects/p/databases/d/documents/foo/bar", ID: "bar"}
	otherRef := &firestore.DocumentRef{Path: "projects/p/databases/d/documents/foo/baz", ID: "baz"}

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{name: "zero value is null", a: Value{}, b: Null(), want: true},
		{name: "boolean", a: Boolean(true), b: Boolean(true), want: true},
		{name: "integer vs double", a: Integer(1), b: Double(1), want: false},
		{name: "blob", a: Blob([]byte{1, 2}), b: Blob([]byte{1, 2}), want: true},
		{name: "timestamp", a: Timestamp(1, 2), b: Timestamp(1, 2), want: true},
		{name: "timestamp nanos differ", a: Timestamp(1, 2), b: Timestamp(1, 3), want: false},
		{name: "geo point", a: GeoPoint(43, 80), b: GeoPointFromProto(&latlng.LatLng{Latitude: 43, Longitude: 80}), want: true},
		{name: "reference by path", a: Reference(ref), b: Reference(sameRef), want: true},
		{name: "reference differs", a: Reference(ref), b: Reference(otherRef), want: false},
		{name: "delete", a: Delete(), b: Delete(), want: true},
		{name: "delete vs server timestamp", a: Delete(), b: ServerTimestamp(), want: false},
		{
			name: "maps",
			a:    Map(map[string]Value{"a": Integer(1), "b": String("x")}),
			b:    Map(map[string]Value{"b": String("x"), "a": Integer(1)}),
			want: true,
		},
		{
			name: "arrays ordered",
			a:    Array([]Value{Integer(1), Integer(2)}),
			b:    Array([]Value{Integer(2), Integer(1)}),
			want: false,
		},
		{name: "array union operands", a: ArrayUnion(Integer(1)), b: ArrayUnion(Integer(1)), want: true},
		{name: "increment", a: IncrementInteger(5), b: IncrementInteger(5), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNativeRoundTrip(t *testing.T) {
	ref := &firestore.DocumentRef{Path: "projects/p/databases/d/documents/foo/bar", ID: "bar"}

	orig := Map(map[string]Value{
		"null":    Null(),
		"bool":    Boolean(true),
		"int":     Integer(42),
		"double":  Double(1.5),
		"string":  String("abc"),
		"blob":    Blob([]byte{0xde, 0xad}),
		"time":    Timestamp(123, 456),
		"geo":     GeoPoint(43, 80),
		"ref":     Reference(ref),
		"array":   Array([]Value{Integer(1), String("x")}),
		"mapping": Map(map[string]Value{"inner": Boolean(false)}),
	})

	got, err := FromNative(orig.Native())
	if err != nil {
		t.Fatalf("FromNative: %v", err)
	}
	if !got.Equal(orig) {
		t.Errorf("round trip = %+v, want %+v", got, orig)
	}
}

func TestNativeSentinels(t *testing.T) {
	if got := Delete().Native(); got != firestore.Delete {
		t.Errorf("Delete().Native() = %v", got)
	}
	if got := ServerTimestamp().Native(); got != firestore.ServerTimestamp {
		t.Errorf("ServerTimestamp().Native() = %v", got)
	}
	if got := ArrayUnion(String("a")).Native(); !reflect.DeepEqual(got, firestore.ArrayUnion("a")) {
		t.Errorf("ArrayUnion.Native() = %#v", got)
	}
	if got := ArrayRemove(String("a")).Native(); !reflect.DeepEqual(got, firestore.ArrayRemove("a")) {
		t.Errorf("ArrayRemove.Native() = %#v", got)
	}
	if got := IncrementInteger(2).Native(); !reflect.DeepEqual(got, firestore.Increment(int64(2))) {
		t.Errorf("IncrementInteger.Native() = %#v", got)
	}
	if got := IncrementDouble(0.5).Native(); !reflect.DeepEqual(got, firestore.Increment(0.5)) {
		t.Errorf("IncrementDouble.Native() = %#v", got)
	}
}

func TestNativeTimestampIsTime(t *testing.T) {
	native := Timestamp(123, 456).Native()

	ts, ok := native.(time.Time)
	if !ok {
		t.Fatalf("Native() = %T, want time.Time", native)
	}
	if ts.Unix() != 123 || ts.Nanosecond() != 456 {
		t.Errorf("Native() = %v", ts)
	}
}

func TestFromNativeDefensiveNumbers(t *testing.T) {
	// Hand-assembled data often carries int where the client would
	// produce int64.
	tests := []struct {
		name string
		in   interface{}
		want Value
	}{
		{name: "int", in: int(7), want: Integer(7)},
		{name: "int32", in: int32(7), want: Integer(7)},
		{name: "int64", in: int64(7), want: Integer(7)},
		{name: "float32", in: float32(0.5), want: Double(0.5)},
		{name: "float64", in: float64(0.5), want: Double(0.5)},
		{name: "proto timestamp", in: &timestamppb.Timestamp{Seconds: 1, Nanos: 2}, want: Timestamp(1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromNative(tt.in)
			if err != nil {
				t.Fatalf("FromNative: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("FromNative(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromNativeUnsupported(t *testing.T) {
	if _, err := FromNative(struct{}{}); err == nil {
		t.Error("FromNative should reject unknown types")
	}
}
