package fieldvalue

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/genproto/googleapis/type/latlng"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ErrUnsupportedNative is returned by FromNative for Go values the
// Firestore client never produces from a document snapshot.
var ErrUnsupportedNative = errors.New("unsupported native value")

// Native renders the value as the Go types the Firestore client accepts
// in Set/Update calls: maps, slices, time.Time, *latlng.LatLng,
// *firestore.DocumentRef and the client's sentinel values.
func (v Value) Native() interface{} {
	switch v.typ {
	case TypeNull:
		return nil
	case TypeBoolean:
		return v.b
	case TypeInteger:
		return v.i
	case TypeDouble:
		return v.f
	case TypeString:
		return v.s
	case TypeBlob:
		return bytes.Clone(v.blob)
	case TypeArray:
		out := make([]interface{}, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Native()
		}
		return out
	case TypeMap:
		out := make(map[string]interface{}, len(v.m))
		for k, e := range v.m {
			out[k] = e.Native()
		}
		return out
	case TypeTimestamp:
		return v.TimestampTime()
	case TypeGeoPoint:
		return v.gp
	case TypeReference:
		return v.ref
	case TypeDelete:
		return firestore.Delete
	case TypeServerTimestamp:
		return firestore.ServerTimestamp
	case TypeArrayUnion:
		elems := make([]interface{}, len(v.arr))
		for i, e := range v.arr {
			elems[i] = e.Native()
		}
		return firestore.ArrayUnion(elems...)
	case TypeArrayRemove:
		elems := make([]interface{}, len(v.arr))
		for i, e := range v.arr {
			elems[i] = e.Native()
		}
		return firestore.ArrayRemove(elems...)
	case TypeIncrementInteger:
		return firestore.Increment(v.i)
	case TypeIncrementDouble:
		return firestore.Increment(v.f)
	default:
		return nil
	}
}

// FromNative builds a Value from what DocumentSnapshot.Data returns.
// Numbers arrive as int64 or float64 from the client, but int, int32 and
// float32 are accepted too for values assembled by hand.
func FromNative(raw interface{}) (Value, error) {
	switch val := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Boolean(val), nil
	case int:
		return Integer(int64(val)), nil
	case int32:
		return Integer(int64(val)), nil
	case int64:
		return Integer(val), nil
	case float32:
		return Double(float64(val)), nil
	case float64:
		return Double(val), nil
	case string:
		return String(val), nil
	case []byte:
		return Blob(val), nil
	case time.Time:
		return TimestampFromTime(val), nil
	case *timestamppb.Timestamp:
		return TimestampFromProto(val), nil
	case *latlng.LatLng:
		return GeoPointFromProto(val), nil
	case *firestore.DocumentRef:
		return Reference(val), nil
	case []interface{}:
		elems := make([]Value, len(val))
		for i, e := range val {
			ev, err := FromNative(e)
			if err != nil {
				return Value{}, fmt.Errorf("array element %d: %w", i, err)
			}
			elems[i] = ev
		}
		return Array(elems), nil
	case map[string]interface{}:
		fields := make(map[string]Value, len(val))
		for k, e := range val {
			ev, err := FromNative(e)
			if err != nil {
				return Value{}, fmt.Errorf("field %q: %w", k, err)
			}
			fields[k] = ev
		}
		return Map(fields), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedNative, raw)
	}
}
