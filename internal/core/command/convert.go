package command

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mongolift/mongolift/internal/core/feature"
)

// ToNative converts a host value to its BSON representation. The accepted
// type set is closed; anything outside it fails with an unsupported-feature
// error rather than a lossy guess.
//
// Typed byte slices map to BSON binary, but untyped slices are rejected
// even when every element is a byte. The asymmetry mirrors the host
// engine's documented behavior and is kept deliberately.
func ToNative(v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool, string, int32, int64, float64:
		return x, nil
	case int:
		return int64(x), nil
	case int8:
		return int32(x), nil
	case int16:
		return int32(x), nil
	case uint8:
		return int32(x), nil
	case uint16:
		return int32(x), nil
	case uint32:
		return int64(x), nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return nil, feature.Errorf("unsigned overflow", "unsigned value %d exceeds the MongoDB integer range", x)
		}
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return nil, feature.Errorf("unsigned overflow", "unsigned value %d exceeds the MongoDB integer range", x)
		}
		return int64(x), nil
	case float32:
		return float64(x), nil
	case time.Time:
		return bson.NewDateTimeFromTime(x), nil
	case []byte:
		return bson.Binary{Subtype: 0x00, Data: x}, nil
	case bson.DateTime, bson.ObjectID, bson.Binary, bson.Decimal128:
		return x, nil
	default:
		return nil, feature.Errorf("value type", "values of type %T have no MongoDB representation", v)
	}
}
