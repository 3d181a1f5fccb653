package command

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Render serializes a command to MongoDB extended JSON. Parameter markers
// render as {"$undefined":true}; the host substitutes bound values via
// BindParameters before execution, so the rendered text is stable across
// executions and safe to cache or log.
func Render(c Command) (string, error) {
	out, err := bson.MarshalExtJSON(c.Wire(), false, false)
	if err != nil {
		return "", fmt.Errorf("render %T: %w", c, err)
	}
	return string(out), nil
}

// BindParameters returns a copy of the command document with every
// parameter marker replaced by the corresponding bound value, in render
// order. The values must align one-to-one with the markers; a mismatch is
// a defect in binder bookkeeping, not an input error, and panics.
func BindParameters(doc bson.D, values []interface{}) bson.D {
	next := 0
	bound := substituteDoc(doc, values, &next)
	if next != len(values) {
		panic(fmt.Sprintf("command: %d bound values for %d parameter markers", len(values), next))
	}
	return bound
}

func substituteDoc(doc bson.D, values []interface{}, next *int) bson.D {
	out := make(bson.D, len(doc))
	for i, e := range doc {
		out[i] = bson.E{Key: e.Key, Value: substituteValue(e.Value, values, next)}
	}
	return out
}

func substituteValue(v interface{}, values []interface{}, next *int) interface{} {
	switch x := v.(type) {
	case bson.Undefined:
		if *next >= len(values) {
			panic(fmt.Sprintf("command: %d bound values for more parameter markers", len(values)))
		}
		bound := values[*next]
		*next++
		return bound
	case bson.D:
		return substituteDoc(x, values, next)
	case bson.A:
		out := make(bson.A, len(x))
		for i, item := range x {
			out[i] = substituteValue(item, values, next)
		}
		return out
	default:
		return v
	}
}
