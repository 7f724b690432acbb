package fixtures

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/leapstack-labs/leaprel/pkg/rel"
)

// ErrUnsupportedValue is returned for data that has no query-language kind.
var ErrUnsupportedValue = errors.New("unsupported value")

// toValue converts a decoded Go value into a scalar.
func toValue(v any) (rel.Value, error) {
	switch v := v.(type) {
	case nil:
		return rel.Null, nil
	case string:
		return rel.Str(v), nil
	case []byte:
		return rel.Str(string(v)), nil
	case bool:
		return rel.Bool(v), nil
	case int:
		return rel.Int(v), nil
	case int8:
		return rel.Int(v), nil
	case int16:
		return rel.Int(v), nil
	case int32:
		return rel.Int(v), nil
	case int64:
		return rel.Int(v), nil
	case uint8:
		return rel.Int(v), nil
	case uint16:
		return rel.Int(v), nil
	case uint32:
		return rel.Int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("%w: integer %d out of range", ErrUnsupportedValue, v)
		}
		return rel.Int(v), nil
	case time.Time:
		return rel.Str(v.Format(time.RFC3339)), nil
	case float32, float64:
		return nil, fmt.Errorf("%w: floating point %v (only integers are supported)", ErrUnsupportedValue, v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

// toTuple converts one decoded row.
func toTuple(row []any) (rel.Tuple, error) {
	vals := make([]rel.Value, len(row))
	for i, v := range row {
		val, err := toValue(v)
		if err != nil {
			return rel.Tuple{}, err
		}
		vals[i] = val
	}
	return rel.NewTuple(vals...), nil
}

// parseCell infers the kind of a text cell: integers, then true/false,
// otherwise the text itself.
func parseCell(s string) rel.Value {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return rel.Int(n)
	}
	switch s {
	case "true":
		return rel.Bool(true)
	case "false":
		return rel.Bool(false)
	}
	return rel.Str(s)
}
