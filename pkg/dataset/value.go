// Package dataset defines the tabular data model consumed by the
// reconciliation engine: scalar cell values, records, and datasets.
// Everything in this package is immutable once constructed.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a single scalar cell: a string, a number, or null.
type Value struct {
	raw any
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// String returns a string-valued cell.
func String(s string) Value {
	return Value{raw: s}
}

// Number returns a float-valued cell.
func Number(f float64) Value {
	return Value{raw: f}
}

// Int returns an integer-valued cell.
func Int(i int64) Value {
	return Value{raw: i}
}

// From converts an arbitrary scalar into a Value. Unsupported types are
// stringified with fmt so loaders never have to special-case driver output.
func From(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case string:
		return String(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint64:
		return Int(int64(x))
	case bool:
		if x {
			return String("true")
		}
		return String("false")
	case []byte:
		return String(string(x))
	default:
		return String(fmt.Sprintf("%v", x))
	}
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.raw == nil
}

// Raw returns the underlying scalar (string, float64, int64, or nil).
func (v Value) Raw() any {
	return v.raw
}

// String renders the value for display. Null renders as the empty string and
// floats render without a trailing ".0" so integral counts stay readable.
func (v Value) String() string {
	switch x := v.raw.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Float attempts a numeric reading of the value. String contents are parsed
// after trimming whitespace; percent handling is the comparator's concern,
// not the data model's.
func (v Value) Float() (float64, bool) {
	switch x := v.raw.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Equal reports raw equality between two values.
func (v Value) Equal(o Value) bool {
	return v.raw == o.raw
}
