package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind tags the scalar stored in a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Value is a single table cell as returned by the orders endpoint. Only JSON
// scalars are accepted; nested objects or arrays fail decoding.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	flag bool
}

// Null returns the null cell value.
func Null() Value { return Value{} }

// String builds a string cell.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number builds a numeric cell.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool builds a boolean cell.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Kind reports which scalar the value holds.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the cell is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload and whether the value is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Num returns the numeric payload and whether the value is a number.
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// Flag returns the boolean payload and whether the value is a bool.
func (v Value) Flag() (bool, bool) { return v.flag, v.kind == KindBool }

// Text stringifies the cell the same way the browser table did: strings
// verbatim, numbers in their shortest form, booleans as true/false and null
// as "null".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.flag)
	default:
		return "null"
	}
}

// String implements fmt.Stringer.
func (v Value) String() string { return v.Text() }

// MarshalJSON encodes the cell back to its JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.flag)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON scalar into the cell.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("dashboard: empty cell value")
	}
	switch data[0] {
	case 'n':
		*v = Null()
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("dashboard: decode bool cell: %w", err)
		}
		*v = Bool(b)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("dashboard: decode string cell: %w", err)
		}
		*v = String(s)
		return nil
	case '{', '[':
		return fmt.Errorf("dashboard: cell value must be a scalar, got %s", truncate(string(data), 32))
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("dashboard: decode number cell: %w", err)
		}
		*v = Number(n)
		return nil
	}
}

// ValueOf converts a native Go scalar into a Value. Unsupported types are
// formatted with %v and stored as strings.
func ValueOf(raw any) Value {
	switch val := raw.(type) {
	case nil:
		return Null()
	case Value:
		return val
	case string:
		return String(val)
	case bool:
		return Bool(val)
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case int32:
		return Number(float64(val))
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return Number(f)
		}
		return String(val.String())
	default:
		return String(fmt.Sprintf("%v", val))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
