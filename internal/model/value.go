package model

import (
	"encoding/json"
	"strconv"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindNumber represents a numeric value.
	KindNumber
	// KindString represents a string value.
	KindString
	// KindBool represents a boolean value.
	KindBool
	// KindArray represents an array value.
	KindArray
)

// Value is the closed set of types a filter condition value can take:
// string, number, boolean, array, or null. Using a tagged struct instead
// of `any` lets the operator evaluator switch on Kind rather than reflect.
type Value struct {
	Kind Kind    `json:"-"`
	Num  float64 `json:"-"`
	Str  string  `json:"-"`
	Bool bool    `json:"-"`
	Arr  []Value `json:"-"`
}

// Null returns the null value.
func Null() Value {
	return Value{Kind: KindNull}
}

// String returns a string value.
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// Boolean returns a boolean value.
func Boolean(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// Array returns an array value.
func Array(items ...Value) Value {
	return Value{Kind: KindArray, Arr: items}
}

// ValueOf converts a dynamically typed value (as produced by encoding/json)
// into a Value. Unsupported types map to KindInvalid.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case string:
		return String(x)
	case bool:
		return Boolean(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return String(x.String())
		}
		return Number(f)
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = ValueOf(item)
		}
		return Value{Kind: KindArray, Arr: items}
	case []string:
		items := make([]Value, len(x))
		for i, s := range x {
			items[i] = String(s)
		}
		return Value{Kind: KindArray, Arr: items}
	case Value:
		return x
	default:
		return Value{Kind: KindInvalid}
	}
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Text returns the string form of the value, used by the string-based
// operators (contains, startsWith, endsWith, regex).
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// AsNumber returns the numeric form of the value and whether the
// conversion is meaningful. Numeric strings are parsed.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindString:
		f, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Equal reports strict equality between two values. Numbers compare
// numerically; otherwise kinds must match.
func (v Value) Equal(o Value) bool {
	if v.Kind == KindNumber && o.Kind == KindNumber {
		return v.Num == o.Num
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindString:
		return v.Str == o.Str
	case KindBool:
		return v.Bool == o.Bool
	case KindArray:
		if len(v.Arr) != len(o.Arr) {
			return false
		}
		for i := range v.Arr {
			if !v.Arr[i].Equal(o.Arr[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// MarshalJSON encodes the value as its native JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindArray:
		if v.Arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Arr)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes any JSON scalar or array into a Value.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = ValueOf(raw)
	return nil
}
