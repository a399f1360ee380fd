package feature

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind identifies the variant held by a Value.
type ValueKind int

const (
	// Absent is the kind of the zero Value.
	Absent ValueKind = iota
	// Number is the kind of a Value holding a float64.
	Number
	// String is the kind of a Value holding a string.
	String
)

/*
Value is a feature value, threshold or outcome: either a number,
a string, or absent. The zero Value is absent.
*/
type Value struct {
	kind ValueKind
	num  float64
	str  string
}

// NumberValue returns a Value holding the given number.
func NumberValue(f float64) Value {
	return Value{kind: Number, num: f}
}

// StringValue returns a Value holding the given string.
func StringValue(s string) Value {
	return Value{kind: String, str: s}
}

// Kind returns the variant held by the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsAbsent reports whether the value holds nothing.
func (v Value) IsAbsent() bool {
	return v.kind == Absent
}

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool {
	return v.kind == Number
}

// Float returns the number held by the value and whether it holds one.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == Number
}

// Text returns the string held by the value and whether it holds one.
func (v Value) Text() (string, bool) {
	return v.str, v.kind == String
}

// Equal reports whether both values are of the same kind and hold the same data.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Number:
		return v.num == o.num
	case String:
		return v.str == o.str
	}
	return true
}

/*
Less reports whether v sorts before o. Absent values sort first, then
numbers in ascending numeric order, then strings in lexicographic order.
*/
func (v Value) Less(o Value) bool {
	if v.kind != o.kind {
		return v.kind < o.kind
	}
	switch v.kind {
	case Number:
		return v.num < o.num
	case String:
		return v.str < o.str
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case Number:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case String:
		return v.str
	}
	return "<absent>"
}

// MarshalJSON encodes numbers and strings as their JSON counterparts and
// absent values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Number:
		return json.Marshal(v.num)
	case String:
		return json.Marshal(v.str)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes a JSON number, string or null into the value.
func (v *Value) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch r := raw.(type) {
	case nil:
		*v = Value{}
	case float64:
		*v = NumberValue(r)
	case string:
		*v = StringValue(r)
	default:
		return fmt.Errorf("unsupported value %s of type %T", b, raw)
	}
	return nil
}
