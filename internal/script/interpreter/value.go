package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueType represents the type of a value
type ValueType int

const (
	// ValueTypeNull represents a null value
	ValueTypeNull ValueType = iota
	// ValueTypeInt represents a 64-bit integer
	ValueTypeInt
	// ValueTypeFloat represents a 64-bit float
	ValueTypeFloat
	// ValueTypeString represents a string value
	ValueTypeString
	// ValueTypeBool represents a boolean value
	ValueTypeBool
	// ValueTypeList represents a list value
	ValueTypeList
	// ValueTypeBuiltin represents a builtin function
	ValueTypeBuiltin
)

// String returns the string representation of the value type
func (vt ValueType) String() string {
	switch vt {
	case ValueTypeNull:
		return "null"
	case ValueTypeInt:
		return "int"
	case ValueTypeFloat:
		return "float"
	case ValueTypeString:
		return "string"
	case ValueTypeBool:
		return "bool"
	case ValueTypeList:
		return "list"
	case ValueTypeBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// Value represents a runtime value. Type().String() and String() are what the
// console prints for a value, so every implementation must describe itself.
type Value interface {
	Type() ValueType
	String() string
	IsTruthy() bool
	Equals(other Value) bool
}

// NullValue represents a null value
type NullValue struct{}

func (n *NullValue) Type() ValueType { return ValueTypeNull }
func (n *NullValue) String() string  { return "null" }
func (n *NullValue) IsTruthy() bool  { return false }
func (n *NullValue) Equals(other Value) bool {
	_, ok := other.(*NullValue)
	return ok
}

// IntValue represents an integer value
type IntValue struct {
	Value int64
}

func (n *IntValue) Type() ValueType { return ValueTypeInt }
func (n *IntValue) String() string  { return strconv.FormatInt(n.Value, 10) }
func (n *IntValue) IsTruthy() bool  { return n.Value != 0 }
func (n *IntValue) Equals(other Value) bool {
	switch o := other.(type) {
	case *IntValue:
		return n.Value == o.Value
	case *FloatValue:
		return float64(n.Value) == o.Value
	}
	return false
}

// FloatValue represents a floating point value
type FloatValue struct {
	Value float64
}

func (f *FloatValue) Type() ValueType { return ValueTypeFloat }

// String always renders a decimal point or exponent so floats stay
// distinguishable from ints.
func (f *FloatValue) String() string {
	if math.IsInf(f.Value, 0) || math.IsNaN(f.Value) {
		return strconv.FormatFloat(f.Value, 'g', -1, 64)
	}
	format := byte('f')
	if abs := math.Abs(f.Value); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'g'
	}
	s := strconv.FormatFloat(f.Value, format, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
func (f *FloatValue) IsTruthy() bool { return f.Value != 0 }
func (f *FloatValue) Equals(other Value) bool {
	switch o := other.(type) {
	case *FloatValue:
		return f.Value == o.Value
	case *IntValue:
		return f.Value == float64(o.Value)
	}
	return false
}

// StringValue represents a string value
type StringValue struct {
	Value string
}

func (s *StringValue) Type() ValueType { return ValueTypeString }
func (s *StringValue) String() string  { return s.Value }
func (s *StringValue) IsTruthy() bool  { return s.Value != "" }
func (s *StringValue) Equals(other Value) bool {
	if otherStr, ok := other.(*StringValue); ok {
		return s.Value == otherStr.Value
	}
	return false
}

// BoolValue represents a boolean value
type BoolValue struct {
	Value bool
}

func (b *BoolValue) Type() ValueType { return ValueTypeBool }
func (b *BoolValue) String() string  { return strconv.FormatBool(b.Value) }
func (b *BoolValue) IsTruthy() bool  { return b.Value }
func (b *BoolValue) Equals(other Value) bool {
	if otherBool, ok := other.(*BoolValue); ok {
		return b.Value == otherBool.Value
	}
	return false
}

// ListValue represents an ordered list of values
type ListValue struct {
	Elements []Value
}

func (l *ListValue) Type() ValueType { return ValueTypeList }
func (l *ListValue) String() string {
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		parts[i] = inspect(el)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *ListValue) IsTruthy() bool { return len(l.Elements) > 0 }
func (l *ListValue) Equals(other Value) bool {
	otherList, ok := other.(*ListValue)
	if !ok || len(otherList.Elements) != len(l.Elements) {
		return false
	}
	for i, el := range l.Elements {
		if !el.Equals(otherList.Elements[i]) {
			return false
		}
	}
	return true
}

// BuiltinFunction is the Go implementation behind a builtin.
type BuiltinFunction func(args []Value) (Value, error)

// BuiltinValue represents a built-in function value
type BuiltinValue struct {
	Name string
	Fn   BuiltinFunction
}

func (b *BuiltinValue) Type() ValueType { return ValueTypeBuiltin }
func (b *BuiltinValue) String() string  { return fmt.Sprintf("<builtin %s>", b.Name) }
func (b *BuiltinValue) IsTruthy() bool  { return true }
func (b *BuiltinValue) Equals(other Value) bool {
	if otherBuiltin, ok := other.(*BuiltinValue); ok {
		return b.Name == otherBuiltin.Name
	}
	return false
}

// inspect renders a value nested inside a list; strings are quoted.
func inspect(v Value) string {
	if s, ok := v.(*StringValue); ok {
		return strconv.Quote(s.Value)
	}
	return v.String()
}

// IsNull reports whether v is absent or the null value.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(*NullValue)
	return ok
}
