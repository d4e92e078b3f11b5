package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

var builtins map[string]*BuiltinValue

func init() {
	builtins = map[string]*BuiltinValue{}
	register := func(name string, fn BuiltinFunction) {
		builtins[name] = &BuiltinValue{Name: name, Fn: fn}
	}
	register("len", builtinLen)
	register("str", builtinStr)
	register("int", builtinInt)
	register("float", builtinFloat)
	register("type", builtinType)
	register("abs", builtinAbs)
	register("min", builtinMinMax("min", func(a, b float64) bool { return a < b }))
	register("max", builtinMinMax("max", func(a, b float64) bool { return a > b }))
	register("upper", stringBuiltin("upper", strings.ToUpper))
	register("lower", stringBuiltin("lower", strings.ToLower))
	register("contains", builtinContains)
}

// IsBuiltin reports whether name refers to a builtin function
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// BuiltinNames returns the names of all builtin functions
func BuiltinNames() []string {
	return lo.Keys(builtins)
}

func expectArgs(name string, args []Value, n int) error {
	if len(args) != n {
		plural := "s"
		if n == 1 {
			plural = ""
		}
		return fmt.Errorf("%s expects %d argument%s, got %d", name, n, plural, len(args))
	}
	return nil
}

func builtinLen(args []Value) (Value, error) {
	if err := expectArgs("len", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case *StringValue:
		return &IntValue{Value: int64(utf8.RuneCountInString(v.Value))}, nil
	case *ListValue:
		return &IntValue{Value: int64(len(v.Elements))}, nil
	}
	return nil, fmt.Errorf("len: unsupported argument type %s", args[0].Type())
}

func builtinStr(args []Value) (Value, error) {
	if err := expectArgs("str", args, 1); err != nil {
		return nil, err
	}
	return &StringValue{Value: args[0].String()}, nil
}

func builtinInt(args []Value) (Value, error) {
	if err := expectArgs("int", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case *IntValue:
		return v, nil
	case *FloatValue:
		if math.IsNaN(v.Value) || math.IsInf(v.Value, 0) {
			return nil, fmt.Errorf("int: cannot convert %s to int", v.String())
		}
		return &IntValue{Value: int64(v.Value)}, nil
	case *BoolValue:
		if v.Value {
			return &IntValue{Value: 1}, nil
		}
		return &IntValue{Value: 0}, nil
	case *StringValue:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("int: cannot convert %q to int", v.Value)
		}
		return &IntValue{Value: n}, nil
	}
	return nil, fmt.Errorf("int: unsupported argument type %s", args[0].Type())
}

func builtinFloat(args []Value) (Value, error) {
	if err := expectArgs("float", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case *IntValue:
		return &FloatValue{Value: float64(v.Value)}, nil
	case *FloatValue:
		return v, nil
	case *StringValue:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return nil, fmt.Errorf("float: cannot convert %q to float", v.Value)
		}
		return &FloatValue{Value: f}, nil
	}
	return nil, fmt.Errorf("float: unsupported argument type %s", args[0].Type())
}

func builtinType(args []Value) (Value, error) {
	if err := expectArgs("type", args, 1); err != nil {
		return nil, err
	}
	return &StringValue{Value: args[0].Type().String()}, nil
}

func builtinAbs(args []Value) (Value, error) {
	if err := expectArgs("abs", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case *IntValue:
		if v.Value < 0 {
			return &IntValue{Value: -v.Value}, nil
		}
		return v, nil
	case *FloatValue:
		return &FloatValue{Value: math.Abs(v.Value)}, nil
	}
	return nil, fmt.Errorf("abs: unsupported argument type %s", args[0].Type())
}

// builtinMinMax accepts either several numbers or a single list of numbers.
// The winning argument is returned unchanged so ints stay ints.
func builtinMinMax(name string, better func(a, b float64) bool) BuiltinFunction {
	return func(args []Value) (Value, error) {
		candidates := args
		if len(args) == 1 {
			if list, ok := args[0].(*ListValue); ok {
				candidates = list.Elements
			}
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%s expects at least 1 argument", name)
		}
		for _, c := range candidates {
			if _, ok := toFloat(c); !ok {
				return nil, fmt.Errorf("%s: unsupported argument type %s", name, c.Type())
			}
		}
		return lo.Reduce(candidates[1:], func(best Value, item Value, _ int) Value {
			a, _ := toFloat(item)
			b, _ := toFloat(best)
			if better(a, b) {
				return item
			}
			return best
		}, candidates[0]), nil
	}
}

func stringBuiltin(name string, fn func(string) string) BuiltinFunction {
	return func(args []Value) (Value, error) {
		if err := expectArgs(name, args, 1); err != nil {
			return nil, err
		}
		s, ok := args[0].(*StringValue)
		if !ok {
			return nil, fmt.Errorf("%s: unsupported argument type %s", name, args[0].Type())
		}
		return &StringValue{Value: fn(s.Value)}, nil
	}
}

func builtinContains(args []Value) (Value, error) {
	if err := expectArgs("contains", args, 2); err != nil {
		return nil, err
	}
	switch haystack := args[0].(type) {
	case *StringValue:
		needle, ok := args[1].(*StringValue)
		if !ok {
			return nil, fmt.Errorf("contains: cannot search a string for %s", args[1].Type())
		}
		return &BoolValue{Value: strings.Contains(haystack.Value, needle.Value)}, nil
	case *ListValue:
		found := lo.ContainsBy(haystack.Elements, func(v Value) bool {
			return v.Equals(args[1])
		})
		return &BoolValue{Value: found}, nil
	}
	return nil, fmt.Errorf("contains: unsupported argument type %s", args[0].Type())
}

func toFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case *IntValue:
		return float64(n.Value), true
	case *FloatValue:
		return n.Value, true
	}
	return 0, false
}
