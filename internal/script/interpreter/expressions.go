package interpreter

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mwtan/jelconsole/internal/script/parser"
)

// MaxRepeatLength caps the byte length of a string built with *.
const MaxRepeatLength = 16 << 20

// evalExpression evaluates a single expression node
func (i *Interpreter) evalExpression(node parser.Expression, env *Environment) (Value, error) {
	switch node := node.(type) {
	case *parser.NumberLiteral:
		return evalNumberLiteral(node)
	case *parser.StringLiteral:
		return &StringValue{Value: node.Value}, nil
	case *parser.BooleanLiteral:
		return &BoolValue{Value: node.Value}, nil
	case *parser.NullLiteral:
		return &NullValue{}, nil
	case *parser.Identifier:
		return i.evalIdentifier(node, env)
	case *parser.ListLiteral:
		return i.evalListLiteral(node, env)
	case *parser.UnaryExpression:
		return i.evalUnaryExpression(node, env)
	case *parser.BinaryExpression:
		return i.evalBinaryExpression(node, env)
	case *parser.ConditionalExpression:
		return i.evalConditionalExpression(node, env)
	case *parser.CallExpression:
		return i.evalCallExpression(node, env)
	case *parser.IndexExpression:
		return i.evalIndexExpression(node, env)
	default:
		return nil, &RuntimeError{Message: "unknown expression type: " + node.String()}
	}
}

func evalNumberLiteral(node *parser.NumberLiteral) (Value, error) {
	if node.IsFloat {
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return nil, NewRuntimeError(node.Token, "invalid number %s", node.Value)
		}
		return &FloatValue{Value: f}, nil
	}
	n, err := strconv.ParseInt(node.Value, 10, 64)
	if err != nil {
		return nil, NewRuntimeError(node.Token, "invalid number %s", node.Value)
	}
	return &IntValue{Value: n}, nil
}

// evalIdentifier looks up variables first and then builtins
func (i *Interpreter) evalIdentifier(node *parser.Identifier, env *Environment) (Value, error) {
	if val, ok := env.Get(node.Value); ok {
		return val, nil
	}
	if b, ok := builtins[node.Value]; ok {
		return b, nil
	}
	return nil, NewRuntimeError(node.Token, "undefined variable: %s", node.Value)
}

func (i *Interpreter) evalListLiteral(node *parser.ListLiteral, env *Environment) (Value, error) {
	elements := make([]Value, 0, len(node.Elements))
	for _, el := range node.Elements {
		val, err := i.evalExpression(el, env)
		if err != nil {
			return nil, err
		}
		elements = append(elements, val)
	}
	return &ListValue{Elements: elements}, nil
}

func (i *Interpreter) evalUnaryExpression(node *parser.UnaryExpression, env *Environment) (Value, error) {
	right, err := i.evalExpression(node.Right, env)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case "!":
		return &BoolValue{Value: !right.IsTruthy()}, nil
	case "-":
		switch r := right.(type) {
		case *IntValue:
			return &IntValue{Value: -r.Value}, nil
		case *FloatValue:
			return &FloatValue{Value: -r.Value}, nil
		}
		return nil, NewRuntimeError(node.Token, "unary operator - not supported for type %s", right.Type())
	}
	return nil, NewRuntimeError(node.Token, "unknown unary operator: %s", node.Operator)
}

func (i *Interpreter) evalBinaryExpression(node *parser.BinaryExpression, env *Environment) (Value, error) {
	left, err := i.evalExpression(node.Left, env)
	if err != nil {
		return nil, err
	}

	// && and || short-circuit
	switch node.Operator {
	case "&&":
		if !left.IsTruthy() {
			return &BoolValue{Value: false}, nil
		}
		right, err := i.evalExpression(node.Right, env)
		if err != nil {
			return nil, err
		}
		return &BoolValue{Value: right.IsTruthy()}, nil
	case "||":
		if left.IsTruthy() {
			return &BoolValue{Value: true}, nil
		}
		right, err := i.evalExpression(node.Right, env)
		if err != nil {
			return nil, err
		}
		return &BoolValue{Value: right.IsTruthy()}, nil
	}

	right, err := i.evalExpression(node.Right, env)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case "==":
		return &BoolValue{Value: left.Equals(right)}, nil
	case "!=":
		return &BoolValue{Value: !left.Equals(right)}, nil
	case "+":
		return evalPlus(node, left, right)
	case "*":
		if s, n, ok := stringRepeatOperands(left, right); ok {
			if n < 0 {
				return nil, NewRuntimeError(node.Token, "negative repeat count %d", n)
			}
			if len(s) > 0 && n > int64(MaxRepeatLength/len(s)) {
				return nil, NewRuntimeError(node.Token, "repeat result too large (limit %d bytes)", MaxRepeatLength)
			}
			return &StringValue{Value: strings.Repeat(s, int(n))}, nil
		}
		return evalArithmetic(node, left, right)
	case "-", "/", "%":
		return evalArithmetic(node, left, right)
	case "<", "<=", ">", ">=":
		return evalComparison(node, left, right)
	}

	return nil, NewRuntimeError(node.Token, "unknown operator: %s", node.Operator)
}

func evalPlus(node *parser.BinaryExpression, left, right Value) (Value, error) {
	if l, ok := left.(*ListValue); ok {
		if r, ok := right.(*ListValue); ok {
			elements := make([]Value, 0, len(l.Elements)+len(r.Elements))
			elements = append(elements, l.Elements...)
			elements = append(elements, r.Elements...)
			return &ListValue{Elements: elements}, nil
		}
	}
	_, lString := left.(*StringValue)
	_, rString := right.(*StringValue)
	if lString || rString {
		return &StringValue{Value: left.String() + right.String()}, nil
	}
	return evalArithmetic(node, left, right)
}

func stringRepeatOperands(left, right Value) (string, int64, bool) {
	if s, ok := left.(*StringValue); ok {
		if n, ok := right.(*IntValue); ok {
			return s.Value, n.Value, true
		}
	}
	if n, ok := left.(*IntValue); ok {
		if s, ok := right.(*StringValue); ok {
			return s.Value, n.Value, true
		}
	}
	return "", 0, false
}

// evalArithmetic handles + - * / % on numbers. Two ints produce an int;
// any float operand promotes the result to float.
func evalArithmetic(node *parser.BinaryExpression, left, right Value) (Value, error) {
	li, lInt := left.(*IntValue)
	ri, rInt := right.(*IntValue)
	if lInt && rInt {
		a, b := li.Value, ri.Value
		switch node.Operator {
		case "+":
			return &IntValue{Value: a + b}, nil
		case "-":
			return &IntValue{Value: a - b}, nil
		case "*":
			return &IntValue{Value: a * b}, nil
		case "/":
			if b == 0 {
				return nil, NewRuntimeError(node.Token, "division by zero")
			}
			return &IntValue{Value: a / b}, nil
		case "%":
			if b == 0 {
				return nil, NewRuntimeError(node.Token, "modulo by zero")
			}
			return &IntValue{Value: a % b}, nil
		}
	}

	a, lok := toFloat(left)
	b, rok := toFloat(right)
	if !lok || !rok {
		return nil, NewRuntimeError(node.Token, "operator %s not supported for types %s and %s",
			node.Operator, left.Type(), right.Type())
	}

	switch node.Operator {
	case "+":
		return &FloatValue{Value: a + b}, nil
	case "-":
		return &FloatValue{Value: a - b}, nil
	case "*":
		return &FloatValue{Value: a * b}, nil
	case "/":
		if b == 0 {
			return nil, NewRuntimeError(node.Token, "division by zero")
		}
		return &FloatValue{Value: a / b}, nil
	case "%":
		if b == 0 {
			return nil, NewRuntimeError(node.Token, "modulo by zero")
		}
		return &FloatValue{Value: math.Mod(a, b)}, nil
	}
	return nil, NewRuntimeError(node.Token, "unknown operator: %s", node.Operator)
}

func evalComparison(node *parser.BinaryExpression, left, right Value) (Value, error) {
	var cmp int
	if l, ok := left.(*StringValue); ok {
		r, ok := right.(*StringValue)
		if !ok {
			return nil, NewRuntimeError(node.Token, "cannot compare %s with %s", left.Type(), right.Type())
		}
		cmp = strings.Compare(l.Value, r.Value)
	} else {
		a, lok := toFloat(left)
		b, rok := toFloat(right)
		if !lok || !rok {
			return nil, NewRuntimeError(node.Token, "cannot compare %s with %s", left.Type(), right.Type())
		}
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	}

	var result bool
	switch node.Operator {
	case "<":
		result = cmp < 0
	case "<=":
		result = cmp <= 0
	case ">":
		result = cmp > 0
	case ">=":
		result = cmp >= 0
	}
	return &BoolValue{Value: result}, nil
}

func (i *Interpreter) evalConditionalExpression(node *parser.ConditionalExpression, env *Environment) (Value, error) {
	cond, err := i.evalExpression(node.Condition, env)
	if err != nil {
		return nil, err
	}
	if cond.IsTruthy() {
		return i.evalExpression(node.Consequence, env)
	}
	return i.evalExpression(node.Alternative, env)
}

func (i *Interpreter) evalCallExpression(node *parser.CallExpression, env *Environment) (Value, error) {
	fn, err := i.evalExpression(node.Function, env)
	if err != nil {
		return nil, err
	}
	builtin, ok := fn.(*BuiltinValue)
	if !ok {
		return nil, NewRuntimeError(node.Token, "%s is not callable (type %s)", node.Function.String(), fn.Type())
	}

	args := make([]Value, 0, len(node.Arguments))
	for _, a := range node.Arguments {
		val, err := i.evalExpression(a, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	result, err := builtin.Fn(args)
	if err != nil {
		return nil, NewRuntimeError(node.Token, "%s", err.Error())
	}
	return result, nil
}

func (i *Interpreter) evalIndexExpression(node *parser.IndexExpression, env *Environment) (Value, error) {
	left, err := i.evalExpression(node.Left, env)
	if err != nil {
		return nil, err
	}
	index, err := i.evalExpression(node.Index, env)
	if err != nil {
		return nil, err
	}
	idx, ok := index.(*IntValue)
	if !ok {
		return nil, NewRuntimeError(node.Token, "index must be an int, got %s", index.Type())
	}

	switch l := left.(type) {
	case *ListValue:
		pos, ok := normalizeIndex(idx.Value, len(l.Elements))
		if !ok {
			return nil, NewRuntimeError(node.Token, "index %d out of range for list of length %d", idx.Value, len(l.Elements))
		}
		return l.Elements[pos], nil
	case *StringValue:
		runes := []rune(l.Value)
		pos, ok := normalizeIndex(idx.Value, len(runes))
		if !ok {
			return nil, NewRuntimeError(node.Token, "index %d out of range for string of length %d",
				idx.Value, utf8.RuneCountInString(l.Value))
		}
		return &StringValue{Value: string(runes[pos])}, nil
	}
	return nil, NewRuntimeError(node.Token, "type %s is not indexable", left.Type())
}

// normalizeIndex maps negative indices onto the end of a sequence.
func normalizeIndex(i int64, length int) (int, bool) {
	if i < 0 {
		i += int64(length)
	}
	if i < 0 || i >= int64(length) {
		return 0, false
	}
	return int(i), true
}
