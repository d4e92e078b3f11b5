package interpreter

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

// testEval parses and evaluates input in a fresh environment
func testEval(t *testing.T, input string) Value {
	t.Helper()
	return testEvalIn(t, NewEnvironment(), input)
}

func testEvalIn(t *testing.T, env *Environment, input string) Value {
	t.Helper()
	interp := New(&Options{Logger: zaptest.NewLogger(t)})
	val, err := interp.EvalString(input, env)
	if err != nil {
		t.Fatalf("eval error for %q: %v", input, err)
	}
	return val
}

// testEvalError parses and evaluates input expecting a runtime error
func testEvalError(t *testing.T, input string) error {
	t.Helper()
	interp := New(nil)
	expr, err := interp.Parse(input)
	if err != nil {
		t.Fatalf("parser errors: %v", err)
	}
	_, err = expr.Eval(NewEnvironment())
	if err == nil {
		t.Fatalf("expected error for %q", input)
	}
	return err
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input        string
		expectedType ValueType
		expected     string
	}{
		{"42", ValueTypeInt, "42"},
		{"3.5", ValueTypeFloat, "3.5"},
		{"2.0", ValueTypeFloat, "2.0"},
		{`"hi"`, ValueTypeString, "hi"},
		{`'single'`, ValueTypeString, "single"},
		{"true", ValueTypeBool, "true"},
		{"false", ValueTypeBool, "false"},
		{"null", ValueTypeNull, "null"},
		{`[1, "a", 2.5, [true]]`, ValueTypeList, `[1, "a", 2.5, [true]]`},
		{"len", ValueTypeBuiltin, "<builtin len>"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			val := testEval(t, tt.input)
			if val.Type() != tt.expectedType {
				t.Errorf("expected type %s, got %s", tt.expectedType, val.Type())
			}
			if val.String() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, val.String())
			}
		})
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2", "3"},
		{"1 + 2 * 3", "7"},
		{"(1 + 2) * 3", "9"},
		{"7 / 2", "3"},
		{"-7 / 2", "-3"},
		{"7 % 3", "1"},
		{"7.0 / 2", "3.5"},
		{"1 + 0.5", "1.5"},
		{"0.1 + 0.2", "0.30000000000000004"},
		{"5.5 % 2", "1.5"},
		{"-(-3)", "3"},
		{"-2.5", "-2.5"},
		{"1000000.0 * 3", "3000000.0"},
		{`"a" + "b"`, "ab"},
		{`"n=" + 1`, "n=1"},
		{`1.5 + "x"`, "1.5x"},
		{`"ab" * 3`, "ababab"},
		{`2 * "-"`, "--"},
		{"[1] + [2, 3]", "[1, 2, 3]"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			val := testEval(t, tt.input)
			if val.String() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, val.String())
			}
		})
	}
}

func TestComparisonAndLogic(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 4", false},
		{"1.5 >= 1", true},
		{`"abc" < "abd"`, true},
		{"1 == 1.0", true},
		{`"a" == "a"`, true},
		{`"1" == 1`, false},
		{"null == null", true},
		{"[1, 2] == [1, 2]", true},
		{"[1, 2] != [2, 1]", true},
		{"true && false", false},
		{"true || false", true},
		{"!0", true},
		{`!""`, true},
		{"!![]", false},
		{"1 && 2", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			val := testEval(t, tt.input)
			b, ok := val.(*BoolValue)
			if !ok {
				t.Fatalf("expected *BoolValue, got %T", val)
			}
			if b.Value != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, b.Value)
			}
		})
	}
}

func TestShortCircuit(t *testing.T) {
	// the right side would fail if evaluated
	if testEval(t, "false && missing").IsTruthy() {
		t.Error("expected false")
	}
	if !testEval(t, "true || 1 / 0").IsTruthy() {
		t.Error("expected true")
	}
	if testEval(t, "true ? 1 : missing").String() != "1" {
		t.Error("conditional evaluated the wrong branch")
	}
	if testEval(t, "0 ? missing : 'no'").String() != "no" {
		t.Error("conditional evaluated the wrong branch")
	}
}

func TestAssignment(t *testing.T) {
	env := NewEnvironment()

	val := testEvalIn(t, env, "x = 5")
	if val != nil {
		t.Errorf("assignment should produce no value, got %v", val)
	}

	got, ok := env.Get("x")
	if !ok || got.String() != "5" {
		t.Fatalf("expected x=5, got %v (found=%v)", got, ok)
	}

	if testEvalIn(t, env, "x * 2").String() != "10" {
		t.Error("x * 2 should be 10")
	}

	testEvalIn(t, env, "x = 'five'")
	got, _ = env.Get("x")
	if got.Type() != ValueTypeString {
		t.Errorf("rebinding should replace the value, got type %s", got.Type())
	}

	if testEvalIn(t, env, "y = 1; z = y + 1; z * 10").String() != "20" {
		t.Error("last statement value should be returned")
	}
	if env.Len() != 3 {
		t.Errorf("expected 3 bindings, got %d", env.Len())
	}
}

func TestPartialMutationIsKept(t *testing.T) {
	env := NewEnvironment()
	interp := New(nil)

	_, err := interp.EvalString("a = 1; b = 1 / 0", env)
	if err == nil {
		t.Fatal("expected division error")
	}
	if !env.Has("a") {
		t.Error("binding made before the failure should remain")
	}
	if env.Has("b") {
		t.Error("failed binding should not exist")
	}
}

func TestIndexing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"[10, 20, 30][0]", "10"},
		{"[10, 20, 30][-1]", "30"},
		{`"héllo"[1]`, "é"},
		{`"abc"[-3]`, "a"},
		{"[[1, 2], [3]][0][1]", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := testEval(t, tt.input).String(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`len("héllo")`, "5"},
		{"len([1, 2, 3])", "3"},
		{"str(12) + str(true)", "12true"},
		{"int(3.9)", "3"},
		{`int(" 42 ")`, "42"},
		{"int(true)", "1"},
		{"float(2)", "2.0"},
		{`float("1.25")`, "1.25"},
		{"type(1)", "int"},
		{"type(1.0)", "float"},
		{`type("")`, "string"},
		{"type([])", "list"},
		{"type(null)", "null"},
		{"type(len)", "builtin"},
		{"abs(-4)", "4"},
		{"abs(-4.5)", "4.5"},
		{"min(3, 1.5, 2)", "1.5"},
		{"max(3, 1.5, 2)", "3"},
		{"max([4, 9, 2])", "9"},
		{`upper("abc")`, "ABC"},
		{`lower("ABC")`, "abc"},
		{`contains("haystack", "st")`, "true"},
		{`contains([1, "a"], "a")`, "true"},
		{"contains([1, 2], 3)", "false"},
		{"f = len; f([1])", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := testEval(t, tt.input).String(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 / 0", "division by zero (line 1, column 3)"},
		{"1.0 / 0", "division by zero"},
		{"5 % 0", "modulo by zero"},
		{"missing + 1", "undefined variable: missing (line 1, column 1)"},
		{`1 - "a"`, "operator - not supported for types int and string"},
		{`-"a"`, "unary operator - not supported for type string"},
		{`1 < "a"`, "cannot compare int with string"},
		{"[1][5]", "index 5 out of range for list of length 1"},
		{`"ab"[2]`, "index 2 out of range for string of length 2"},
		{`[1]["a"]`, "index must be an int, got string"},
		{"5[0]", "type int is not indexable"},
		{"x = 1; x(2)", "x is not callable (type int)"},
		{"len(1, 2)", "len expects 1 argument, got 2"},
		{"contains(1)", "contains expects 2 arguments, got 1"},
		{`int("abc")`, `int: cannot convert "abc" to int`},
		{"min()", "min expects at least 1 argument"},
		{`max(1, "a")`, "max: unsupported argument type string"},
		{"len = 3", "cannot assign to builtin len"},
		{`"a" * -1`, "negative repeat count -1"},
		{`"ab" * 9223372036854775807`, "repeat result too large"},
		{`"a" * 10000000000`, "repeat result too large"},
		{`3 * "abc" * 100000000`, "repeat result too large"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := testEvalError(t, tt.input)
			var rte *RuntimeError
			if !errors.As(err, &rte) {
				t.Fatalf("expected *RuntimeError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("expected error containing %q, got %q", tt.expected, err.Error())
			}
			if strings.Contains(err.Error(), "\n") {
				t.Errorf("error should be a single line, got %q", err.Error())
			}
		})
	}
}

func TestParseErrorsAreReported(t *testing.T) {
	interp := New(nil)
	_, err := interp.Parse("1 + (2")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T (%v)", err, err)
	}
	if !strings.HasPrefix(err.Error(), "parse error: ") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if len(pe.Errors) == 0 {
		t.Error("expected at least one message")
	}
}

func TestUnicodeNames(t *testing.T) {
	env := NewEnvironment()
	val := testEvalIn(t, env, "é = 1; 日本 = é + 1; 日本")
	if val.String() != "2" {
		t.Errorf("expected 2, got %s", val.String())
	}
	names := env.Names()
	if len(names) != 2 || names[0] != "é" || names[1] != "日本" {
		t.Errorf("unexpected names %q", names)
	}
}

func TestInvalidUTF8IsAParseError(t *testing.T) {
	env := NewEnvironment()
	_, err := New(nil).EvalString("\xc3 = 1", env)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T (%v)", err, err)
	}
	if !strings.Contains(err.Error(), `illegal character "\xc3"`) {
		t.Errorf("unexpected message %q", err.Error())
	}
	if env.Len() != 0 {
		t.Errorf("expected no bindings, got %q", env.Names())
	}
}

func TestExpressionString(t *testing.T) {
	interp := New(nil)
	expr, err := interp.Parse("x=1+2*3")
	if err != nil {
		t.Fatal(err)
	}
	if expr.String() != "x = (1 + (2 * 3))" {
		t.Errorf("unexpected normalized form %q", expr.String())
	}
	if expr.Source != "x=1+2*3" {
		t.Errorf("source should be kept verbatim")
	}
}
