package parser

import (
	"strings"
	"testing"

	"github.com/mwtan/jelconsole/internal/script/lexer"
)

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	errors := p.Errors()
	if len(errors) == 0 {
		return
	}

	t.Errorf("parser has %d errors", len(errors))
	for _, msg := range errors {
		t.Errorf("parser error: %q", msg)
	}
	t.FailNow()
}

func parseOK(t *testing.T, input string) *Program {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	checkParserErrors(t, p)
	return program
}

func TestAssignmentStatements(t *testing.T) {
	tests := []struct {
		input              string
		expectedIdentifier string
		expectedValue      string
	}{
		{"x = 5", "x", "5"},
		{"y = 10.25", "y", "10.25"},
		{"foobar = a + b", "foobar", "(a + b)"},
		{"name = \"Alice\"", "name", "\"Alice\""},
		{"flag = !ok", "flag", "(!ok)"},
	}

	for _, tt := range tests {
		program := parseOK(t, tt.input)

		if len(program.Statements) != 1 {
			t.Fatalf("program.Statements does not contain 1 statement. got=%d",
				len(program.Statements))
		}

		stmt, ok := program.Statements[0].(*AssignmentStatement)
		if !ok {
			t.Fatalf("stmt not *AssignmentStatement. got=%T", program.Statements[0])
		}
		if stmt.Name.Value != tt.expectedIdentifier {
			t.Errorf("stmt.Name.Value not %q. got=%q", tt.expectedIdentifier, stmt.Name.Value)
		}
		if stmt.Value.String() != tt.expectedValue {
			t.Errorf("val.String() not %s. got=%s", tt.expectedValue, stmt.Value.String())
		}
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b * c", "(a + (b * c))"},
		{"a * b % c", "((a * b) % c)"},
		{"a + b / c - d", "((a + (b / c)) - d)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"a < b && c >= d || e", "(((a < b) && (c >= d)) || e)"},
		{"(a + b) * c", "((a + b) * c)"},
		{"a ? b : c", "(a ? b : c)"},
		{"a ? b : c ? d : e", "(a ? b : (c ? d : e))"},
		{"a || b ? 1 : 2", "((a || b) ? 1 : 2)"},
		{"a ? b ? 1 : 2 : 3", "(a ? (b ? 1 : 2) : 3)"},
		{"len(xs) + 1", "(len(xs) + 1)"},
		{"max(1, 2 * 3, f(x))", "max(1, (2 * 3), f(x))"},
		{"xs[0] * 2", "((xs[0]) * 2)"},
		{"xs[i + 1][0]", "((xs[(i + 1)])[0])"},
		{"[1, 2, 3][1]", "([1, 2, 3][1])"},
		{"-xs[0]", "(-(xs[0]))"},
		{"true == !false", "(true == (!false))"},
		{"null", "null"},
		{"[]", "[]"},
		{"f()", "f()"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program := parseOK(t, tt.input)
			if program.String() != tt.expected {
				t.Errorf("expected=%q, got=%q", tt.expected, program.String())
			}
		})
	}
}

func TestMultipleStatements(t *testing.T) {
	program := parseOK(t, "x = 1; y = x + 1;; y * 2;")

	if len(program.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(program.Statements))
	}
	if _, ok := program.Statements[0].(*AssignmentStatement); !ok {
		t.Errorf("statement 0 is %T", program.Statements[0])
	}
	if _, ok := program.Statements[1].(*AssignmentStatement); !ok {
		t.Errorf("statement 1 is %T", program.Statements[1])
	}
	if _, ok := program.Statements[2].(*ExpressionStatement); !ok {
		t.Errorf("statement 2 is %T", program.Statements[2])
	}
	if program.String() != "x = 1; y = (x + 1); (y * 2)" {
		t.Errorf("unexpected program string %q", program.String())
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input   string
		isFloat bool
	}{
		{"42", false},
		{"0", false},
		{"3.14", true},
		{"10.0", true},
	}

	for _, tt := range tests {
		program := parseOK(t, tt.input)
		stmt := program.Statements[0].(*ExpressionStatement)
		lit, ok := stmt.Expression.(*NumberLiteral)
		if !ok {
			t.Fatalf("expected *NumberLiteral, got %T", stmt.Expression)
		}
		if lit.IsFloat != tt.isFloat {
			t.Errorf("%s: IsFloat=%v, want %v", tt.input, lit.IsFloat, tt.isFloat)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input    string
		contains string
	}{
		{"1 +", "unexpected end of input"},
		{"(1 + 2", "expected ')', got end of input"},
		{"[1, 2", "expected ']', got end of input"},
		{"x =", "expected expression after '='"},
		{"1 2", "unexpected number 2 at line 1, column 3"},
		{"a = = 1", "unexpected '='"},
		{"\"abc", "unterminated string at line 1, column 1"},
		{"a @ b", "unexpected '@'"},
		{"@", "illegal character \"@\""},
		{"a ? b", "expected ':', got end of input"},
		{"f(1,", "unexpected end of input"},
		{"99999999999999999999", "integer literal 99999999999999999999 out of range"},
		{")", "unexpected ')'"},
		{"1 = 2", "unexpected '='"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, errs := Parse(tt.input)
			if len(errs) == 0 {
				t.Fatalf("expected errors for %q", tt.input)
			}
			if !strings.Contains(strings.Join(errs, "; "), tt.contains) {
				t.Errorf("expected error containing %q, got %v", tt.contains, errs)
			}
		})
	}
}

func TestEmptyProgram(t *testing.T) {
	program, errs := Parse("   ")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(program.Statements) != 0 {
		t.Errorf("expected no statements, got %d", len(program.Statements))
	}
	if program.TokenLiteral() != "" {
		t.Errorf("expected empty token literal")
	}
}
