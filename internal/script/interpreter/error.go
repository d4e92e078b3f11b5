package interpreter

import (
	"fmt"
	"strings"

	"github.com/mwtan/jelconsole/internal/script/lexer"
)

// RuntimeError represents an error raised while evaluating an expression
type RuntimeError struct {
	Message string
	Line    int
	Column  int
}

// Error implements the error interface
func (e *RuntimeError) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Line, e.Column)
}

// NewRuntimeError creates a runtime error positioned at tok
func NewRuntimeError(tok lexer.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

// ParseError collects every message produced while parsing one input
type ParseError struct {
	Errors []string
}

// Error implements the error interface. All messages are joined onto one line.
func (e *ParseError) Error() string {
	return "parse error: " + strings.Join(e.Errors, "; ")
}
