// Package interpreter evaluates JEL expressions against a variable environment.
package interpreter

import (
	"github.com/mwtan/jelconsole/internal/script/lexer"
	"github.com/mwtan/jelconsole/internal/script/parser"
	"go.uber.org/zap"
)

// Interpreter evaluates parsed expressions. It holds no variable state of its
// own; every evaluation is given the environment to read and bind into.
type Interpreter struct {
	logger *zap.Logger
}

// Options configures the interpreter.
// All fields are optional - nil/zero values use sensible defaults.
type Options struct {
	// Logger receives debug output about evaluation. If nil, logging is disabled.
	Logger *zap.Logger
}

// New creates a new interpreter with the given options.
// Pass nil for default options.
func New(opts *Options) *Interpreter {
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interpreter{logger: logger}
}

// Expression is a parsed, ready to evaluate input line.
type Expression struct {
	Source  string
	program *parser.Program
	interp  *Interpreter
}

// Parse parses src into an Expression. A *ParseError is returned when the
// source is not well formed.
func (i *Interpreter) Parse(src string) (*Expression, error) {
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, &ParseError{Errors: errs}
	}
	return &Expression{Source: src, program: program, interp: i}, nil
}

// Eval evaluates the expression against env. The result is the value of the
// last statement; an assignment as last statement yields nil ("no value").
// Bindings made by earlier statements are kept even if a later one fails.
func (e *Expression) Eval(env *Environment) (Value, error) {
	return e.interp.evalProgram(e.program, env)
}

// String returns the normalized form of the parsed expression
func (e *Expression) String() string {
	return e.program.String()
}

// EvalString parses and evaluates src in one step.
func (i *Interpreter) EvalString(src string, env *Environment) (Value, error) {
	expr, err := i.Parse(src)
	if err != nil {
		return nil, err
	}
	return expr.Eval(env)
}

func (i *Interpreter) evalProgram(program *parser.Program, env *Environment) (Value, error) {
	var result Value
	for _, stmt := range program.Statements {
		val, err := i.evalStatement(stmt, env)
		if err != nil {
			i.logger.Debug("evaluation failed", zap.String("statement", stmt.String()), zap.Error(err))
			return nil, err
		}
		result = val
	}
	return result, nil
}

func (i *Interpreter) evalStatement(stmt parser.Statement, env *Environment) (Value, error) {
	switch node := stmt.(type) {
	case *parser.AssignmentStatement:
		return nil, i.evalAssignment(node, env)
	case *parser.ExpressionStatement:
		return i.evalExpression(node.Expression, env)
	default:
		return nil, &RuntimeError{Message: "unknown statement type: " + stmt.String()}
	}
}

func (i *Interpreter) evalAssignment(node *parser.AssignmentStatement, env *Environment) error {
	if IsBuiltin(node.Name.Value) {
		return NewRuntimeError(node.Token, "cannot assign to builtin %s", node.Name.Value)
	}
	val, err := i.evalExpression(node.Value, env)
	if err != nil {
		return err
	}
	env.Set(node.Name.Value, val)
	i.logger.Debug("bound variable", zap.String("name", node.Name.Value), zap.Stringer("type", val.Type()))
	return nil
}
