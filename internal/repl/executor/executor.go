// Package executor evaluates console expressions against the session's
// variable environment.
package executor

import (
	"context"
	"time"

	"github.com/mwtan/jelconsole/internal/script/interpreter"
	"go.uber.org/zap"
)

// REPLExecutor owns the session environment and evaluates expression lines
// in it. It is not safe for concurrent use; the console evaluates one line
// at a time.
type REPLExecutor struct {
	interpreter *interpreter.Interpreter
	env         *interpreter.Environment
	logger      *zap.Logger
}

// NewREPLExecutor creates an executor with an empty environment.
// The logger is optional (can be nil).
func NewREPLExecutor(logger *zap.Logger) *REPLExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &REPLExecutor{
		interpreter: interpreter.New(&interpreter.Options{Logger: logger}),
		env:         interpreter.NewEnvironment(),
		logger:      logger,
	}
}

// Evaluate parses and evaluates source. A nil value means the expression
// produced nothing to print. Variables bound before a failure stay bound.
func (e *REPLExecutor) Evaluate(ctx context.Context, source string) (interpreter.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	expr, err := e.interpreter.Parse(source)
	if err != nil {
		e.logger.Debug("parse failed", zap.String("source", source), zap.Error(err))
		return nil, err
	}

	value, err := expr.Eval(e.env)
	duration := time.Since(start)
	if err != nil {
		e.logger.Debug("evaluation failed",
			zap.String("expression", expr.String()),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, err
	}

	fields := []zap.Field{
		zap.String("expression", expr.String()),
		zap.Duration("duration", duration),
	}
	if value != nil {
		fields = append(fields, zap.Stringer("type", value.Type()))
	}
	e.logger.Debug("evaluated", fields...)
	return value, nil
}

// Remove deletes the variable name and reports whether it existed.
func (e *REPLExecutor) Remove(name string) bool {
	removed := e.env.Remove(name)
	e.logger.Debug("remove variable", zap.String("name", name), zap.Bool("removed", removed))
	return removed
}

// IsKnownName reports whether name is a bound variable or a builtin.
func (e *REPLExecutor) IsKnownName(name string) bool {
	return e.env.Has(name) || interpreter.IsBuiltin(name)
}

// Environment returns the session environment.
func (e *REPLExecutor) Environment() *interpreter.Environment {
	return e.env
}

// Interpreter returns the underlying interpreter.
func (e *REPLExecutor) Interpreter() *interpreter.Interpreter {
	return e.interpreter
}
