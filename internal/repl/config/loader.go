package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mwtan/jelconsole/internal/script/interpreter"
	"go.uber.org/zap"
)

// Loader handles loading and evaluating .jelrc files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
	}
}

// LoadResult contains the result of loading a configuration file.
type LoadResult struct {
	Config *Config
	Errors []error
}

// LoadFromFile loads configuration from a .jelrc file.
// Returns the configuration and any non-fatal errors encountered.
// If the file doesn't exist, returns default configuration with no error.
func (l *Loader) LoadFromFile(path string) (*LoadResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Debug("no rc file", zap.String("path", path))
			return &LoadResult{Config: DefaultConfig(), Errors: []error{}}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return l.LoadFromString(string(content))
}

// LoadFromString evaluates source one line at a time into a scratch
// environment. Blank lines and lines starting with '#' are skipped. A line
// that fails to parse or evaluate is reported and the rest still run.
func (l *Loader) LoadFromString(source string) (*LoadResult, error) {
	result := &LoadResult{
		Config: DefaultConfig(),
		Errors: []error{},
	}

	interp := interpreter.New(&interpreter.Options{Logger: l.logger})
	env := interpreter.NewEnvironment()

	for i, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := interp.EvalString(line, env); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("line %d: %w", i+1, err))
		}
	}

	l.extractConfig(env, result)
	return result, nil
}

// extractConfig maps known variables onto the Config. Unknown variables are
// ignored so the rc file can use helpers.
func (l *Loader) extractConfig(env *interpreter.Environment, result *LoadResult) {
	cfg := result.Config

	if v, ok := env.Get("prompt"); ok {
		if s, ok := v.(*interpreter.StringValue); ok {
			cfg.Prompt = s.Value
		} else {
			result.Errors = append(result.Errors, fmt.Errorf("prompt must be a string, got %s", v.Type()))
		}
	}

	if v, ok := env.Get("logLevel"); ok {
		if s, ok := v.(*interpreter.StringValue); ok {
			cfg.LogLevel = s.Value
		} else {
			result.Errors = append(result.Errors, fmt.Errorf("logLevel must be a string, got %s", v.Type()))
		}
	}

	if v, ok := env.Get("historyLimit"); ok {
		n, isInt := v.(*interpreter.IntValue)
		switch {
		case !isInt:
			result.Errors = append(result.Errors, fmt.Errorf("historyLimit must be an int, got %s", v.Type()))
		case n.Value < 0:
			result.Errors = append(result.Errors, fmt.Errorf("historyLimit must not be negative"))
		default:
			cfg.HistoryLimit = int(n.Value)
		}
	}

	l.extractBool(env, "consumeTrailingLine", &cfg.ConsumeTrailingLine, result)
	l.extractBool(env, "color", &cfg.Color, result)
	l.extractBool(env, "banner", &cfg.Banner, result)
}

func (l *Loader) extractBool(env *interpreter.Environment, name string, target *bool, result *LoadResult) {
	v, ok := env.Get(name)
	if !ok {
		return
	}
	b, ok := v.(*interpreter.BoolValue)
	if !ok {
		result.Errors = append(result.Errors, fmt.Errorf("%s must be a bool, got %s", name, v.Type()))
		return
	}
	*target = b.Value
}
