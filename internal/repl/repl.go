// Package repl provides the interactive session loop of the JEL console.
// It reads lines, classifies them into console commands or expressions,
// acts on the session's variable environment and renders the outcome.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwtan/jelconsole/internal/history"
	"github.com/mwtan/jelconsole/internal/repl/config"
	"github.com/mwtan/jelconsole/internal/repl/executor"
	"github.com/mwtan/jelconsole/internal/repl/input"
	"github.com/mwtan/jelconsole/internal/repl/render"
	"github.com/mwtan/jelconsole/internal/version"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// ErrExit is returned when the user requests to exit the console.
var ErrExit = errors.New("exit requested")

// timeNow is replaced in tests.
var timeNow = time.Now

// Options configures a REPL. All fields are optional.
type Options struct {
	// ConfigPath is the startup file. Empty or missing means defaults.
	ConfigPath string

	// ConfigOverrides is applied after the startup file, for command line flags.
	ConfigOverrides func(cfg *config.Config)

	// HistoryPath is the history database. Empty disables history.
	HistoryPath string

	// SessionID tags history entries and log lines. Generated when empty.
	SessionID string

	// Reader supplies input lines. When nil, a line editor is used on a
	// terminal and a plain reader otherwise.
	Reader input.LineReader

	// Dumb forces the plain reader even on a terminal.
	Dumb bool

	// Input and Output default to os.Stdin and os.Stdout.
	Input  *os.File
	Output io.Writer

	Logger *zap.Logger
}

// REPL is one console session. It owns the variable environment for its
// whole lifetime.
type REPL struct {
	config       *config.Config
	configErrors []error
	executor     *executor.REPLExecutor
	history      *history.HistoryManager
	renderer     *render.Renderer
	reader       input.LineReader
	closers      []io.Closer
	sessionID    string
	logger       *zap.Logger
}

// NewREPL loads configuration, opens history and prepares the line reader.
func NewREPL(opts Options) (*REPL, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	logger = logger.With(zap.String("session_id", sessionID))

	cfg, cfgErrors, err := loadConfig(opts.ConfigPath, logger)
	if err != nil {
		return nil, err
	}
	if opts.ConfigOverrides != nil {
		opts.ConfigOverrides(cfg)
	}

	r := &REPL{
		config:       cfg,
		configErrors: cfgErrors,
		executor:     executor.NewREPLExecutor(logger),
		sessionID:    sessionID,
		logger:       logger,
	}

	if opts.HistoryPath != "" {
		historyManager, err := history.NewHistoryManager(opts.HistoryPath)
		if err != nil {
			// The console works without history.
			logger.Warn("failed to open history", zap.String("path", opts.HistoryPath), zap.Error(err))
		} else {
			r.history = historyManager
		}
	}

	in := opts.Input
	if in == nil {
		in = os.Stdin
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	r.renderer = render.New(out, render.Options{
		Color:     cfg.Color,
		TermWidth: terminalWidth(out),
	})

	r.reader = opts.Reader
	if r.reader == nil {
		reader, err := r.newLineReader(in, out, opts.Dumb)
		if err != nil {
			_ = r.Close()
			return nil, err
		}
		r.reader = reader
	}

	return r, nil
}

func loadConfig(path string, logger *zap.Logger) (*config.Config, []error, error) {
	if path == "" {
		return config.DefaultConfig(), nil, nil
	}
	result, err := config.NewLoader(logger).LoadFromFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	for _, e := range result.Errors {
		logger.Warn("config error", zap.String("path", path), zap.Error(e))
	}
	return result.Config, result.Errors, nil
}

// newLineReader picks the Bubble Tea editor for interactive terminals and
// falls back to readline for pipes and dumb terminals.
func (r *REPL) newLineReader(in *os.File, out io.Writer, dumb bool) (input.LineReader, error) {
	historyValues := r.getHistoryValues()
	outFile, outIsFile := out.(*os.File)

	if !dumb && outIsFile && term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(outFile.Fd())) {
		lr := r.renderer.LipglossRenderer()
		r.logger.Debug("using line editor")
		return input.NewEditor(input.EditorOptions{
			Input:    in,
			Output:   outFile,
			History:  historyValues,
			Renderer: lr,
			Highlighter: input.NewHighlighter(input.HighlighterOptions{
				Renderer:     lr,
				IsKnownName:  r.executor.IsKnownName,
				CommandWords: commandWords,
			}),
			Logger: r.logger,
		}), nil
	}

	r.logger.Debug("using plain reader", zap.Bool("dumb", dumb))
	reader, err := input.NewDumbReader(input.DumbReaderOptions{
		Input:   in,
		Output:  out,
		History: historyValues,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create line reader: %w", err)
	}
	r.closers = append(r.closers, reader)
	return reader, nil
}

func terminalWidth(out io.Writer) func() int {
	return func() int {
		if f, ok := out.(*os.File); ok {
			if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
				return w
			}
		}
		return 80
	}
}

// Run reads and acts on lines until quit, exit or end of input. Interrupts
// are ignored. Errors from reading other than those are returned.
func (r *REPL) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.logger.Info("session started", zap.String("version", version.String()))
	defer r.logger.Info("session ended")

	if r.config.Banner {
		r.renderer.RenderWelcome(render.WelcomeInfo{
			Version:   version.Version,
			SessionID: r.sessionID,
		})
	}
	for _, err := range r.configErrors {
		r.renderer.RenderSystemMessage("config: " + err.Error())
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := r.reader.ReadLine(r.config.Prompt)
		switch {
		case errors.Is(err, input.ErrInterrupted):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		err = r.processCommand(ctx, line)
		if errors.Is(err, ErrExit) {
			return nil
		}
		if err != nil {
			return err
		}

		if r.config.ConsumeTrailingLine {
			if _, err := r.reader.ReadLine(""); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				if !errors.Is(err, input.ErrInterrupted) {
					return fmt.Errorf("failed to read input: %w", err)
				}
			}
		}
	}
}

// processCommand classifies one line and acts on it. It returns ErrExit for
// quit and exit; evaluation errors are rendered, not returned.
func (r *REPL) processCommand(ctx context.Context, line string) error {
	cmd := Classify(line)
	if cmd.Text == "" {
		return nil
	}
	r.logger.Debug("classified line", zap.Stringer("kind", cmd.Kind), zap.String("text", cmd.Text))

	entry := r.startHistory(cmd.Text)
	start := timeNow()

	outcome := history.OutcomeCommand
	switch cmd.Kind {
	case CommandQuit:
		r.finishHistory(entry, outcome)
		return ErrExit

	case CommandHelp:
		r.renderer.RenderHelp()

	case CommandShow:
		r.renderer.RenderShow(r.executor.Environment())

	case CommandRemove:
		if cmd.Name != "" {
			r.executor.Remove(cmd.Name)
		}

	case CommandExpression:
		value, err := r.executor.Evaluate(ctx, cmd.Text)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				r.finishHistory(entry, history.OutcomeError)
				return ctxErr
			}
			r.renderer.RenderError(err)
			outcome = history.OutcomeError
		} else {
			r.renderer.RenderResult(value)
			outcome = history.OutcomeOK
		}
	}

	r.logger.Debug("processed line",
		zap.Stringer("kind", cmd.Kind),
		zap.String("outcome", string(outcome)),
		zap.Duration("duration", timeNow().Sub(start)))
	r.finishHistory(entry, outcome)
	return nil
}

func (r *REPL) startHistory(line string) *history.HistoryEntry {
	if r.history == nil {
		return nil
	}
	entry, err := r.history.StartLine(line, r.sessionID)
	if err != nil {
		r.logger.Warn("failed to record history", zap.Error(err))
		return nil
	}
	return entry
}

func (r *REPL) finishHistory(entry *history.HistoryEntry, outcome history.Outcome) {
	if entry == nil {
		return
	}
	if _, err := r.history.FinishLine(entry, outcome); err != nil {
		r.logger.Warn("failed to update history", zap.Error(err))
	}
}

// getHistoryValues returns recent lines, most recent first.
func (r *REPL) getHistoryValues() []string {
	if r.history == nil || r.config.HistoryLimit == 0 {
		return nil
	}
	lines, err := r.history.RecentLines(r.config.HistoryLimit)
	if err != nil {
		r.logger.Warn("failed to load history", zap.Error(err))
		return nil
	}
	slices.Reverse(lines)
	return lines
}

// Config returns the effective configuration.
func (r *REPL) Config() *config.Config {
	return r.config
}

// Executor returns the session's executor.
func (r *REPL) Executor() *executor.REPLExecutor {
	return r.executor
}

// History returns the history manager, or nil when history is disabled.
func (r *REPL) History() *history.HistoryManager {
	return r.history
}

// SessionID returns the id of this session.
func (r *REPL) SessionID() string {
	return r.sessionID
}

// Close releases the line reader and the history database.
func (r *REPL) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	r.closers = nil
	if r.history != nil {
		errs = append(errs, r.history.Close())
		r.history = nil
	}
	return errors.Join(errs...)
}
