package input

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// ErrInterrupted is returned by ReadLine when the user pressed Ctrl+C.
var ErrInterrupted = errors.New("interrupted")

// LineReader reads one line of input. It returns io.EOF at end of input and
// ErrInterrupted when the read was interrupted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// EditorOptions configures an Editor.
type EditorOptions struct {
	Input  *os.File
	Output *os.File

	// History seeds navigation, index 0 being the most recent line.
	History []string

	// Renderer binds editor styles to the output. Nil uses the default.
	Renderer    *lipgloss.Renderer
	Highlighter *Highlighter
	KeyMap      *KeyMap
	Logger      *zap.Logger
}

// Editor is a LineReader backed by the Bubble Tea line editor. Each ReadLine
// runs a short-lived program that owns the terminal until the line is done.
type Editor struct {
	in, out      *os.File
	history      []string
	renderConfig RenderConfig
	highlighter  *Highlighter
	keymap       *KeyMap
	logger       *zap.Logger
}

func NewEditor(opts EditorOptions) *Editor {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	in, out := opts.Input, opts.Output
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	highlighter := opts.Highlighter
	if highlighter == nil {
		highlighter = NewHighlighter(HighlighterOptions{Renderer: opts.Renderer})
	}
	return &Editor{
		in:           in,
		out:          out,
		history:      append([]string(nil), opts.History...),
		renderConfig: DefaultRenderConfig(opts.Renderer),
		highlighter:  highlighter,
		keymap:       opts.KeyMap,
		logger:       logger,
	}
}

func (e *Editor) ReadLine(prompt string) (string, error) {
	width := 80
	if w, _, err := term.GetSize(int(e.out.Fd())); err == nil && w > 0 {
		width = w
	}

	model := New(Config{
		Prompt:        prompt,
		HistoryValues: e.history,
		KeyMap:        e.keymap,
		RenderConfig:  &e.renderConfig,
		Highlighter:   e.highlighter,
		Width:         width,
		Logger:        e.logger,
	})

	program := tea.NewProgram(model,
		tea.WithInput(e.in),
		tea.WithOutput(e.out),
		tea.WithoutSignalHandler(),
	)
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("line editor: %w", err)
	}

	result := final.(Model).Result()
	switch result.Type {
	case ResultSubmit:
		e.AddHistory(result.Value)
		return result.Value, nil
	case ResultInterrupt:
		return "", ErrInterrupted
	default:
		return "", io.EOF
	}
}

// AddHistory records line as the most recent history entry. Blank lines and
// repeats of the latest entry are skipped.
func (e *Editor) AddHistory(line string) {
	if line == "" || (len(e.history) > 0 && e.history[0] == line) {
		return
	}
	e.history = append([]string{line}, e.history...)
}

// DumbReader is a LineReader for pipes and terminals the editor cannot drive.
type DumbReader struct {
	rl *readline.Instance
}

// DumbReaderOptions configures a DumbReader.
type DumbReaderOptions struct {
	Input  io.ReadCloser
	Output io.Writer

	// History seeds navigation, index 0 being the most recent line.
	History []string
}

func NewDumbReader(opts DumbReaderOptions) (*DumbReader, error) {
	cfg := &readline.Config{
		Stdin:                  opts.Input,
		Stdout:                 opts.Output,
		DisableAutoSaveHistory: true,
	}
	if opts.Input != nil && opts.Input != os.Stdin {
		// Not a terminal we can put into raw mode.
		cfg.FuncIsTerminal = func() bool { return false }
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, fmt.Errorf("readline: %w", err)
	}
	for i := len(opts.History) - 1; i >= 0; i-- {
		_ = rl.SaveHistory(opts.History[i])
	}
	return &DumbReader{rl: rl}, nil
}

func (d *DumbReader) ReadLine(prompt string) (string, error) {
	d.rl.SetPrompt(prompt)
	line, err := d.rl.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		return "", ErrInterrupted
	case errors.Is(err, io.EOF):
		return "", io.EOF
	case err != nil:
		return "", err
	}
	_ = d.rl.SaveHistory(line)
	return line, nil
}

func (d *DumbReader) Close() error {
	return d.rl.Close()
}
