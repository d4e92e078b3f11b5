package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwtan/jelconsole/internal/script/interpreter"
	"github.com/muesli/termenv"
	"github.com/rivo/uniseg"
	"github.com/samber/lo"
)

// helpLines is printed verbatim by the help command
var helpLines = []string{
	"  <expression> - evaluate an expression",
	"  show         - display variables in the Map",
	"  remove <var> - remove a variable from the Map",
	"  quit         - exit",
	"  help         - display this help",
}

// EmptyEnvironmentText is printed by show when no variables are bound
const EmptyEnvironmentText = "Empty"

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// flusher is implemented by buffered writers such as bufio.Writer.
type flusher interface {
	Flush() error
}

// Renderer writes console output. Every Render* call flushes before it
// returns so output is visible before the next prompt.
type Renderer struct {
	writer    io.Writer
	termWidth func() int
	lg        *lipgloss.Renderer
	styles    Styles
}

// Options configures a Renderer.
type Options struct {
	// Color enables ANSI styling. When false output is plain text.
	Color bool
	// TermWidth reports the current terminal width; nil means 80 columns.
	TermWidth func() int
}

// New creates a new Renderer writing to writer
func New(writer io.Writer, opts Options) *Renderer {
	lg := lipgloss.NewRenderer(writer)
	if !opts.Color {
		lg.SetColorProfile(termenv.Ascii)
	}
	termWidth := opts.TermWidth
	if termWidth == nil {
		termWidth = func() int { return 80 }
	}
	return &Renderer{
		writer:    writer,
		termWidth: termWidth,
		lg:        lg,
		styles:    NewStyles(lg),
	}
}

// Styles returns the styles bound to this renderer
func (r *Renderer) Styles() Styles {
	return r.styles
}

// LipglossRenderer returns the lipgloss renderer backing this Renderer so
// that other components can build styles with the same color profile.
func (r *Renderer) LipglossRenderer() *lipgloss.Renderer {
	return r.lg
}

// RenderHelp prints the list of console commands
func (r *Renderer) RenderHelp() {
	for _, line := range helpLines {
		fmt.Fprintln(r.writer, line)
	}
	r.flush()
}

// RenderShow prints every binding as "name type value" with the name and
// type columns padded to one more than their longest entry. Widths are
// computed over the whole snapshot before the first line is written.
func (r *Renderer) RenderShow(env *interpreter.Environment) {
	defer r.flush()

	entries := env.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(r.writer, EmptyEnvironmentText)
		return
	}

	nameWidth := lo.Max(lo.Map(entries, func(e interpreter.Entry, _ int) int {
		return uniseg.StringWidth(e.Name)
	})) + 1
	typeWidth := lo.Max(lo.Map(entries, func(e interpreter.Entry, _ int) int {
		return uniseg.StringWidth(e.Value.Type().String())
	})) + 1

	for _, e := range entries {
		var sb strings.Builder
		sb.WriteString(padRight(e.Name, nameWidth))
		sb.WriteString(r.styles.Dim.Render(padRight(e.Value.Type().String(), typeWidth)))
		sb.WriteString(e.Value.String())
		fmt.Fprintln(r.writer, sb.String())
	}
}

// RenderResult prints the value of an evaluation. Nothing is printed when the
// evaluation produced no value.
func (r *Renderer) RenderResult(value interpreter.Value) {
	if interpreter.IsNull(value) {
		return
	}
	fmt.Fprintln(r.writer, value.String())
	r.flush()
}

// RenderError prints err as a single line
func (r *Renderer) RenderError(err error) {
	msg := lineBreaks.Replace(err.Error())
	fmt.Fprintln(r.writer, r.styles.Error.Render(msg))
	r.flush()
}

// RenderSystemMessage prints a dim status line
func (r *Renderer) RenderSystemMessage(message string) {
	fmt.Fprintln(r.writer, r.styles.SystemMessage.Render(fmt.Sprintf("%s %s", SymbolSystemMessage, message)))
	r.flush()
}

// RenderWelcome prints the startup banner
func (r *Renderer) RenderWelcome(info WelcomeInfo) {
	RenderWelcome(r.writer, r.styles, info, r.termWidth())
	r.flush()
}

func (r *Renderer) flush() {
	if f, ok := r.writer.(flusher); ok {
		_ = f.Flush()
	}
}

// padRight pads s with spaces to width display columns. Text wider than
// width is never truncated.
func padRight(s string, width int) string {
	w := uniseg.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
