package input

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwtan/jelconsole/internal/repl/render"
	"github.com/mwtan/jelconsole/internal/script/lexer"
)

// TokenClass is the highlighting category of a span of input.
type TokenClass int

const (
	ClassDefault TokenClass = iota
	ClassCommand
	ClassKnownName
	ClassNumber
	ClassString
	ClassKeyword
	ClassOperator
	ClassIllegal
)

// HighlighterOptions configures a Highlighter.
type HighlighterOptions struct {
	// Renderer binds the styles. Nil uses the default lipgloss renderer.
	Renderer *lipgloss.Renderer

	// IsKnownName reports whether an identifier refers to something that
	// exists, such as a defined variable or a builtin.
	IsKnownName func(name string) bool

	// CommandWords are console commands, highlighted when they start the line.
	CommandWords []string
}

// Highlighter colors an input line using the expression lexer.
type Highlighter struct {
	isKnown  func(string) bool
	commands map[string]bool
	styles   map[TokenClass]lipgloss.Style
}

func NewHighlighter(opts HighlighterOptions) *Highlighter {
	lr := opts.Renderer
	if lr == nil {
		lr = lipgloss.DefaultRenderer()
	}
	commands := make(map[string]bool, len(opts.CommandWords))
	for _, w := range opts.CommandWords {
		commands[strings.ToLower(w)] = true
	}
	return &Highlighter{
		isKnown:  opts.IsKnownName,
		commands: commands,
		styles: map[TokenClass]lipgloss.Style{
			ClassDefault:   lr.NewStyle(),
			ClassCommand:   lr.NewStyle().Foreground(render.ColorCyan).Bold(true),
			ClassKnownName: lr.NewStyle().Foreground(render.ColorGreen),
			ClassNumber:    lr.NewStyle().Foreground(render.ColorGreen),
			ClassString:    lr.NewStyle().Foreground(render.ColorMagenta),
			ClassKeyword:   lr.NewStyle().Foreground(render.ColorBlue),
			ClassOperator:  lr.NewStyle().Foreground(render.ColorYellow),
			ClassIllegal:   lr.NewStyle().Foreground(render.ColorRed),
		},
	}
}

// Style returns the style used for class.
func (h *Highlighter) Style(class TokenClass) lipgloss.Style {
	return h.styles[class]
}

// Classify returns one class per rune of text.
func (h *Highlighter) Classify(text string) []TokenClass {
	classes := make([]TokenClass, utf8.RuneCountInString(text))
	if len(classes) == 0 {
		return classes
	}

	// Token offsets are byte offsets and may fall inside a multi-byte rune
	// when the lexer rejects it byte by byte.
	runeAt := make([]int, len(text)+1)
	ri := -1
	for bi := 0; bi < len(text); bi++ {
		if utf8.RuneStart(text[bi]) {
			ri++
		}
		runeAt[bi] = ri
	}
	runeAt[len(text)] = len(classes)
	fill := func(from, to int, class TokenClass) {
		end := runeAt[to]
		if to < len(text) && !utf8.RuneStart(text[to]) {
			end++
		}
		for i := max(0, runeAt[from]); i < end && i < len(classes); i++ {
			classes[i] = class
		}
	}

	for _, tok := range lexer.Tokenize(text) {
		if tok.Type == lexer.EOF {
			break
		}
		start, end := clampOffsets(tok.Offset, tok.End, len(text))
		fill(start, end, h.classOf(tok))
	}

	if word := firstWord(text); h.commands[strings.ToLower(word)] {
		start := strings.Index(text, word)
		fill(start, start+len(word), ClassCommand)
	}
	return classes
}

func (h *Highlighter) classOf(tok lexer.Token) TokenClass {
	switch {
	case tok.Type == lexer.ILLEGAL:
		return ClassIllegal
	case tok.Type == lexer.NUMBER:
		return ClassNumber
	case tok.Type == lexer.STRING:
		return ClassString
	case lexer.IsKeyword(tok.Type):
		return ClassKeyword
	case lexer.IsOperator(tok.Type):
		return ClassOperator
	case tok.Type == lexer.IDENT:
		if h.isKnown != nil && h.isKnown(tok.Literal) {
			return ClassKnownName
		}
	}
	return ClassDefault
}

// Highlight renders text with styles applied.
func (h *Highlighter) Highlight(text string) string {
	classes := h.Classify(text)
	runes := []rune(text)
	var sb strings.Builder
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && classes[j] == classes[i] {
			j++
		}
		sb.WriteString(h.styles[classes[i]].Render(string(runes[i:j])))
		i = j
	}
	return sb.String()
}

func firstWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func clampOffsets(start, end, n int) (int, int) {
	start = max(0, min(start, n))
	end = max(start, min(end, n))
	return start, end
}
