package input

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mwtan/jelconsole/internal/repl/render"
	"github.com/sahilm/fuzzy"
)

// RenderConfig holds the styles of the editor chrome.
type RenderConfig struct {
	PromptStyle lipgloss.Style
	CursorStyle lipgloss.Style
	SearchStyle lipgloss.Style
	MatchStyle  lipgloss.Style
}

// DefaultRenderConfig returns the editor styles bound to lr, or to the default
// lipgloss renderer when lr is nil.
func DefaultRenderConfig(lr *lipgloss.Renderer) RenderConfig {
	if lr == nil {
		lr = lipgloss.DefaultRenderer()
	}
	return RenderConfig{
		PromptStyle: lr.NewStyle(),
		CursorStyle: lr.NewStyle().Reverse(true),
		SearchStyle: lr.NewStyle().Foreground(render.ColorGray),
		MatchStyle:  lr.NewStyle().Foreground(render.ColorYellow).Underline(true),
	}
}

// lineRenderer draws the prompt and buffer, wrapping at the terminal width.
type lineRenderer struct {
	config      RenderConfig
	highlighter *Highlighter
	width       int
}

// renderLine returns the prompt followed by the highlighted buffer text with
// the cursor drawn over the rune at pos, or after the text when pos is at the end.
func (r *lineRenderer) renderLine(prompt string, text []rune, pos int, focused bool) string {
	width := r.width
	if width <= 0 {
		width = 80
	}

	// Prompt lines are styled one at a time; lipgloss would pad a multi-line
	// block to a common width. Only the last one affects wrapping.
	var sb strings.Builder
	promptLines := strings.Split(prompt, "\n")
	for i, line := range promptLines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(r.config.PromptStyle.Render(line))
	}
	col := ansi.StringWidth(promptLines[len(promptLines)-1])

	classes := r.highlighter.Classify(string(text))
	for i, ch := range text {
		s := string(ch)
		w := ansi.StringWidth(s)
		if col+w > width && col > 0 {
			sb.WriteByte('\n')
			col = 0
		}
		if focused && i == pos {
			sb.WriteString(r.config.CursorStyle.Render(s))
		} else {
			sb.WriteString(r.highlighter.Style(classes[i]).Render(s))
		}
		col += w
	}

	if pos >= len(text) {
		if col+1 > width {
			sb.WriteByte('\n')
		}
		if focused {
			sb.WriteString(r.config.CursorStyle.Render(" "))
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// renderSearch returns the status line shown during reverse history search.
func (r *lineRenderer) renderSearch(s *historySearch) string {
	var sb strings.Builder
	label := "(reverse-search)`"
	m, ok := s.current()
	if len(s.query) > 0 && !ok {
		label = "(failed reverse-search)`"
	}
	sb.WriteString(r.config.SearchStyle.Render(label + string(s.query) + "': "))
	if ok {
		sb.WriteString(r.renderMatch(m))
	}
	return ansi.Truncate(sb.String(), max(r.width, 20), "…")
}

func (r *lineRenderer) renderMatch(m fuzzy.Match) string {
	matched := make(map[int]bool, len(m.MatchedIndexes))
	for _, idx := range m.MatchedIndexes {
		matched[idx] = true
	}
	var sb strings.Builder
	for bi, ch := range m.Str {
		if matched[bi] {
			sb.WriteString(r.config.MatchStyle.Render(string(ch)))
		} else {
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}
