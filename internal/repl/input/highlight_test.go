package input

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func plainRenderer() *lipgloss.Renderer {
	lr := lipgloss.NewRenderer(io.Discard)
	lr.SetColorProfile(termenv.Ascii)
	return lr
}

func TestClassifyTokens(t *testing.T) {
	h := NewHighlighter(HighlighterOptions{
		Renderer:    plainRenderer(),
		IsKnownName: func(name string) bool { return name == "x" },
	})

	text := `x = y + 1 == "s"`
	got := h.Classify(text)

	want := []TokenClass{
		ClassKnownName, ClassDefault, // x
		ClassOperator, ClassDefault, // =
		ClassDefault, ClassDefault, // y is unknown
		ClassOperator, ClassDefault, // +
		ClassNumber, ClassDefault, // 1
		ClassOperator, ClassOperator, ClassDefault, // ==
		ClassString, ClassString, ClassString, // "s"
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d classes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rune %d (%q): expected class %d, got %d", i, text[i], want[i], got[i])
		}
	}
}

func TestClassifyKeywordsAndIllegal(t *testing.T) {
	h := NewHighlighter(HighlighterOptions{Renderer: plainRenderer()})

	got := h.Classify("true @")
	for i := 0; i < 4; i++ {
		if got[i] != ClassKeyword {
			t.Errorf("rune %d: expected keyword, got %d", i, got[i])
		}
	}
	if got[5] != ClassIllegal {
		t.Errorf("expected illegal class for '@', got %d", got[5])
	}
}

func TestClassifyCommandWord(t *testing.T) {
	h := NewHighlighter(HighlighterOptions{
		Renderer:     plainRenderer(),
		CommandWords: []string{"help", "remove"},
	})

	got := h.Classify("  REMOVE x")
	for i := 2; i < 8; i++ {
		if got[i] != ClassCommand {
			t.Errorf("rune %d: expected command class, got %d", i, got[i])
		}
	}
	if got[9] == ClassCommand {
		t.Error("argument should not be highlighted as a command")
	}

	got = h.Classify("x = help")
	for i, c := range got {
		if c == ClassCommand {
			t.Errorf("rune %d: command word only counts at the start of the line", i)
		}
	}
}

func TestClassifyMultibyteString(t *testing.T) {
	h := NewHighlighter(HighlighterOptions{Renderer: plainRenderer()})

	got := h.Classify(`"héllo"`)
	if len(got) != 7 {
		t.Fatalf("expected one class per rune, got %d", len(got))
	}
	for i, c := range got {
		if c != ClassString {
			t.Errorf("rune %d: expected string class, got %d", i, c)
		}
	}
}

func TestClassifyMultibyteIdentifier(t *testing.T) {
	h := NewHighlighter(HighlighterOptions{
		Renderer:    plainRenderer(),
		IsKnownName: func(name string) bool { return name == "日本" },
	})

	got := h.Classify("日本 + 1")
	if len(got) != 6 {
		t.Fatalf("expected one class per rune, got %d", len(got))
	}
	if got[0] != ClassKnownName || got[1] != ClassKnownName {
		t.Errorf("expected known name class for both runes, got %v", got[:2])
	}
	if got[5] != ClassNumber {
		t.Errorf("expected number class, got %d", got[5])
	}
}

func TestClassifyEmpty(t *testing.T) {
	h := NewHighlighter(HighlighterOptions{})
	if got := h.Classify(""); len(got) != 0 {
		t.Errorf("expected no classes, got %v", got)
	}
}

func TestHighlightKeepsText(t *testing.T) {
	h := NewHighlighter(HighlighterOptions{Renderer: plainRenderer()})
	text := `max([1, 2.5]) * -3 ? "a" : null`
	if got := h.Highlight(text); got != text {
		t.Errorf("plain highlight should return the input, got %q", got)
	}
}
