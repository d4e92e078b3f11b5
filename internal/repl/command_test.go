package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{"quit", "quit", Command{Kind: CommandQuit, Text: "quit"}},
		{"exit uppercase", "EXIT", Command{Kind: CommandQuit, Text: "EXIT"}},
		{"quit mixed case padded", "  QuIt ", Command{Kind: CommandQuit, Text: "QuIt"}},
		{"quit with argument is an expression", "quit now", Command{Kind: CommandExpression, Text: "quit now"}},
		{"help", "help", Command{Kind: CommandHelp, Text: "help"}},
		{"help ignores trailing words", "help me", Command{Kind: CommandHelp, Text: "help me"}},
		{"help is case sensitive", "HELP", Command{Kind: CommandExpression, Text: "HELP"}},
		{"show", "show", Command{Kind: CommandShow, Text: "show"}},
		{"show with arguments", "show 1/0", Command{Kind: CommandShow, Text: "show 1/0"}},
		{"remove", "remove x", Command{Kind: CommandRemove, Name: "x", Text: "remove x"}},
		{"remove quoted", `remove "my var"`, Command{Kind: CommandRemove, Name: "my var", Text: `remove "my var"`}},
		{"remove without name", "remove", Command{Kind: CommandRemove, Text: "remove"}},
		{"remove with two names", "remove x y", Command{Kind: CommandRemove, Text: "remove x y"}},
		{"expression", "x = 5", Command{Kind: CommandExpression, Text: "x = 5"}},
		{"expression with parentheses", "max(1, 2)", Command{Kind: CommandExpression, Text: "max(1, 2)"}},
		{"prefix is not a command", "shows", Command{Kind: CommandExpression, Text: "shows"}},
		{"blank", "   ", Command{Kind: CommandExpression, Text: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.line))
		})
	}
}

func TestParseLine(t *testing.T) {
	p := ParseLine(`remove 'a b' c`)
	assert.Equal(t, `remove 'a b' c`, p.Line())
	assert.Equal(t, "remove", p.Word())
	assert.Equal(t, []string{"remove", "a b", "c"}, p.Words())

	words := p.Words()
	words[0] = "changed"
	assert.Equal(t, "remove", p.Word(), "Words returns a copy")
}

func TestParseLine_DoesNotExpandEnvironment(t *testing.T) {
	t.Setenv("JEL_TEST_VALUE", "leaked")
	p := ParseLine("show $JEL_TEST_VALUE")
	assert.Equal(t, "show", p.Word())
	assert.NotContains(t, p.Words(), "leaked")
}

func TestParseLine_ExpansionNeverNamesAVariable(t *testing.T) {
	assert.Equal(t, []string{"remove", "ab", "ac"}, ParseLine("remove a{b,c}").Words())
	assert.Equal(t, []string{"remove"}, ParseLine("remove $x").Words())

	assert.Equal(t, Command{Kind: CommandRemove, Text: "remove a{b,c}"}, Classify("remove a{b,c}"))
	assert.Equal(t, Command{Kind: CommandRemove, Text: "remove $x"}, Classify("remove $x"))
}

func TestParseLine_FallsBackToWhitespace(t *testing.T) {
	p := ParseLine(`x = "abc`)
	assert.Equal(t, []string{"x", "=", `"abc`}, p.Words())
}

func TestParseLine_Blank(t *testing.T) {
	p := ParseLine("")
	assert.Equal(t, "", p.Word())
	assert.Empty(t, p.Words())
}

func TestCommandKind_String(t *testing.T) {
	assert.Equal(t, "expression", CommandExpression.String())
	assert.Equal(t, "help", CommandHelp.String())
	assert.Equal(t, "show", CommandShow.String())
	assert.Equal(t, "remove", CommandRemove.String())
	assert.Equal(t, "quit", CommandQuit.String())
}
