package repl

import (
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// CommandKind identifies what an input line asks the console to do.
type CommandKind int

const (
	CommandExpression CommandKind = iota
	CommandHelp
	CommandShow
	CommandRemove
	CommandQuit
)

func (k CommandKind) String() string {
	switch k {
	case CommandHelp:
		return "help"
	case CommandShow:
		return "show"
	case CommandRemove:
		return "remove"
	case CommandQuit:
		return "quit"
	default:
		return "expression"
	}
}

// Command is a classified input line.
type Command struct {
	Kind CommandKind

	// Name is the variable to remove. Empty when remove was given the wrong
	// number of arguments, which makes the command a no-op.
	Name string

	// Text is the trimmed line, passed verbatim to the evaluator.
	Text string
}

// ParsedLine is an input line split into shell-style words. Quoted
// substrings form a single word.
type ParsedLine struct {
	line  string
	words []string
}

// noExpansion keeps $name references from pulling in the process environment.
func noExpansion(string) string { return "" }

// ParseLine splits line into words. Lines the shell word parser rejects, such
// as expressions with parentheses or semicolons, fall back to whitespace
// splitting.
//
// Words go through brace expansion and $ expansion to the empty string, so
// "remove a{b,c}" has three words and "remove $x" has one. Neither braces nor
// $ can appear in a variable name, so both stay no-ops.
func ParseLine(line string) ParsedLine {
	words, err := shell.Fields(line, noExpansion)
	if err != nil {
		words = strings.Fields(line)
	}
	return ParsedLine{line: line, words: words}
}

func (p ParsedLine) Line() string { return p.line }

// Word returns the first word, or "" for a blank line.
func (p ParsedLine) Word() string {
	if len(p.words) == 0 {
		return ""
	}
	return p.words[0]
}

func (p ParsedLine) Words() []string {
	return append([]string(nil), p.words...)
}

// Classify maps a line to exactly one command. It has no side effects.
func Classify(line string) Command {
	line = strings.TrimSpace(line)
	if strings.EqualFold(line, "quit") || strings.EqualFold(line, "exit") {
		return Command{Kind: CommandQuit, Text: line}
	}

	parsed := ParseLine(line)
	switch parsed.Word() {
	case "help":
		// Trailing words are ignored.
		return Command{Kind: CommandHelp, Text: line}
	case "show":
		return Command{Kind: CommandShow, Text: line}
	case "remove":
		cmd := Command{Kind: CommandRemove, Text: line}
		if words := parsed.Words(); len(words) == 2 {
			cmd.Name = words[1]
		}
		return cmd
	}
	return Command{Kind: CommandExpression, Text: line}
}

// commandWords are the words the line editor highlights as commands.
var commandWords = []string{"help", "show", "remove", "quit", "exit"}
