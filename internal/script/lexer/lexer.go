package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes JEL expression source
type Lexer struct {
	input        string
	position     int  // byte offset of the current rune
	readPosition int  // byte offset just after the current rune
	ch           rune // current rune; utf8.RuneError for an invalid byte
	line         int  // current line number (1-indexed)
	column       int  // current column number in runes (1-indexed)
}

// New creates a new Lexer instance
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// Tokenize returns every token in input up to and including EOF.
func Tokenize(input string) []Token {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Line: l.line, Column: l.column, Offset: l.position}

	switch l.ch {
	case '=':
		tok.Type, tok.Literal = l.either('=', OP_EQ, OP_ASSIGN)
	case '!':
		tok.Type, tok.Literal = l.either('=', OP_NEQ, OP_BANG)
	case '<':
		tok.Type, tok.Literal = l.either('=', OP_LTE, OP_LT)
	case '>':
		tok.Type, tok.Literal = l.either('=', OP_GTE, OP_GT)
	case '&':
		tok.Type, tok.Literal = l.either('&', OP_AND, ILLEGAL)
	case '|':
		tok.Type, tok.Literal = l.either('|', OP_OR, ILLEGAL)
	case '+':
		tok.Type, tok.Literal = OP_PLUS, l.single()
	case '-':
		tok.Type, tok.Literal = OP_MINUS, l.single()
	case '*':
		tok.Type, tok.Literal = OP_ASTERISK, l.single()
	case '/':
		tok.Type, tok.Literal = OP_SLASH, l.single()
	case '%':
		tok.Type, tok.Literal = OP_PERCENT, l.single()
	case '?':
		tok.Type, tok.Literal = OP_QUESTION, l.single()
	case ',':
		tok.Type, tok.Literal = COMMA, l.single()
	case ':':
		tok.Type, tok.Literal = COLON, l.single()
	case ';':
		tok.Type, tok.Literal = SEMICOLON, l.single()
	case '(':
		tok.Type, tok.Literal = LPAREN, l.single()
	case ')':
		tok.Type, tok.Literal = RPAREN, l.single()
	case '[':
		tok.Type, tok.Literal = LBRACKET, l.single()
	case ']':
		tok.Type, tok.Literal = RBRACKET, l.single()
	case '"', '\'':
		literal, closed := l.readString(l.ch)
		tok.Literal = literal
		tok.Type = STRING
		if !closed {
			tok.Type = ILLEGAL
			tok.Literal = l.input[tok.Offset:l.position]
		}
	case 0:
		tok.Type = EOF
	default:
		switch {
		case isLetter(l.ch):
			tok.Literal = l.readIdentifier()
			tok.Type = LookupIdent(tok.Literal)
		case isDigit(l.ch):
			tok.Literal = l.readNumber()
			tok.Type = NUMBER
		default:
			tok.Type, tok.Literal = ILLEGAL, l.single()
		}
	}

	tok.End = l.position
	return tok
}

// either consumes a one or two character operator depending on the next char.
func (l *Lexer) either(next rune, two, one TokenType) (TokenType, string) {
	if l.peekChar() == next {
		start := l.position
		l.readChar()
		l.readChar()
		return two, l.input[start:l.position]
	}
	return one, l.single()
}

// single consumes the current rune and returns its source text, which keeps
// invalid UTF-8 bytes as written.
func (l *Lexer) single() string {
	start := l.position
	l.readChar()
	return l.input[start:l.position]
}

// readChar advances the lexer's position and updates the current character
func (l *Lexer) readChar() {
	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input)
	} else {
		r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.readPosition += size
	}
	l.column++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

// peekChar returns the next rune without advancing the position
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads a number (integer or float)
func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return l.input[position:l.position]
}

// readString reads a quoted string and reports whether the closing quote was found.
func (l *Lexer) readString(quote rune) (string, bool) {
	var result strings.Builder
	l.readChar() // consume opening quote

	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result.WriteByte('\n')
			case 't':
				result.WriteByte('\t')
			case 'r':
				result.WriteByte('\r')
			case '\\', '"', '\'':
				result.WriteRune(l.ch)
			case 0:
				return result.String(), false
			default:
				// unknown escapes are kept as written
				result.WriteByte('\\')
				result.WriteString(l.input[l.position:l.readPosition])
			}
			l.readChar()
			continue
		}
		result.WriteString(l.input[l.position:l.readPosition])
		l.readChar()
	}

	if l.ch != quote {
		return result.String(), false
	}
	l.readChar() // consume closing quote
	return result.String(), true
}

// isLetter reports whether ch can start an identifier. utf8.RuneError is not
// a letter, so invalid UTF-8 is always an illegal token.
func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// Error returns a formatted error message with line and column information
func (l *Lexer) Error(msg string) string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", l.line, l.column, msg)
}
