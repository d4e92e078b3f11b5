package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers and literals
	IDENT  // variable names, builtin names
	NUMBER // 123, 45.67
	STRING // "hello", 'world'

	// Keywords
	KW_TRUE
	KW_FALSE
	KW_NULL

	// Operators
	OP_ASSIGN   // =
	OP_PLUS     // +
	OP_MINUS    // -
	OP_ASTERISK // *
	OP_SLASH    // /
	OP_PERCENT  // %
	OP_BANG     // !
	OP_EQ       // ==
	OP_NEQ      // !=
	OP_LT       // <
	OP_GT       // >
	OP_LTE      // <=
	OP_GTE      // >=
	OP_AND      // &&
	OP_OR       // ||
	OP_QUESTION // ?

	// Delimiters
	COMMA     // ,
	COLON     // :
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
)

var tokenTypeNames = [...]string{
	ILLEGAL:     "ILLEGAL",
	EOF:         "EOF",
	IDENT:       "IDENT",
	NUMBER:      "NUMBER",
	STRING:      "STRING",
	KW_TRUE:     "KW_TRUE",
	KW_FALSE:    "KW_FALSE",
	KW_NULL:     "KW_NULL",
	OP_ASSIGN:   "OP_ASSIGN",
	OP_PLUS:     "OP_PLUS",
	OP_MINUS:    "OP_MINUS",
	OP_ASTERISK: "OP_ASTERISK",
	OP_SLASH:    "OP_SLASH",
	OP_PERCENT:  "OP_PERCENT",
	OP_BANG:     "OP_BANG",
	OP_EQ:       "OP_EQ",
	OP_NEQ:      "OP_NEQ",
	OP_LT:       "OP_LT",
	OP_GT:       "OP_GT",
	OP_LTE:      "OP_LTE",
	OP_GTE:      "OP_GTE",
	OP_AND:      "OP_AND",
	OP_OR:       "OP_OR",
	OP_QUESTION: "OP_QUESTION",
	COMMA:       "COMMA",
	COLON:       "COLON",
	SEMICOLON:   "SEMICOLON",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
	LBRACKET:    "LBRACKET",
	RBRACKET:    "RBRACKET",
}

// String implements fmt.Stringer for TokenType.
func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenTypeNames) {
		if name := tokenTypeNames[t]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// Token is a lexical token. Offset and End are byte offsets into the source
// so that callers such as the line highlighter can map tokens back onto text.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
	Offset  int
	End     int
}

var keywords = map[string]TokenType{
	"true":  KW_TRUE,
	"false": KW_FALSE,
	"null":  KW_NULL,
}

// LookupIdent checks if an identifier is a keyword and returns the appropriate token type
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword
func IsKeyword(t TokenType) bool {
	return t == KW_TRUE || t == KW_FALSE || t == KW_NULL
}

// IsOperator returns true for operator tokens.
func IsOperator(t TokenType) bool {
	return t >= OP_ASSIGN && t <= OP_QUESTION
}
