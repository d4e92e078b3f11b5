package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mwtan/jelconsole/internal/script/lexer"
)

// Parser represents the parser
type Parser struct {
	l      *lexer.Lexer
	errors []string

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// Operator precedence levels
const (
	_ int = iota
	LOWEST
	TERNARY     // ? :
	OR          // ||
	AND         // &&
	EQUALS      // ==
	LESSGREATER // > or <
	SUM         // +
	PRODUCT     // *
	PREFIX      // -X or !X
	CALL        // len(X)
	INDEX       // list[X]
)

var precedences = map[lexer.TokenType]int{
	lexer.OP_QUESTION: TERNARY,
	lexer.OP_OR:       OR,
	lexer.OP_AND:      AND,
	lexer.OP_EQ:       EQUALS,
	lexer.OP_NEQ:      EQUALS,
	lexer.OP_LT:       LESSGREATER,
	lexer.OP_GT:       LESSGREATER,
	lexer.OP_LTE:      LESSGREATER,
	lexer.OP_GTE:      LESSGREATER,
	lexer.OP_PLUS:     SUM,
	lexer.OP_MINUS:    SUM,
	lexer.OP_SLASH:    PRODUCT,
	lexer.OP_ASTERISK: PRODUCT,
	lexer.OP_PERCENT:  PRODUCT,
	lexer.LPAREN:      CALL,
	lexer.LBRACKET:    INDEX,
}

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

// New creates a new Parser instance
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:      l,
		errors: []string{},
	}

	p.prefixParseFns = make(map[lexer.TokenType]prefixParseFn)
	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.KW_TRUE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.KW_FALSE, p.parseBooleanLiteral)
	p.registerPrefix(lexer.KW_NULL, p.parseNullLiteral)
	p.registerPrefix(lexer.OP_BANG, p.parseUnaryExpression)
	p.registerPrefix(lexer.OP_MINUS, p.parseUnaryExpression)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(lexer.LBRACKET, p.parseListLiteral)

	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)
	for _, op := range []lexer.TokenType{
		lexer.OP_PLUS, lexer.OP_MINUS, lexer.OP_SLASH, lexer.OP_ASTERISK, lexer.OP_PERCENT,
		lexer.OP_EQ, lexer.OP_NEQ, lexer.OP_LT, lexer.OP_GT, lexer.OP_LTE, lexer.OP_GTE,
		lexer.OP_AND, lexer.OP_OR,
	} {
		p.registerInfix(op, p.parseBinaryExpression)
	}
	p.registerInfix(lexer.OP_QUESTION, p.parseConditionalExpression)
	p.registerInfix(lexer.LPAREN, p.parseCallExpression)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpression)

	// Read two tokens to set both curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// Parse is a convenience wrapper that parses src and returns the program
// along with any errors collected on the way.
func Parse(src string) (*Program, []string) {
	p := New(lexer.New(src))
	program := p.ParseProgram()
	return program, p.Errors()
}

func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// Errors returns the list of parsing errors
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) addError(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek checks if the next token is of the expected type and advances if so
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t lexer.TokenType) {
	p.addError("expected %s, got %s at line %d, column %d",
		describe(t), describeToken(p.peekToken), p.peekToken.Line, p.peekToken.Column)
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

// ParseProgram parses a sequence of ';' separated statements.
func (p *Parser) ParseProgram() *Program {
	program := &Program{}
	program.Statements = []Statement{}

	for !p.curTokenIs(lexer.EOF) {
		if p.curTokenIs(lexer.SEMICOLON) {
			p.nextToken()
			continue
		}

		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}

		// a statement must be followed by ';' or the end of input
		if !p.peekTokenIs(lexer.SEMICOLON) && !p.peekTokenIs(lexer.EOF) {
			if len(p.errors) == 0 {
				p.addError("unexpected %s at line %d, column %d",
					describeToken(p.peekToken), p.peekToken.Line, p.peekToken.Column)
			}
			p.skipStatement()
		}
		p.nextToken()
	}

	return program
}

// skipStatement advances until the peek token ends the current statement.
func (p *Parser) skipStatement() {
	for !p.peekTokenIs(lexer.SEMICOLON) && !p.peekTokenIs(lexer.EOF) {
		p.nextToken()
	}
}

func (p *Parser) parseStatement() Statement {
	if p.curTokenIs(lexer.IDENT) && p.peekTokenIs(lexer.OP_ASSIGN) {
		return p.parseAssignmentStatement()
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseAssignmentStatement() Statement {
	stmt := &AssignmentStatement{Token: p.curToken}
	stmt.Name = &Identifier{Token: p.curToken, Value: p.curToken.Literal}

	p.nextToken() // consume identifier, now on '='
	if p.peekTokenIs(lexer.SEMICOLON) || p.peekTokenIs(lexer.EOF) {
		p.addError("expected expression after '=' at line %d, column %d",
			p.peekToken.Line, p.peekToken.Column)
		return nil
	}
	p.nextToken() // consume '=', now on value expression

	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() Statement {
	stmt := &ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}
	return stmt
}

// parseExpression parses an expression with operator precedence
func (p *Parser) parseExpression(precedence int) Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixError(p.curToken)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for !p.peekTokenIs(lexer.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()

		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}

	return leftExp
}

func (p *Parser) noPrefixError(tok lexer.Token) {
	switch {
	case tok.Type == lexer.ILLEGAL && strings.HasPrefix(tok.Literal, "\""),
		tok.Type == lexer.ILLEGAL && strings.HasPrefix(tok.Literal, "'"):
		p.addError("unterminated string at line %d, column %d", tok.Line, tok.Column)
	case tok.Type == lexer.ILLEGAL:
		p.addError("illegal character %q at line %d, column %d", tok.Literal, tok.Line, tok.Column)
	case tok.Type == lexer.EOF:
		p.addError("unexpected end of input at line %d, column %d", tok.Line, tok.Column)
	default:
		p.addError("unexpected %s at line %d, column %d", describeToken(tok), tok.Line, tok.Column)
	}
}

func (p *Parser) parseIdentifier() Expression {
	return &Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseNumberLiteral() Expression {
	lit := &NumberLiteral{Token: p.curToken, Value: p.curToken.Literal}

	if strings.Contains(lit.Value, ".") {
		lit.IsFloat = true
		if _, err := strconv.ParseFloat(lit.Value, 64); err != nil {
			p.addError("could not parse %q as number at line %d, column %d",
				lit.Value, p.curToken.Line, p.curToken.Column)
			return nil
		}
		return lit
	}

	if _, err := strconv.ParseInt(lit.Value, 10, 64); err != nil {
		p.addError("integer literal %s out of range at line %d, column %d",
			lit.Value, p.curToken.Line, p.curToken.Column)
		return nil
	}
	return lit
}

func (p *Parser) parseStringLiteral() Expression {
	return &StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() Expression {
	return &BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(lexer.KW_TRUE)}
}

func (p *Parser) parseNullLiteral() Expression {
	return &NullLiteral{Token: p.curToken}
}

// parseUnaryExpression parses unary expressions (!, -)
func (p *Parser) parseUnaryExpression() Expression {
	expression := &UnaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}

	p.nextToken()

	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseBinaryExpression(left Expression) Expression {
	expression := &BinaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseConditionalExpression parses cond ? a : b. The alternative is parsed at
// the lowest precedence so that chained conditionals nest to the right.
func (p *Parser) parseConditionalExpression(condition Expression) Expression {
	expression := &ConditionalExpression{Token: p.curToken, Condition: condition}

	p.nextToken()
	expression.Consequence = p.parseExpression(LOWEST)
	if expression.Consequence == nil {
		return nil
	}

	if !p.expectPeek(lexer.COLON) {
		return nil
	}

	p.nextToken()
	expression.Alternative = p.parseExpression(LOWEST)
	if expression.Alternative == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseGroupedExpression() Expression {
	p.nextToken()

	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	return exp
}

func (p *Parser) parseCallExpression(function Expression) Expression {
	exp := &CallExpression{Token: p.curToken, Function: function}
	args, ok := p.parseExpressionList(lexer.RPAREN)
	if !ok {
		return nil
	}
	exp.Arguments = args
	return exp
}

func (p *Parser) parseIndexExpression(left Expression) Expression {
	exp := &IndexExpression{Token: p.curToken, Left: left}

	p.nextToken()
	exp.Index = p.parseExpression(LOWEST)
	if exp.Index == nil {
		return nil
	}

	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return exp
}

func (p *Parser) parseListLiteral() Expression {
	list := &ListLiteral{Token: p.curToken}
	elements, ok := p.parseExpressionList(lexer.RBRACKET)
	if !ok {
		return nil
	}
	list.Elements = elements
	return list
}

// parseExpressionList parses a comma-separated list of expressions
func (p *Parser) parseExpressionList(end lexer.TokenType) ([]Expression, bool) {
	list := []Expression{}

	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil, false
	}
	list = append(list, first)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken() // consume comma
		p.nextToken() // move to next expression
		next := p.parseExpression(LOWEST)
		if next == nil {
			return nil, false
		}
		list = append(list, next)
	}

	if !p.expectPeek(end) {
		return nil, false
	}

	return list, true
}

var tokenDescriptions = map[lexer.TokenType]string{
	lexer.EOF:       "end of input",
	lexer.COMMA:     "','",
	lexer.COLON:     "':'",
	lexer.SEMICOLON: "';'",
	lexer.LPAREN:    "'('",
	lexer.RPAREN:    "')'",
	lexer.LBRACKET:  "'['",
	lexer.RBRACKET:  "']'",
}

func describe(t lexer.TokenType) string {
	if d, ok := tokenDescriptions[t]; ok {
		return d
	}
	return t.String()
}

func describeToken(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EOF:
		return "end of input"
	case lexer.STRING:
		return fmt.Sprintf("string %q", tok.Literal)
	case lexer.NUMBER:
		return "number " + tok.Literal
	case lexer.IDENT:
		return "identifier " + tok.Literal
	default:
		return "'" + tok.Literal + "'"
	}
}
