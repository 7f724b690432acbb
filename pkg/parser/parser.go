// Package parser provides the tokenizer and recursive-descent parser for the
// relational-algebra query language.
//
// # Usage
//
//	stmt, err := parser.Parse(`select Age > 30 Employees`)
//	if errors.Is(err, parser.ErrIncomplete) {
//	    // read another line and try again
//	}
//
// # Grammar
//
//	Input        → RelationDef | Expr
//	RelationDef  → Ident '{' ColNames Tuple* '}'
//	Expr         → UnaryExpr (BinOp Expr)?
//	UnaryExpr    → UnaryOp UnaryExpr | Primary
//	Primary      → Ident | Literal | '(' Expr ')'
//	UnaryOp      → '!' | 'is_null' | 'select' Expr | 'project' ColNames
//	BinOp        → '<' | '>' | '<=' | '>=' | '==' | '!=' | '&&' | '||'
//	             | 'union' | 'intersect' | 'minus' | 'join'
//	             | ('theta_join'|'left_join'|'right_join'|'full_join') Expr
//	ColNames     → Ident (',' Ident)*
//	Tuple        → Literal (',' Literal)*
//
// All binary operators share one precedence level and associate to the
// right: a < b < c parses as a < (b < c).
//
// Optional productions return matched=false without consuming tokens.
// Once an operator keyword has been consumed the parser is committed, and a
// missing follow-on construct is a ParseError.
package parser

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/leaprel/pkg/rel"
	"github.com/leapstack-labs/leaprel/pkg/token"
)

// Parser parses a token sequence into statements.
type Parser struct {
	toks []Token
	pos  int
}

// NewParser creates a parser over a pre-tokenized sequence. A trailing EOF
// token is added when missing.
func NewParser(toks []Token) *Parser {
	if n := len(toks); n == 0 || toks[n-1].Type != token.EOF {
		eof := Token{Type: token.EOF, Pos: Position{Line: 1, Column: 1}}
		if n > 0 {
			last := toks[n-1].Pos
			eof.Pos = Position{Line: last.Line, Column: last.Column + len(toks[n-1].Literal), Offset: last.Offset + len(toks[n-1].Literal)}
		}
		toks = append(append([]Token(nil), toks...), eof)
	}
	return &Parser{toks: toks}
}

// Parse tokenizes and parses a single statement. Tokens left over after the
// statement are an error.
func Parse(src string) (Statement, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(toks)
}

// ParseTokens parses a single statement from a pre-tokenized sequence.
func ParseTokens(toks []Token) (Statement, error) {
	p := NewParser(toks)
	stmt, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	if !p.check(token.EOF) {
		return nil, p.errorf(false, ErrTrailingTokens, describe(p.token()), "statement")
	}
	return stmt, nil
}

// ParseScript parses consecutive statements until the end of input.
func ParseScript(src string) ([]Statement, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := NewParser(toks)
	var stmts []Statement
	for !p.Done() {
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// ParseExpr parses a single expression with nothing after it.
func ParseExpr(src string) (Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := NewParser(toks)
	e, err := p.requireExpr("")
	if err != nil {
		return nil, err
	}
	if !p.check(token.EOF) {
		return nil, p.errorf(false, ErrTrailingTokens, describe(p.token()), "expression")
	}
	return e, nil
}

// ---------- Token Helpers ----------

// token returns the current token.
func (p *Parser) token() Token {
	return p.toks[p.pos]
}

// peek returns the token after the current one.
func (p *Parser) peek() Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

// nextToken advances to the next token. EOF is never passed.
func (p *Parser) nextToken() Token {
	tok := p.toks[p.pos]
	if tok.Type != token.EOF {
		p.pos++
	}
	return tok
}

// Done reports whether every token has been consumed.
func (p *Parser) Done() bool {
	return p.check(token.EOF)
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token().Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise returns an
// error naming what was required and what came before it.
func (p *Parser) expect(t TokenType, what, after string) (Token, error) {
	if p.check(t) {
		return p.nextToken(), nil
	}
	return Token{}, p.expected(what, after)
}

// expected builds the error for a missing mandatory construct. Running into
// EOF makes the error incomplete.
func (p *Parser) expected(what, after string) error {
	tok := p.token()
	incomplete := tok.Type == token.EOF
	if after == "" {
		return p.errorf(incomplete, ErrExpected, what, describe(tok))
	}
	msg := fmt.Sprintf(ErrExpectedAfter, what, after)
	if !incomplete {
		msg += ", found " + describe(tok)
	}
	return p.errorf(incomplete, "%s", msg)
}

func (p *Parser) errorf(incomplete bool, format string, args ...any) error {
	return &ParseError{
		Pos:        p.token().Pos,
		Message:    fmt.Sprintf(format, args...),
		Incomplete: incomplete,
	}
}

// describe renders a token for error messages.
func describe(tok Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.IDENT:
		return fmt.Sprintf("identifier %s", tok.Literal)
	case token.INT:
		return fmt.Sprintf("integer %s", tok.Literal)
	case token.STRING:
		return fmt.Sprintf("string %q", tok.Literal)
	default:
		return fmt.Sprintf("'%s'", tok.Type)
	}
}

// ---------- Statements ----------

// ParseStatement parses one statement starting at the current token. A
// statement whose second token is '{' is a relation definition.
func (p *Parser) ParseStatement() (Statement, error) {
	if p.check(token.IDENT) && p.peek().Type == token.LBRACE {
		return p.parseRelationDef()
	}
	e, err := p.requireExpr("")
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: e}, nil
}

// parseRelationDef parses: Ident '{' ColNames Tuple* '}'
func (p *Parser) parseRelationDef() (*RelationDef, error) {
	nameTok := p.nextToken()
	p.nextToken() // skip '{'

	def := &RelationDef{NodeInfo: NodeInfo{Pos: nameTok.Pos}, Name: nameTok.Literal}

	cols, err := p.parseColNames("'{' in definition of " + def.Name)
	if err != nil {
		return nil, err
	}
	def.Columns = cols

	for !p.match(token.RBRACE) {
		start := p.token().Pos
		tuple, err := p.parseTuple(def.Name)
		if err != nil {
			return nil, err
		}
		if len(tuple) != len(cols) {
			return nil, &ParseError{
				Pos:     start,
				Message: fmt.Sprintf(ErrTupleArity, len(def.Rows)+1, def.Name, len(tuple), len(cols)),
			}
		}
		def.Rows = append(def.Rows, tuple)
	}
	return def, nil
}

// parseTuple parses: Literal (',' Literal)*
func (p *Parser) parseTuple(relName string) ([]rel.Value, error) {
	v, ok, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, p.expected("a literal or '}'", "the columns of "+relName)
	}
	tuple := []rel.Value{v}
	for p.match(token.COMMA) {
		v, ok, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, p.expected("a literal", "','")
		}
		tuple = append(tuple, v)
	}
	return tuple, nil
}

// parseColNames parses: Ident (',' Ident)*
// At least one name is mandatory.
func (p *Parser) parseColNames(after string) ([]string, error) {
	tok, err := p.expect(token.IDENT, "a column name", after)
	if err != nil {
		return nil, err
	}
	names := []string{tok.Literal}
	for p.match(token.COMMA) {
		tok, err := p.expect(token.IDENT, "a column name", "','")
		if err != nil {
			return nil, err
		}
		names = append(names, tok.Literal)
	}
	return names, nil
}

// ---------- Expressions ----------

// requireExpr parses an expression that must be present.
func (p *Parser) requireExpr(after string) (Expr, error) {
	e, ok, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, p.expected("an expression", after)
	}
	return e, nil
}

// parseExpr parses: UnaryExpr (BinOp Expr)?
func (p *Parser) parseExpr() (Expr, bool, error) {
	left, ok, err := p.parseUnary()
	if err != nil || !ok {
		return nil, ok, err
	}

	opTok := p.token()
	op, ok := binaryOpTokens[opTok.Type]
	if !ok {
		return left, true, nil
	}
	p.nextToken()

	bin := &BinaryExpr{NodeInfo: NodeInfo{Pos: left.Position()}, Op: op, Left: left}
	if op.HasCondition() {
		cond, err := p.requireExpr("'" + op.String() + "'")
		if err != nil {
			return nil, false, err
		}
		bin.Condition = cond
	}
	right, err := p.requireExpr(p.operandContext(op, bin.Condition))
	if err != nil {
		return nil, false, err
	}
	bin.Right = right
	return bin, true, nil
}

func (p *Parser) operandContext(op BinaryOp, cond Expr) string {
	if cond != nil {
		return "the " + op.String() + " condition"
	}
	return "'" + op.String() + "'"
}

// unaryOps maps prefix operator tokens to operators.
var unaryOps = map[TokenType]UnaryOp{
	token.NOT:     OpNot,
	token.IS_NULL: OpIsNull,
	token.SELECT:  OpSelect,
	token.PROJECT: OpProject,
}

// parseUnary parses: UnaryOp UnaryExpr | Primary
func (p *Parser) parseUnary() (Expr, bool, error) {
	opTok := p.token()
	op, ok := unaryOps[opTok.Type]
	if !ok {
		return p.parsePrimary()
	}
	p.nextToken()

	u := &UnaryExpr{NodeInfo: NodeInfo{Pos: opTok.Pos}, Op: op}
	after := "'" + op.String() + "'"

	switch op {
	case OpSelect:
		cond, err := p.requireExpr(after)
		if err != nil {
			return nil, false, err
		}
		u.Condition = cond
		after = "the select condition"
	case OpProject:
		cols, err := p.parseColNames(after)
		if err != nil {
			return nil, false, err
		}
		u.Columns = cols
		after = "the project column list"
	}

	operand, ok, err := p.parseUnary()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, p.expected("an operand", after)
	}
	u.Operand = operand
	return u, true, nil
}

// parsePrimary parses: Ident | Literal | '(' Expr ')'
func (p *Parser) parsePrimary() (Expr, bool, error) {
	tok := p.token()
	switch tok.Type {
	case token.IDENT:
		p.nextToken()
		return &Identifier{NodeInfo: NodeInfo{Pos: tok.Pos}, Name: tok.Literal}, true, nil
	case token.LPAREN:
		p.nextToken()
		e, err := p.requireExpr("'('")
		if err != nil {
			return nil, false, err
		}
		if _, err := p.expect(token.RPAREN, "')'", "the parenthesized expression"); err != nil {
			return nil, false, err
		}
		return e, true, nil
	}

	v, ok, err := p.parseLiteral()
	if err != nil || !ok {
		return nil, ok, err
	}
	switch v := v.(type) {
	case rel.Int:
		return &IntegerLiteral{NodeInfo: NodeInfo{Pos: tok.Pos}, Value: v}, true, nil
	default:
		return &StringLiteral{NodeInfo: NodeInfo{Pos: tok.Pos}, Value: v.(rel.Str)}, true, nil
	}
}

// parseLiteral parses an integer or string literal.
func (p *Parser) parseLiteral() (rel.Value, bool, error) {
	tok := p.token()
	switch tok.Type {
	case token.INT:
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, false, p.errorf(false, ErrIntegerRange, tok.Literal)
		}
		p.nextToken()
		return rel.Int(n), true, nil
	case token.STRING:
		p.nextToken()
		return rel.Str(tok.Literal), true, nil
	}
	return nil, false, nil
}
