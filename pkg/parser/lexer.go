package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/leaprel/pkg/token"
)

// Lexer tokenizes query text.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      rune // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// Tokenize splits input into tokens. The returned slice always ends with an
// EOF token.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var toks []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	l.pos = l.readPos
	if l.readPos >= len(l.input) {
		l.ch = 0 // NUL = EOF
		l.col++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.readPos += size
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// atEOF reports whether the whole input has been consumed.
func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() Position {
	return Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// twoCharOps maps the first character of a two-character operator to the
// second character and resulting token.
var twoCharOps = map[rune]struct {
	next rune
	tok  TokenType
}{
	'>': {'=', token.GE},
	'<': {'=', token.LE},
	'=': {'=', token.EQ},
	'!': {'=', token.NE},
	'&': {'&', token.AND},
	'|': {'|', token.OR},
}

// oneCharTokens maps single-character punctuation and operators.
var oneCharTokens = map[rune]TokenType{
	',': token.COMMA,
	'{': token.LBRACE,
	'}': token.RBRACE,
	'(': token.LPAREN,
	')': token.RPAREN,
	'>': token.GT,
	'<': token.LT,
	'=': token.ASSIGN,
	'!': token.NOT,
	'&': token.AMP,
	'|': token.PIPE,
}

// NextToken returns the next token. Any character outside the language's
// alphabet is a TokenizeError.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	pos := l.currentPos()

	if l.atEOF() {
		return Token{Type: token.EOF, Pos: pos}, nil
	}

	switch {
	case isLetter(l.ch) || l.ch == '_':
		word := l.readIdentifier()
		return Token{Type: LookupIdent(word), Literal: word, Pos: pos}, nil
	case isDigit(l.ch):
		return Token{Type: token.INT, Literal: l.readNumber(), Pos: pos}, nil
	case l.ch == '"':
		s, err := l.readString(pos)
		if err != nil {
			return Token{}, err
		}
		return Token{Type: token.STRING, Literal: s, Pos: pos}, nil
	}

	// Greedy two-character lookahead before falling back to a single char
	if op, ok := twoCharOps[l.ch]; ok && l.peekChar() == op.next {
		lit := string([]rune{l.ch, op.next})
		l.readChar()
		l.readChar()
		return Token{Type: op.tok, Literal: lit, Pos: pos}, nil
	}
	if t, ok := oneCharTokens[l.ch]; ok {
		lit := string(l.ch)
		l.readChar()
		return Token{Type: t, Literal: lit, Pos: pos}, nil
	}

	return Token{}, &TokenizeError{
		Pos:     pos,
		Char:    l.ch,
		Message: fmt.Sprintf(ErrUnexpectedChar, l.ch),
	}
}

// skipWhitespace skips spaces, tabs and newlines.
func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// readString reads a double-quoted string literal.
// Handles \" and \\ escapes; other backslash pairs are kept verbatim.
func (l *Lexer) readString(start Position) (string, error) {
	l.readChar() // skip opening quote

	var result strings.Builder
	for !l.atEOF() {
		switch l.ch {
		case '"':
			l.readChar() // skip closing quote
			return result.String(), nil
		case '\\':
			next := l.peekChar()
			if next == '"' || next == '\\' {
				result.WriteRune(next)
				l.readChar()
				l.readChar()
				continue
			}
			result.WriteRune(l.ch)
			l.readChar()
		default:
			result.WriteRune(l.ch)
			l.readChar()
		}
	}
	return "", &TokenizeError{
		Pos:        start,
		Char:       '"',
		Message:    ErrUnterminatedString,
		Incomplete: true,
	}
}

// readIdentifier reads a word made of letters, digits and underscores.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for !l.atEOF() && (isLetter(l.ch) || isDigit(l.ch) || l.ch == '_') {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a run of decimal digits.
func (l *Lexer) readNumber() string {
	start := l.pos
	for !l.atEOF() && isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
