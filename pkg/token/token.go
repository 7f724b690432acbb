// Package token defines the token types for the relational-algebra query language.
//
// Keywords are reserved: a word that exactly matches one of them is never an
// identifier, so keywords cannot name relations or columns.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota

	// Literals
	IDENT  // identifier
	INT    // 123
	STRING // "hello"

	// Punctuation
	COMMA  // ,
	LBRACE // {
	RBRACE // }
	LPAREN // (
	RPAREN // )

	// Operators
	LT     // <
	GT     // >
	LE     // <=
	GE     // >=
	EQ     // ==
	NE     // !=
	AND    // &&
	OR     // ||
	NOT    // !
	ASSIGN // =
	AMP    // &
	PIPE   // |

	// Keywords
	SELECT
	PROJECT
	UNION
	INTERSECT
	MINUS
	JOIN
	THETA_JOIN //nolint:revive // keyword spelling
	LEFT_JOIN  //nolint:revive // keyword spelling
	RIGHT_JOIN //nolint:revive // keyword spelling
	FULL_JOIN  //nolint:revive // keyword spelling
	IS_NULL    //nolint:revive // keyword spelling
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", int(t))
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF: "EOF",

	IDENT:  "IDENT",
	INT:    "INT",
	STRING: "STRING",

	COMMA:  ",",
	LBRACE: "{",
	RBRACE: "}",
	LPAREN: "(",
	RPAREN: ")",

	LT:     "<",
	GT:     ">",
	LE:     "<=",
	GE:     ">=",
	EQ:     "==",
	NE:     "!=",
	AND:    "&&",
	OR:     "||",
	NOT:    "!",
	ASSIGN: "=",
	AMP:    "&",
	PIPE:   "|",

	SELECT:     "select",
	PROJECT:    "project",
	UNION:      "union",
	INTERSECT:  "intersect",
	MINUS:      "minus",
	JOIN:       "join",
	THETA_JOIN: "theta_join",
	LEFT_JOIN:  "left_join",
	RIGHT_JOIN: "right_join",
	FULL_JOIN:  "full_join",
	IS_NULL:    "is_null",
}

// keywords maps keyword spellings to their token types. Matching is exact.
var keywords = map[string]TokenType{
	"select":     SELECT,
	"project":    PROJECT,
	"union":      UNION,
	"intersect":  INTERSECT,
	"minus":      MINUS,
	"join":       JOIN,
	"theta_join": THETA_JOIN,
	"left_join":  LEFT_JOIN,
	"right_join": RIGHT_JOIN,
	"full_join":  FULL_JOIN,
	"is_null":    IS_NULL,
}

// LookupIdent returns the token type for the given word.
// If the word is a keyword, the keyword token type is returned.
// Otherwise, IDENT is returned.
func LookupIdent(word string) TokenType {
	if tok, ok := keywords[word]; ok {
		return tok
	}
	return IDENT
}

// Keywords returns every keyword spelling, in declaration order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for t := SELECT; t <= IS_NULL; t++ {
		out = append(out, tokenNames[t])
	}
	return out
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= SELECT && t <= IS_NULL
}

// IsOperator returns true if the token type is an operator symbol.
func IsOperator(t TokenType) bool {
	return t >= LT && t <= PIPE
}

// IsPunctuation returns true if the token type is single-character punctuation.
func IsPunctuation(t TokenType) bool {
	return t >= COMMA && t <= RPAREN
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

func (t Token) String() string {
	switch t.Type {
	case IDENT, INT:
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	case STRING:
		return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
	default:
		return t.Type.String()
	}
}
