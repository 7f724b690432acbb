package parser

import (
	"errors"
	"fmt"
)

// ErrIncomplete is matched (via errors.Is) by tokenize and parse errors that
// were caused by the input ending in the middle of a construct. Callers
// reading interactively should fetch more input and retry.
var ErrIncomplete = errors.New("incomplete input")

// TokenizeError represents a lexical analysis error.
type TokenizeError struct {
	Pos        Position
	Char       rune
	Message    string
	Incomplete bool
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("tokenize error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Is reports whether target is ErrIncomplete and the error was caused by
// premature end of input.
func (e *TokenizeError) Is(target error) bool {
	return target == ErrIncomplete && e.Incomplete
}

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos        Position
	Message    string
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Is reports whether target is ErrIncomplete and the error was caused by
// premature end of input.
func (e *ParseError) Is(target error) bool {
	return target == ErrIncomplete && e.Incomplete
}

// Common error messages
const (
	ErrUnexpectedChar     = "unexpected character %q"
	ErrUnterminatedString = "unterminated string literal"
	ErrIntegerRange       = "integer literal %s out of range"
	ErrExpectedAfter      = "expected %s after %s"
	ErrExpected           = "expected %s, found %s"
	ErrTrailingTokens     = "unexpected %s after end of %s"
	ErrTupleArity         = "tuple %d of relation %s has %d values, expected %d"
)
