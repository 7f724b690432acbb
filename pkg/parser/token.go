// Package parser provides the tokenizer and recursive-descent parser for the
// relational-algebra query language.
// This file provides token type aliases so callers need only one import.
package parser

import "github.com/leapstack-labs/leaprel/pkg/token"

// TokenType is an alias for token.TokenType.
type TokenType = token.TokenType

// Token is an alias for token.Token.
type Token = token.Token

// Position is an alias for token.Position.
type Position = token.Position

// LookupIdent is re-exported from token package.
var LookupIdent = token.LookupIdent
