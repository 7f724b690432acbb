package rel

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for relational operator failures. Use errors.Is to match.
var (
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrUnknownColumn  = errors.New("unknown column")
	ErrArity          = errors.New("tuple arity mismatch")
	ErrNotScalar      = errors.New("tuple value is not a scalar")
)

// SchemaError reports incompatible column sequences between two operands.
type SchemaError struct {
	Op     string
	Left   []string
	Right  []string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s: (%s) vs (%s)", e.Op, e.Reason,
		strings.Join(e.Left, ", "), strings.Join(e.Right, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrSchemaMismatch }

// ColumnError reports a column name that does not exist in a relation.
type ColumnError struct {
	Name    string
	Columns []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("unknown column %q (available: %s)", e.Name, strings.Join(e.Columns, ", "))
}

func (e *ColumnError) Unwrap() error { return ErrUnknownColumn }

// TupleError reports a malformed tuple.
type TupleError struct {
	Index int
	Err   error
	Msg   string
}

func (e *TupleError) Error() string {
	return fmt.Sprintf("tuple %d: %s", e.Index, e.Msg)
}

func (e *TupleError) Unwrap() error { return e.Err }
