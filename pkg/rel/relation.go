package rel

import (
	"fmt"
	"strings"
)

// Tuple is a fixed-length ordered sequence of scalar values.
// The zero Tuple has length zero.
type Tuple struct {
	values []Value
}

// NewTuple creates a tuple holding a copy of values.
func NewTuple(values ...Value) Tuple {
	return Tuple{values: append([]Value(nil), values...)}
}

// Len returns the number of values in the tuple.
func (t Tuple) Len() int { return len(t.values) }

// At returns the value at position i.
func (t Tuple) At(i int) Value { return t.values[i] }

// Values returns a copy of the tuple's values.
func (t Tuple) Values() []Value {
	return append([]Value(nil), t.values...)
}

// Equal reports whether t and o hold equal values in the same positions.
func (t Tuple) Equal(o Tuple) bool {
	if len(t.values) != len(o.values) {
		return false
	}
	for i := range t.values {
		if t.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

func (t Tuple) String() string {
	parts := make([]string, len(t.values))
	for i, v := range t.values {
		parts[i] = Quote(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Relation is an ordered sequence of column names paired with a sequence of
// tuples of the same arity. Duplicate column names are permitted.
type Relation struct {
	columns []string
	tuples  []Tuple
}

// NewRelation creates a relation after checking that every tuple has one
// scalar value per column.
func NewRelation(columns []string, tuples []Tuple) (*Relation, error) {
	for i, t := range tuples {
		if t.Len() != len(columns) {
			return nil, &TupleError{
				Index: i,
				Err:   ErrArity,
				Msg:   fmt.Sprintf("has %d values, expected %d", t.Len(), len(columns)),
			}
		}
		for _, v := range t.values {
			if !IsScalar(v) {
				return nil, &TupleError{
					Index: i,
					Err:   ErrNotScalar,
					Msg:   fmt.Sprintf("holds a %s value", v.Kind()),
				}
			}
		}
	}
	return newRelation(append([]string(nil), columns...), append([]Tuple(nil), tuples...)), nil
}

// newRelation wraps already-validated slices without copying them.
func newRelation(columns []string, tuples []Tuple) *Relation {
	return &Relation{columns: columns, tuples: tuples}
}

func (*Relation) Kind() Kind { return KindRelation }
func (*Relation) value()     {}

// Columns returns a copy of the column-name sequence.
func (r *Relation) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Tuples returns a copy of the tuple sequence.
func (r *Relation) Tuples() []Tuple {
	return append([]Tuple(nil), r.tuples...)
}

// Arity returns the number of columns.
func (r *Relation) Arity() int { return len(r.columns) }

// Len returns the number of tuples.
func (r *Relation) Len() int { return len(r.tuples) }

// Tuple returns the i-th tuple.
func (r *Relation) Tuple(i int) Tuple { return r.tuples[i] }

// Index returns the position of the first column called name, or -1.
func (r *Relation) Index(name string) int {
	return indexOf(r.columns, name)
}

// Contains reports whether the relation holds a tuple equal to t.
func (r *Relation) Contains(t Tuple) bool {
	for _, u := range r.tuples {
		if u.Equal(t) {
			return true
		}
	}
	return false
}

func (r *Relation) String() string {
	var b strings.Builder
	b.WriteString("Relation{(")
	b.WriteString(strings.Join(r.columns, ", "))
	b.WriteString(") [")
	for i, t := range r.tuples {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
	b.WriteString("]}")
	return b.String()
}

// Row is one tuple viewed together with its column names. It is what a
// condition predicate sees.
type Row struct {
	Columns []string
	Tuple   Tuple
}

// Lookup returns the value bound to name. When a name repeats, the last
// column with that name wins.
func (r Row) Lookup(name string) (Value, bool) {
	for i := len(r.Columns) - 1; i >= 0; i-- {
		if r.Columns[i] == name {
			return r.Tuple.At(i), true
		}
	}
	return nil, false
}

// Predicate decides whether a row satisfies a condition.
type Predicate func(Row) (bool, error)

// Equivalent reports whether a and b have the same column-name sequence and
// the same set of tuples, ignoring order and duplicates.
func Equivalent(a, b *Relation) bool {
	if !sameColumns(a.columns, b.columns) {
		return false
	}
	for _, t := range a.tuples {
		if !b.Contains(t) {
			return false
		}
	}
	for _, t := range b.tuples {
		if !a.Contains(t) {
			return false
		}
	}
	return true
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// sameColumns compares column sequences positionally.
func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
