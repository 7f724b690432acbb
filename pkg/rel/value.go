// Package rel provides the value model and the relational operator library.
//
// Every value flowing through evaluation is one of Int, Str, Bool or
// *Relation. Relations are immutable: operators allocate new relations and
// never modify their inputs.
//
// There is no null kind. Outer joins pad missing data with the string
// sentinel Null ("NULL"), and is_null is an equality test against it.
package rel

import (
	"strconv"
)

// Kind identifies the runtime type of a Value.
type Kind int

// Value kinds.
const (
	KindInteger Kind = iota
	KindString
	KindBoolean
	KindRelation
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindString:
		return "String"
	case KindBoolean:
		return "Boolean"
	case KindRelation:
		return "Relation"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a runtime value. The set of implementations is closed.
type Value interface {
	Kind() Kind
	String() string
	value()
}

// Int is an integer value.
type Int int64

// Str is a string value.
type Str string

// Bool is a boolean value.
type Bool bool

// Null is the sentinel used for missing data in outer joins.
const Null = Str("NULL")

func (Int) Kind() Kind  { return KindInteger }
func (Str) Kind() Kind  { return KindString }
func (Bool) Kind() Kind { return KindBoolean }

func (v Int) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v Str) String() string  { return string(v) }
func (v Bool) String() string { return strconv.FormatBool(bool(v)) }

func (Int) value()  {}
func (Str) value()  {}
func (Bool) value() {}

// IsScalar reports whether v may appear inside a tuple.
func IsScalar(v Value) bool {
	switch v.(type) {
	case Int, Str, Bool:
		return true
	}
	return false
}

// IsNull reports whether v is the Null sentinel.
func IsNull(v Value) bool {
	s, ok := v.(Str)
	return ok && s == Null
}

// Quote renders a scalar the way it would be written as a literal:
// strings are double-quoted, everything else uses String.
func Quote(v Value) string {
	if s, ok := v.(Str); ok {
		return strconv.Quote(string(s))
	}
	return v.String()
}
