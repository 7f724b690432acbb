package rel

import (
	"fmt"
	"slices"
)

// Select returns the tuples of r for which pred holds, in input order.
// The first predicate error aborts the scan.
func Select(r *Relation, pred Predicate) (*Relation, error) {
	out := make([]Tuple, 0, len(r.tuples))
	for _, t := range r.tuples {
		ok, err := pred(Row{Columns: r.columns, Tuple: t})
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, t)
		}
	}
	return newRelation(r.columns, out), nil
}

// Project keeps the named columns of r. Output columns always follow r's
// original order regardless of the order they were requested in. A name
// requested twice is kept twice.
func Project(r *Relation, names []string) (*Relation, error) {
	idx := make([]int, 0, len(names))
	for _, name := range names {
		i := indexOf(r.columns, name)
		if i < 0 {
			return nil, &ColumnError{Name: name, Columns: r.Columns()}
		}
		idx = append(idx, i)
	}
	slices.Sort(idx)

	columns := pick(r.columns, idx)
	tuples := make([]Tuple, len(r.tuples))
	for i, t := range r.tuples {
		tuples[i] = Tuple{values: pick(t.values, idx)}
	}
	return newRelation(columns, tuples), nil
}

// Union returns a's tuples followed by the tuples of b that do not appear
// in a, each part in its own input order.
func Union(a, b *Relation) (*Relation, error) {
	if err := checkCompatible("union", a, b); err != nil {
		return nil, err
	}
	out := append(make([]Tuple, 0, len(a.tuples)+len(b.tuples)), a.tuples...)
	for _, t := range b.tuples {
		if !a.Contains(t) {
			out = append(out, t)
		}
	}
	return newRelation(a.columns, out), nil
}

// Intersect returns a's tuples that also appear in b, in a's order.
func Intersect(a, b *Relation) (*Relation, error) {
	if err := checkCompatible("intersect", a, b); err != nil {
		return nil, err
	}
	return filterMembers(a, b, true), nil
}

// Minus returns a's tuples that do not appear in b, in a's order.
func Minus(a, b *Relation) (*Relation, error) {
	if err := checkCompatible("minus", a, b); err != nil {
		return nil, err
	}
	return filterMembers(a, b, false), nil
}

func filterMembers(a, b *Relation, keep bool) *Relation {
	out := make([]Tuple, 0, len(a.tuples))
	for _, t := range a.tuples {
		if b.Contains(t) == keep {
			out = append(out, t)
		}
	}
	return newRelation(a.columns, out)
}

// checkCompatible requires positionally identical column sequences.
func checkCompatible(op string, a, b *Relation) error {
	if !sameColumns(a.columns, b.columns) {
		return &SchemaError{
			Op:     op,
			Left:   a.Columns(),
			Right:  b.Columns(),
			Reason: "column sequences differ",
		}
	}
	return nil
}

// ---------- Natural join ----------

// indexPair links a column of the left relation to the column of the right
// relation with the same name.
type indexPair struct {
	left, right int
}

// commonColumns pairs every name present in both sequences. Only the first
// occurrence of a name on either side participates.
func commonColumns(a, b []string) []indexPair {
	var pairs []indexPair
	for i, name := range a {
		if indexOf(a[:i], name) >= 0 {
			continue
		}
		if j := indexOf(b, name); j >= 0 {
			pairs = append(pairs, indexPair{left: i, right: j})
		}
	}
	return pairs
}

// mergeOnCommon appends the elements of b that are not on the right side of
// a pair to a copy of a. The header and every output tuple go through it.
func mergeOnCommon[T any](a, b []T, pairs []indexPair) []T {
	out := make([]T, 0, len(a)+len(b)-len(pairs))
	out = append(out, a...)
	for j, v := range b {
		if !slices.ContainsFunc(pairs, func(p indexPair) bool { return p.right == j }) {
			out = append(out, v)
		}
	}
	return out
}

// NaturalJoin joins a and b on every column name they share. Each output
// tuple is the left tuple followed by the right tuple's remaining columns.
// With no shared names the result is the cross product.
func NaturalJoin(a, b *Relation) (*Relation, error) {
	pairs := commonColumns(a.columns, b.columns)
	columns := mergeOnCommon(a.columns, b.columns, pairs)

	var out []Tuple
	for _, ta := range a.tuples {
		for _, tb := range b.tuples {
			if !agreeOn(ta, tb, pairs) {
				continue
			}
			out = append(out, Tuple{values: mergeOnCommon(ta.values, tb.values, pairs)})
		}
	}
	return newRelation(columns, out), nil
}

func agreeOn(ta, tb Tuple, pairs []indexPair) bool {
	for _, p := range pairs {
		if ta.values[p.left] != tb.values[p.right] {
			return false
		}
	}
	return true
}

// ---------- Theta join ----------

// ThetaJoin pairs every tuple of a with every tuple of b and keeps the
// concatenations for which pred holds. With leftOuter, each unmatched tuple
// of a is emitted padded with Null for b's columns; with rightOuter, each
// unmatched tuple of b is emitted after Null padding for a's columns.
// Padding rows follow all matched rows, left ones first.
//
// The column-name sets of a and b must be disjoint.
func ThetaJoin(a, b *Relation, pred Predicate, leftOuter, rightOuter bool) (*Relation, error) {
	if shared := sharedNames(a.columns, b.columns); len(shared) > 0 {
		return nil, &SchemaError{
			Op:     "theta_join",
			Left:   a.Columns(),
			Right:  b.Columns(),
			Reason: fmt.Sprintf("column names must be disjoint, both have %v", shared),
		}
	}

	columns := concat(a.columns, b.columns)
	matchedA := make([]bool, len(a.tuples))
	matchedB := make([]bool, len(b.tuples))

	var out []Tuple
	for i, ta := range a.tuples {
		for j, tb := range b.tuples {
			t := Tuple{values: concat(ta.values, tb.values)}
			ok, err := pred(Row{Columns: columns, Tuple: t})
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, t)
				matchedA[i] = true
				matchedB[j] = true
			}
		}
	}

	if leftOuter {
		pad := nulls(len(b.columns))
		for i, ta := range a.tuples {
			if !matchedA[i] {
				out = append(out, Tuple{values: concat(ta.values, pad)})
			}
		}
	}
	if rightOuter {
		pad := nulls(len(a.columns))
		for j, tb := range b.tuples {
			if !matchedB[j] {
				out = append(out, Tuple{values: concat(pad, tb.values)})
			}
		}
	}
	return newRelation(columns, out), nil
}

func sharedNames(a, b []string) []string {
	var shared []string
	for _, name := range a {
		if indexOf(b, name) >= 0 && !slices.Contains(shared, name) {
			shared = append(shared, name)
		}
	}
	return shared
}

func nulls(n int) []Value {
	out := make([]Value, n)
	for i := range out {
		out[i] = Null
	}
	return out
}

func concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func pick[T any](src []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = src[j]
	}
	return out
}
