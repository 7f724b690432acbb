package eval

import (
	"sort"

	"github.com/leapstack-labs/leaprel/pkg/rel"
)

// Environment resolves identifiers to values.
type Environment interface {
	Get(name string) (rel.Value, error)
}

// Globals is the global scope: named relations bound by relation
// definitions. It is not safe for concurrent use.
type Globals struct {
	rels map[string]*rel.Relation
}

// NewGlobals creates an empty global scope.
func NewGlobals() *Globals {
	return &Globals{rels: make(map[string]*rel.Relation)}
}

// Get returns the relation bound to name.
func (g *Globals) Get(name string) (rel.Value, error) {
	if r, ok := g.rels[name]; ok {
		return r, nil
	}
	return nil, unknownIdentifier(name, "")
}

// Lookup returns the relation bound to name, if any.
func (g *Globals) Lookup(name string) (*rel.Relation, bool) {
	r, ok := g.rels[name]
	return r, ok
}

// Set binds name to r, replacing any previous binding.
func (g *Globals) Set(name string, r *rel.Relation) {
	g.rels[name] = r
}

// Delete removes the binding for name.
func (g *Globals) Delete(name string) {
	delete(g.rels, name)
}

// Names returns the bound names in sorted order.
func (g *Globals) Names() []string {
	names := make([]string, 0, len(g.rels))
	for name := range g.rels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bound relations.
func (g *Globals) Len() int { return len(g.rels) }

// RowScope binds the column names of one row to its values. A condition
// evaluated in a row scope cannot see global relations.
type RowScope struct {
	row rel.Row
}

// NewRowScope creates the scope for row.
func NewRowScope(row rel.Row) RowScope {
	return RowScope{row: row}
}

// Get returns the value of column name in the row.
func (s RowScope) Get(name string) (rel.Value, error) {
	if v, ok := s.row.Lookup(name); ok {
		return v, nil
	}
	return nil, unknownIdentifier(name, " in condition")
}
