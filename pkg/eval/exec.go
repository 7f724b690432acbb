package eval

import (
	"github.com/leapstack-labs/leaprel/pkg/parser"
	"github.com/leapstack-labs/leaprel/pkg/rel"
)

// Result is the outcome of one statement.
type Result struct {
	Stmt parser.Statement
	// Name is set when the statement defined a relation.
	Name  string
	Value rel.Value
}

// Defined reports whether the statement was a relation definition.
func (r *Result) Defined() bool { return r.Name != "" }

// Exec runs a single statement. A relation definition binds its relation
// into globals; an expression is evaluated against globals.
func Exec(stmt parser.Statement, globals *Globals) (*Result, error) {
	switch s := stmt.(type) {
	case *parser.RelationDef:
		r, err := s.Relation()
		if err != nil {
			return nil, wrapRel(s.Name, err)
		}
		globals.Set(s.Name, r)
		return &Result{Stmt: s, Name: s.Name, Value: r}, nil
	case *parser.ExprStmt:
		v, err := Eval(s.Expr, globals)
		if err != nil {
			return nil, err
		}
		return &Result{Stmt: s, Value: v}, nil
	default:
		return nil, &Error{Message: "unsupported statement " + stmt.String()}
	}
}

// Run parses and executes src one statement at a time. It stops at the
// first parse or evaluation failure and returns the results gathered so
// far; definitions made before the failure stay bound.
func Run(src string, globals *Globals) ([]*Result, error) {
	toks, err := parser.Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := parser.NewParser(toks)

	var results []*Result
	for !p.Done() {
		stmt, err := p.ParseStatement()
		if err != nil {
			return results, err
		}
		res, err := Exec(stmt, globals)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
