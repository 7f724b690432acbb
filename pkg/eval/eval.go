// Package eval is the tree-walking evaluator for parsed queries.
//
// Evaluation is a pure function of the expression and the environment it is
// given. The only mutation is Exec binding a relation definition into
// Globals.
package eval

import (
	"cmp"
	"fmt"

	"github.com/leapstack-labs/leaprel/pkg/parser"
	"github.com/leapstack-labs/leaprel/pkg/rel"
)

// Eval evaluates expr against env.
func Eval(expr parser.Expr, env Environment) (rel.Value, error) {
	switch n := expr.(type) {
	case *parser.Identifier:
		return env.Get(n.Name)
	case *parser.IntegerLiteral:
		return n.Value, nil
	case *parser.StringLiteral:
		return n.Value, nil
	case *parser.UnaryExpr:
		return evalUnary(n, env)
	case *parser.BinaryExpr:
		return evalBinary(n, env)
	default:
		return nil, fmt.Errorf("eval: unsupported expression %T", expr)
	}
}

func evalUnary(n *parser.UnaryExpr, env Environment) (rel.Value, error) {
	v, err := Eval(n.Operand, env)
	if err != nil {
		return nil, err
	}
	op := n.Op.String()

	switch n.Op {
	case parser.OpNot:
		b, ok := v.(rel.Bool)
		if !ok {
			return nil, operatorTypeError(op, v.Kind())
		}
		return !b, nil
	case parser.OpIsNull:
		return rel.Bool(rel.IsNull(v)), nil
	}

	r, ok := v.(*rel.Relation)
	if !ok {
		return nil, operatorTypeError(op, v.Kind())
	}
	var out *rel.Relation
	switch n.Op {
	case parser.OpSelect:
		out, err = rel.Select(r, condition(op, n.Condition))
	case parser.OpProject:
		out, err = rel.Project(r, n.Columns)
	default:
		return nil, fmt.Errorf("eval: unsupported unary operator %s", n.Op)
	}
	if err != nil {
		return nil, wrapRel(op, err)
	}
	return out, nil
}

func evalBinary(n *parser.BinaryExpr, env Environment) (rel.Value, error) {
	left, err := Eval(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := Eval(n.Right, env)
	if err != nil {
		return nil, err
	}

	op := n.Op.String()
	if left.Kind() != right.Kind() {
		return nil, &Error{
			Op:      op,
			Kind:    ErrTypeMismatch,
			Message: fmt.Sprintf("operands differ in type: %s and %s", left.Kind(), right.Kind()),
		}
	}
	if !accepts(n.Op.Category(), left.Kind()) {
		return nil, operatorTypeError(op, left.Kind())
	}

	switch n.Op.Category() {
	case parser.CategoryComparison:
		return compare(n.Op, left, right), nil
	case parser.CategoryLogical:
		l, r := bool(left.(rel.Bool)), bool(right.(rel.Bool))
		if n.Op == parser.OpAnd {
			return rel.Bool(l && r), nil
		}
		return rel.Bool(l || r), nil
	default:
		out, err := relational(n, left.(*rel.Relation), right.(*rel.Relation))
		if err != nil {
			return nil, wrapRel(op, err)
		}
		return out, nil
	}
}

func relational(n *parser.BinaryExpr, a, b *rel.Relation) (*rel.Relation, error) {
	switch n.Op {
	case parser.OpUnion:
		return rel.Union(a, b)
	case parser.OpIntersect:
		return rel.Intersect(a, b)
	case parser.OpMinus:
		return rel.Minus(a, b)
	case parser.OpJoin:
		return rel.NaturalJoin(a, b)
	case parser.OpThetaJoin, parser.OpLeftJoin, parser.OpRightJoin, parser.OpFullJoin:
		leftOuter, rightOuter := n.Op.Outer()
		return rel.ThetaJoin(a, b, condition(n.Op.String(), n.Condition), leftOuter, rightOuter)
	default:
		return nil, fmt.Errorf("eval: unsupported binary operator %s", n.Op)
	}
}

// accepts reports whether operands of kind k are valid for category c.
func accepts(c parser.Category, k rel.Kind) bool {
	switch c {
	case parser.CategoryComparison:
		return k == rel.KindInteger || k == rel.KindString
	case parser.CategoryLogical:
		return k == rel.KindBoolean
	default:
		return k == rel.KindRelation
	}
}

// compare applies a comparison operator to two operands of the same
// scalar kind.
func compare(op parser.BinaryOp, left, right rel.Value) rel.Bool {
	var c int
	switch l := left.(type) {
	case rel.Int:
		c = cmp.Compare(l, right.(rel.Int))
	case rel.Str:
		c = cmp.Compare(l, right.(rel.Str))
	}
	switch op {
	case parser.OpLT:
		return c < 0
	case parser.OpGT:
		return c > 0
	case parser.OpLE:
		return c <= 0
	case parser.OpGE:
		return c >= 0
	case parser.OpEQ:
		return c == 0
	default:
		return c != 0
	}
}

// condition turns a condition expression into a predicate evaluated in
// each row's scope.
func condition(op string, cond parser.Expr) rel.Predicate {
	return func(row rel.Row) (bool, error) {
		v, err := Eval(cond, NewRowScope(row))
		if err != nil {
			return false, err
		}
		b, ok := v.(rel.Bool)
		if !ok {
			return false, &Error{
				Op:      op,
				Kind:    ErrOperatorType,
				Message: fmt.Sprintf("condition must be Boolean, got %s", v.Kind()),
			}
		}
		return bool(b), nil
	}
}

func operatorTypeError(op string, k rel.Kind) *Error {
	return &Error{
		Op:      op,
		Kind:    ErrOperatorType,
		Message: fmt.Sprintf("operator %s does not accept %s operands", op, k),
	}
}
