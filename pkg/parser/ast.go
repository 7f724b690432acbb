package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leaprel/pkg/rel"
	"github.com/leapstack-labs/leaprel/pkg/token"
)

// Statement is one top-level input: a relation definition or an expression.
type Statement interface {
	stmtNode()
	String() string
}

// Expr represents an expression.
type Expr interface {
	exprNode()
	String() string
	Position() Position
}

// NodeInfo provides the source position shared by all expression nodes.
type NodeInfo struct {
	Pos Position
}

// Position returns the position of the node's first token.
func (n NodeInfo) Position() Position {
	return n.Pos
}

// ---------- Statement Types ----------

// RelationDef binds Name to a literal relation in the global scope.
type RelationDef struct {
	NodeInfo
	Name    string
	Columns []string
	Rows    [][]rel.Value
}

func (*RelationDef) stmtNode() {}

func (d *RelationDef) String() string {
	rows := make([]string, len(d.Rows))
	for i, r := range d.Rows {
		vals := make([]string, len(r))
		for j, v := range r {
			vals[j] = rel.Quote(v)
		}
		rows[i] = "(" + strings.Join(vals, ", ") + ")"
	}
	return fmt.Sprintf("RelationDef{%s (%s) [%s]}", d.Name, strings.Join(d.Columns, ", "), strings.Join(rows, ", "))
}

// Relation builds the relation value described by the definition.
func (d *RelationDef) Relation() (*rel.Relation, error) {
	tuples := make([]rel.Tuple, len(d.Rows))
	for i, r := range d.Rows {
		tuples[i] = rel.NewTuple(r...)
	}
	return rel.NewRelation(d.Columns, tuples)
}

// ExprStmt is a query to evaluate.
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) stmtNode() {}

func (s *ExprStmt) String() string { return s.Expr.String() }

// ---------- Expression Types ----------

// Identifier names a relation (global scope) or a column (row scope).
type Identifier struct {
	NodeInfo
	Name string
}

func (*Identifier) exprNode() {}

func (i *Identifier) String() string { return i.Name }

// IntegerLiteral is a non-negative integer constant.
type IntegerLiteral struct {
	NodeInfo
	Value rel.Int
}

func (*IntegerLiteral) exprNode() {}

func (l *IntegerLiteral) String() string { return l.Value.String() }

// StringLiteral is a string constant.
type StringLiteral struct {
	NodeInfo
	Value rel.Str
}

func (*StringLiteral) exprNode() {}

func (l *StringLiteral) String() string { return strconv.Quote(string(l.Value)) }

// UnaryOp is a prefix operator.
type UnaryOp int

// Unary operators.
const (
	OpNot UnaryOp = iota
	OpIsNull
	OpSelect
	OpProject
)

func (o UnaryOp) String() string {
	switch o {
	case OpNot:
		return "!"
	case OpIsNull:
		return "is_null"
	case OpSelect:
		return "select"
	case OpProject:
		return "project"
	default:
		return fmt.Sprintf("UnaryOp(%d)", int(o))
	}
}

// UnaryExpr applies a prefix operator. Condition is set for select and
// Columns for project.
type UnaryExpr struct {
	NodeInfo
	Op        UnaryOp
	Operand   Expr
	Condition Expr
	Columns   []string
}

func (*UnaryExpr) exprNode() {}

func (u *UnaryExpr) String() string {
	switch u.Op {
	case OpSelect:
		return fmt.Sprintf("UnaryExpression{select %s %s}", u.Condition, u.Operand)
	case OpProject:
		return fmt.Sprintf("UnaryExpression{project %s %s}", strings.Join(u.Columns, ", "), u.Operand)
	default:
		return fmt.Sprintf("UnaryExpression{%s %s}", u.Op, u.Operand)
	}
}

// BinaryOp is an infix operator.
type BinaryOp int

// Binary operators.
const (
	OpLT BinaryOp = iota
	OpGT
	OpLE
	OpGE
	OpEQ
	OpNE
	OpAnd
	OpOr
	OpUnion
	OpIntersect
	OpMinus
	OpJoin
	OpThetaJoin
	OpLeftJoin
	OpRightJoin
	OpFullJoin
)

// Category groups binary operators by the operand kinds they accept.
type Category int

// Operator categories.
const (
	CategoryComparison Category = iota // Integer or String
	CategoryLogical                    // Boolean
	CategoryRelational                 // Relation
)

var binaryOpTokens = map[TokenType]BinaryOp{
	token.LT:         OpLT,
	token.GT:         OpGT,
	token.LE:         OpLE,
	token.GE:         OpGE,
	token.EQ:         OpEQ,
	token.NE:         OpNE,
	token.AND:        OpAnd,
	token.OR:         OpOr,
	token.UNION:      OpUnion,
	token.INTERSECT:  OpIntersect,
	token.MINUS:      OpMinus,
	token.JOIN:       OpJoin,
	token.THETA_JOIN: OpThetaJoin,
	token.LEFT_JOIN:  OpLeftJoin,
	token.RIGHT_JOIN: OpRightJoin,
	token.FULL_JOIN:  OpFullJoin,
}

var binaryOpNames = [...]string{
	OpLT:        "<",
	OpGT:        ">",
	OpLE:        "<=",
	OpGE:        ">=",
	OpEQ:        "==",
	OpNE:        "!=",
	OpAnd:       "&&",
	OpOr:        "||",
	OpUnion:     "union",
	OpIntersect: "intersect",
	OpMinus:     "minus",
	OpJoin:      "join",
	OpThetaJoin: "theta_join",
	OpLeftJoin:  "left_join",
	OpRightJoin: "right_join",
	OpFullJoin:  "full_join",
}

func (o BinaryOp) String() string {
	if int(o) >= 0 && int(o) < len(binaryOpNames) {
		return binaryOpNames[o]
	}
	return fmt.Sprintf("BinaryOp(%d)", int(o))
}

// Category returns the operator's operand category.
func (o BinaryOp) Category() Category {
	switch {
	case o <= OpNE:
		return CategoryComparison
	case o <= OpOr:
		return CategoryLogical
	default:
		return CategoryRelational
	}
}

// HasCondition reports whether the operator carries a join condition.
func (o BinaryOp) HasCondition() bool {
	return o >= OpThetaJoin
}

// Outer returns the outer-join flags of a theta-family operator.
func (o BinaryOp) Outer() (left, right bool) {
	switch o {
	case OpLeftJoin:
		return true, false
	case OpRightJoin:
		return false, true
	case OpFullJoin:
		return true, true
	default:
		return false, false
	}
}

// BinaryExpr applies an infix operator. Condition is set for the theta-join
// family.
type BinaryExpr struct {
	NodeInfo
	Op        BinaryOp
	Left      Expr
	Right     Expr
	Condition Expr
}

func (*BinaryExpr) exprNode() {}

func (b *BinaryExpr) String() string {
	if b.Condition != nil {
		return fmt.Sprintf("BinaryExpression{%s %s %s %s}", b.Left, b.Op, b.Condition, b.Right)
	}
	return fmt.Sprintf("BinaryExpression{%s %s %s}", b.Left, b.Op, b.Right)
}
