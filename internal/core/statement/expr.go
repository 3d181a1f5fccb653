// Package statement contains the relational statement tree the host mapping
// engine hands to the translator.
//
// The tree is externally constructed and read-only: the translator walks it
// exactly once per translation and never mutates it. Node sets are closed;
// kinds that exist only to be rejected (joins, CTEs, LIKE predicates and so
// on) are still modeled so guard checks can name them in error messages.
package statement

// Expr represents an expression node.
type Expr interface {
	exprNode()
}

// ColumnRef references a column of the statement's source table.
type ColumnRef struct {
	Table  string // optional qualifier
	Column string
}

// Literal is a constant value baked into the statement.
type Literal struct {
	Value interface{}
}

// NumericLiteral is a numeric constant still in its source text form.
type NumericLiteral struct {
	Text string
}

// Parameter is a late-bound parameter placeholder.
type Parameter struct {
	Name    string
	Ordinal int // 1-based position, 0 if the parameter is named
}

// Tuple groups expressions, e.g. a composite sort key.
type Tuple struct {
	Exprs []Expr
}

// FunctionCall is a function invocation. The MongoDB dialect has no
// translation rule for it; it exists so rejection can name the function.
type FunctionCall struct {
	Name string
	Args []Expr
}

func (*ColumnRef) exprNode()      {}
func (*Literal) exprNode()        {}
func (*NumericLiteral) exprNode() {}
func (*Parameter) exprNode()      {}
func (*Tuple) exprNode()          {}
func (*FunctionCall) exprNode()   {}
