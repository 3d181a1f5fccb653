package statement

// Predicate represents a restriction node (a WHERE-clause fragment).
type Predicate interface {
	predNode()
}

// CompareOp is a relational comparison operator in source form.
type CompareOp string

const (
	// OpEq is the equality operator.
	OpEq CompareOp = "="
	// OpNe is the inequality operator.
	OpNe CompareOp = "!="
	// OpLt is the less-than operator.
	OpLt CompareOp = "<"
	// OpLte is the less-than-or-equal operator.
	OpLte CompareOp = "<="
	// OpGt is the greater-than operator.
	OpGt CompareOp = ">"
	// OpGte is the greater-than-or-equal operator.
	OpGte CompareOp = ">="
)

// Comparison compares two expressions.
type Comparison struct {
	Left  Expr
	Op    CompareOp
	Right Expr
}

// JunctionKind distinguishes conjunction from disjunction.
type JunctionKind string

const (
	// JunctionAnd combines sub-predicates with AND.
	JunctionAnd JunctionKind = "AND"
	// JunctionOr combines sub-predicates with OR.
	JunctionOr JunctionKind = "OR"
)

// Junction combines a list of sub-predicates with AND or OR.
type Junction struct {
	Kind       JunctionKind
	Predicates []Predicate
}

// Negation negates a sub-predicate.
type Negation struct {
	Predicate Predicate
}

// Grouped wraps a parenthesized sub-predicate. Grouping carries no
// semantics of its own once the tree structure is explicit.
type Grouped struct {
	Predicate Predicate
}

// BooleanExpr uses a bare expression as a condition.
type BooleanExpr struct {
	Expr    Expr
	Negated bool
}

// Like is a pattern-match predicate. Not translatable.
type Like struct {
	Expr    Expr
	Pattern Expr
	Negated bool
}

// Between is a range predicate. Not translatable.
type Between struct {
	Expr  Expr
	Lower Expr
	Upper Expr
}

// In is a membership predicate. Not translatable.
type In struct {
	Expr  Expr
	Items []Expr
}

// Exists is a subquery-existence predicate. Not translatable.
type Exists struct {
	Select *Select
}

// Fragment is an opaque self-rendering predicate. Not translatable.
type Fragment struct {
	Text string
}

func (*Comparison) predNode()  {}
func (*Junction) predNode()    {}
func (*Negation) predNode()    {}
func (*Grouped) predNode()     {}
func (*BooleanExpr) predNode() {}
func (*Like) predNode()        {}
func (*Between) predNode()     {}
func (*In) predNode()          {}
func (*Exists) predNode()      {}
func (*Fragment) predNode()    {}
