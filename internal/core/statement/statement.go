package statement

// TableRef names a source table (collection).
type TableRef struct {
	Name string
}

// CTE is a common table expression attached to a statement. Not
// translatable.
type CTE struct {
	Name   string
	Select *Select
}

// Join is a join clause attached to a statement. Not translatable.
type Join struct {
	Table TableRef
	On    Predicate
}

// SelectColumn is one entry of a select list. Virtual columns (discriminator
// or formula columns synthesized by the mapping engine) are skipped during
// projection.
type SelectColumn struct {
	Expr    Expr
	Virtual bool
}

// NullOrdering is an explicit null-placement directive on a sort key.
type NullOrdering string

const (
	// NullOrderingDefault leaves null placement to the database.
	NullOrderingDefault NullOrdering = ""
	// NullOrderingFirst sorts nulls first. Not translatable.
	NullOrderingFirst NullOrdering = "first"
	// NullOrderingLast sorts nulls last. Not translatable.
	NullOrderingLast NullOrdering = "last"
)

// Sorting is one ORDER BY entry. A Tuple key expands into one sort field
// per tuple element, all sharing the declared direction.
type Sorting struct {
	Key             Expr
	Descending      bool
	CaseInsensitive bool
	NullOrdering    NullOrdering
}

// FetchClauseType describes how a FETCH clause limits the result.
type FetchClauseType string

const (
	// FetchRowsOnly is plain row-count limiting, the only supported type.
	FetchRowsOnly FetchClauseType = "rows_only"
	// FetchRowsWithTies keeps peer rows of the last fetched row.
	FetchRowsWithTies FetchClauseType = "rows_with_ties"
	// FetchPercent limits by percentage of the result.
	FetchPercent FetchClauseType = "percent"
	// FetchPercentWithTies combines percentage limiting with ties.
	FetchPercentWithTies FetchClauseType = "percent_with_ties"
)

// Select is a single select statement.
type Select struct {
	From     []TableRef
	Columns  []SelectColumn
	Where    Predicate // nil when absent
	Sortings []Sorting

	// Offset and Fetch are the literal offset/fetch expressions baked into
	// the statement, nil when absent. Limits supplied through QueryOptions
	// take a separate path; see the query translator.
	Offset      Expr
	Fetch       Expr
	FetchClause FetchClauseType // meaningful only when Fetch is set

	Distinct bool
	GroupBy  []Expr
	Having   Predicate
	CTEs     []CTE
	Joins    []Join
}

// Assignment sets one column in an update statement.
type Assignment struct {
	Column string
	Value  Expr
}

// Insert is a general (multi-row) insert statement.
type Insert struct {
	Table     TableRef
	Columns   []string
	Rows      [][]Expr
	Returning []string
	CTEs      []CTE
}

// Update is a general update statement.
type Update struct {
	Table       TableRef
	Assignments []Assignment
	Where       Predicate // nil when absent
	Returning   []string
	CTEs        []CTE
	Joins       []Join
}

// Delete is a general delete statement.
type Delete struct {
	Table     TableRef
	Where     Predicate // nil when absent
	Returning []string
	CTEs      []CTE
	Joins     []Join
}

// ColumnBinding binds one column of a table mutation to a value expression.
// A nil Value means the column appears without a value, which the dialect
// rejects.
type ColumnBinding struct {
	Column string
	Value  Expr
}

// KeySpec identifies the row a single-key mutation targets.
type KeySpec struct {
	Columns []string
	Values  []Expr
}

// TableInsert is the single-entity persistence form of insert.
type TableInsert struct {
	Table    string
	Bindings []ColumnBinding
}

// TableUpdate is the single-entity persistence form of update. LockBindings
// carry optimistic-lock (version/timestamp) comparisons; the dialect rejects
// them.
type TableUpdate struct {
	Table        string
	Key          KeySpec
	Bindings     []ColumnBinding
	LockBindings []ColumnBinding
}

// TableDelete is the single-entity persistence form of delete.
type TableDelete struct {
	Table string
	Key   KeySpec
}
