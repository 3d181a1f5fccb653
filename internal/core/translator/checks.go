package translator

import (
	"strings"

	"github.com/mongolift/mongolift/internal/core/feature"
	"github.com/mongolift/mongolift/internal/core/statement"
)

// isFieldPath reports whether the expression resolves to a field path.
func isFieldPath(e statement.Expr) bool {
	_, ok := e.(*statement.ColumnRef)
	return ok
}

// isValue reports whether the expression is a literal, an unparsed numeric
// literal or a parameter placeholder.
func isValue(e statement.Expr) bool {
	switch e.(type) {
	case *statement.Literal, *statement.NumericLiteral, *statement.Parameter:
		return true
	}
	return false
}

// comparesFieldPathWithValue reports whether exactly one side of the
// comparison is a field path and the other a value expression. Any other
// shape (field-vs-field, value-vs-value, function calls) has no translation
// rule.
func comparesFieldPathWithValue(c *statement.Comparison) bool {
	if isFieldPath(c.Left) && isValue(c.Right) {
		return true
	}
	return isFieldPath(c.Right) && isValue(c.Left)
}

// checkQueryOptions rejects every recognized option except the limit. The
// checks run before any translation work so unsupported executions fail
// early and cheaply.
func checkQueryOptions(opts *statement.QueryOptions) error {
	if opts == nil {
		return nil
	}
	switch {
	case opts.Timeout != nil:
		return feature.Errorf("query timeout", "query timeouts are not supported by the MongoDB dialect")
	case opts.FlushMode != statement.FlushDefault:
		return feature.Errorf("flush mode", "flush mode %q is not supported by the MongoDB dialect", opts.FlushMode)
	case opts.ReadOnly != nil:
		return feature.Errorf("read-only hint", "per-query read-only hints are not supported by the MongoDB dialect")
	case opts.FetchGraph != "":
		return feature.Errorf("fetch graph", "applied fetch graph %q is not supported by the MongoDB dialect", opts.FetchGraph)
	case opts.TupleTransformer != nil:
		return feature.Errorf("tuple transformer", "tuple transformers are not supported by the MongoDB dialect")
	case opts.ResultListTransformer != nil:
		return feature.Errorf("result list transformer", "result list transformers are not supported by the MongoDB dialect")
	case opts.CacheResults != nil:
		return feature.Errorf("result caching", "per-query result caching is not supported by the MongoDB dialect")
	case len(opts.EnabledFetchProfiles) > 0 || len(opts.DisabledFetchProfiles) > 0:
		return feature.Errorf("fetch profiles", "fetch profiles are not supported by the MongoDB dialect")
	case opts.Lock != statement.LockNone:
		return feature.Errorf("lock modes", "lock mode %q is not supported by the MongoDB dialect", opts.Lock)
	case len(opts.Hints) > 0:
		return feature.Errorf("database hints", "database hints are not supported by the MongoDB dialect")
	case opts.FetchSize != nil:
		return feature.Errorf("fetch size", "fetch size is not supported by the MongoDB dialect")
	}
	return nil
}

// checkBindings rejects null-valued external parameter bindings: the
// rendered command cannot distinguish a parameter bound to null from a
// parameter that was never deployed.
func checkBindings(bindings statement.Bindings) error {
	for name, v := range bindings {
		if v == nil {
			return feature.Errorf("null parameter binding",
				"parameter %q is bound to null, which the MongoDB dialect cannot represent", name)
		}
	}
	return nil
}

// checkSelectShape rejects select clauses with no translation rule before
// any pipeline work begins.
func checkSelectShape(sel *statement.Select) error {
	switch {
	case len(sel.CTEs) > 0:
		return feature.Errorf("common table expressions", "common table expressions are not supported by the MongoDB dialect")
	case len(sel.Joins) > 0:
		return feature.Errorf("joins", "joins are not supported by the MongoDB dialect")
	case len(sel.GroupBy) > 0:
		return feature.Errorf("group by", "group-by clauses are not supported by the MongoDB dialect")
	case sel.Having != nil:
		return feature.Errorf("having", "having clauses are not supported by the MongoDB dialect")
	case sel.Distinct:
		return feature.Errorf("distinct", "distinct selections are not supported by the MongoDB dialect")
	case len(sel.From) == 0:
		return feature.Errorf("table reference", "the select statement references no table")
	case len(sel.From) > 1:
		return feature.Errorf("multiple tables", "selecting from more than one table is not supported by the MongoDB dialect")
	}
	return nil
}

// checkSortings rejects sort-key options the database cannot honor.
func checkSortings(sortings []statement.Sorting) error {
	for _, s := range sortings {
		if s.CaseInsensitive {
			return feature.Errorf("case-insensitive sort", "case-insensitive sort keys are not supported by the MongoDB dialect")
		}
		if s.NullOrdering != statement.NullOrderingDefault {
			return feature.Errorf("null ordering",
				"explicit null ordering %q differs from the database default and is not supported", s.NullOrdering)
		}
	}
	return nil
}

// checkLockBindings rejects optimistic-lock column bindings. The check runs
// even when the update carries no field bindings: a lock column that cannot
// be verified must never be reported as a successful no-op.
func checkLockBindings(lockBindings []statement.ColumnBinding) error {
	if len(lockBindings) == 0 {
		return nil
	}
	cols := make([]string, len(lockBindings))
	for i, b := range lockBindings {
		cols[i] = b.Column
	}
	return feature.Errorf("optimistic locking",
		"optimistic-lock columns (%s) require an atomic multi-field check the MongoDB dialect does not provide",
		strings.Join(cols, ", "))
}

// checkMutationShape rejects statement-level mutation clauses with no
// translation rule.
func checkMutationShape(returning []string, ctes []statement.CTE, joins []statement.Join) error {
	switch {
	case len(returning) > 0:
		return feature.Errorf("returning columns", "returning clauses are not supported by the MongoDB dialect")
	case len(ctes) > 0:
		return feature.Errorf("common table expressions", "common table expressions are not supported by the MongoDB dialect")
	case len(joins) > 0:
		return feature.Errorf("joins", "joins are not supported by the MongoDB dialect")
	}
	return nil
}
