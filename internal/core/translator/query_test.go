package translator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mongolift/mongolift/internal/core/feature"
	"github.com/mongolift/mongolift/internal/core/statement"
)

func col(name string) *statement.ColumnRef {
	return &statement.ColumnRef{Column: name}
}

func lit(v interface{}) *statement.Literal {
	return &statement.Literal{Value: v}
}

func selectColumns(names ...string) []statement.SelectColumn {
	cols := make([]statement.SelectColumn, len(names))
	for i, n := range names {
		cols[i] = statement.SelectColumn{Expr: col(n)}
	}
	return cols
}

func booksSelect() *statement.Select {
	return &statement.Select{
		From:    []statement.TableRef{{Name: "books"}},
		Columns: selectColumns("title", "author"),
	}
}

// pipelineOf unwraps the pipeline array from a rendered aggregate command.
func pipelineOf(t *testing.T, wire bson.D) bson.A {
	t.Helper()
	require.Equal(t, "aggregate", wire[0].Key)
	pipeline, ok := wire[1].Value.(bson.A)
	require.True(t, ok)
	return pipeline
}

func stageKeys(t *testing.T, pipeline bson.A) []string {
	t.Helper()
	keys := make([]string, len(pipeline))
	for i, s := range pipeline {
		doc, ok := s.(bson.D)
		require.True(t, ok)
		require.Len(t, doc, 1)
		keys[i] = doc[0].Key
	}
	return keys
}

func TestSelectWithFilterAndSort(t *testing.T) {
	sel := booksSelect()
	sel.Where = &statement.Junction{
		Kind: statement.JunctionAnd,
		Predicates: []statement.Predicate{
			&statement.Comparison{Left: col("author"), Op: statement.OpEq, Right: param("author")},
			&statement.Comparison{Left: col("year"), Op: statement.OpGt, Right: lit(1950)},
		},
	}
	sel.Sortings = []statement.Sorting{{Key: col("title")}}

	op, err := TranslateSelect(sel, nil, nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"aggregate": "books",
		"pipeline": [
			{"$match": {"$and": [
				{"author": {"$eq": {"$undefined": true}}},
				{"year": {"$gt": 1950}}
			]}},
			{"$sort": {"title": 1}},
			{"$project": {"title": 1, "author": 1}}
		],
		"cursor": {}
	}`, op.CommandJSON)

	require.Len(t, op.Binders, 1)
	assert.Equal(t, "author", op.Binders[0].Key())
	assert.Equal(t, -1, op.OffsetBinder)
	assert.Equal(t, -1, op.LimitBinder)
	assert.Equal(t, []string{"books"}, op.Collections)
}

func TestPipelineStageOrder(t *testing.T) {
	tests := []struct {
		name  string
		shape func(*statement.Select)
		want  []string
	}{
		{
			name:  "projection only",
			shape: func(*statement.Select) {},
			want:  []string{"$project"},
		},
		{
			name: "match and projection",
			shape: func(sel *statement.Select) {
				sel.Where = &statement.Comparison{Left: col("year"), Op: statement.OpEq, Right: lit(1965)}
			},
			want: []string{"$match", "$project"},
		},
		{
			name: "sort before projection",
			shape: func(sel *statement.Select) {
				sel.Sortings = []statement.Sorting{{Key: col("title")}}
			},
			want: []string{"$sort", "$project"},
		},
		{
			name: "full pipeline",
			shape: func(sel *statement.Select) {
				sel.Where = &statement.Comparison{Left: col("year"), Op: statement.OpEq, Right: lit(1965)}
				sel.Sortings = []statement.Sorting{{Key: col("title")}}
				sel.Offset = &statement.NumericLiteral{Text: "5"}
				sel.Fetch = &statement.NumericLiteral{Text: "10"}
				sel.FetchClause = statement.FetchRowsOnly
			},
			want: []string{"$match", "$sort", "$skip", "$limit", "$project"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := booksSelect()
			tt.shape(sel)
			op, err := TranslateSelect(sel, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stageKeys(t, pipelineOf(t, op.Command.Wire())))
		})
	}
}

func TestComparisonOperators(t *testing.T) {
	tests := []struct {
		op   statement.CompareOp
		want string
	}{
		{statement.OpEq, "$eq"},
		{statement.OpNe, "$ne"},
		{statement.OpLt, "$lt"},
		{statement.OpLte, "$lte"},
		{statement.OpGt, "$gt"},
		{statement.OpGte, "$gte"},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			sel := booksSelect()
			sel.Where = &statement.Comparison{Left: col("year"), Op: tt.op, Right: lit(1965)}
			op, err := TranslateSelect(sel, nil, nil)
			require.NoError(t, err)

			match := pipelineOf(t, op.Command.Wire())[0].(bson.D)
			want := bson.D{{Key: "$match", Value: bson.D{
				{Key: "year", Value: bson.D{{Key: tt.want, Value: int64(1965)}}},
			}}}
			assert.Equal(t, want, match)
		})
	}
}

func TestComparisonWithFieldOnRightInverts(t *testing.T) {
	tests := []struct {
		op   statement.CompareOp
		want string
	}{
		{statement.OpEq, "$eq"},
		{statement.OpNe, "$ne"},
		{statement.OpLt, "$gt"},
		{statement.OpLte, "$gte"},
		{statement.OpGt, "$lt"},
		{statement.OpGte, "$lte"},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			sel := booksSelect()
			// "1965 OP year" normalizes to "year INV(OP) 1965".
			sel.Where = &statement.Comparison{Left: lit(1965), Op: tt.op, Right: col("year")}
			op, err := TranslateSelect(sel, nil, nil)
			require.NoError(t, err)

			match := pipelineOf(t, op.Command.Wire())[0].(bson.D)
			want := bson.D{{Key: "$match", Value: bson.D{
				{Key: "year", Value: bson.D{{Key: tt.want, Value: int64(1965)}}},
			}}}
			assert.Equal(t, want, match)
		})
	}
}

func TestNegationRendersAsSingleElementNor(t *testing.T) {
	sel := booksSelect()
	sel.Where = &statement.Negation{
		Predicate: &statement.Comparison{Left: col("year"), Op: statement.OpEq, Right: lit(1965)},
	}
	op, err := TranslateSelect(sel, nil, nil)
	require.NoError(t, err)

	match := pipelineOf(t, op.Command.Wire())[0].(bson.D)
	want := bson.D{{Key: "$match", Value: bson.D{
		{Key: "$nor", Value: bson.A{
			bson.D{{Key: "year", Value: bson.D{{Key: "$eq", Value: int64(1965)}}}},
		}},
	}}}
	assert.Equal(t, want, match)
}

func TestDoubleNegationNestsNor(t *testing.T) {
	sel := booksSelect()
	sel.Where = &statement.Negation{
		Predicate: &statement.Negation{
			Predicate: &statement.Comparison{Left: col("year"), Op: statement.OpEq, Right: lit(1965)},
		},
	}
	op, err := TranslateSelect(sel, nil, nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"aggregate": "books",
		"pipeline": [
			{"$match": {"$nor": [{"$nor": [{"year": {"$eq": 1965}}]}]}},
			{"$project": {"title": 1, "author": 1}}
		],
		"cursor": {}
	}`, op.CommandJSON)
}

func TestGroupedPredicateIsTransparent(t *testing.T) {
	sel := booksSelect()
	sel.Where = &statement.Grouped{
		Predicate: &statement.Comparison{Left: col("year"), Op: statement.OpEq, Right: lit(1965)},
	}
	op, err := TranslateSelect(sel, nil, nil)
	require.NoError(t, err)

	match := pipelineOf(t, op.Command.Wire())[0].(bson.D)
	want := bson.D{{Key: "$match", Value: bson.D{
		{Key: "year", Value: bson.D{{Key: "$eq", Value: int64(1965)}}},
	}}}
	assert.Equal(t, want, match)
}

func TestBooleanExpressionCondition(t *testing.T) {
	tests := []struct {
		name    string
		negated bool
		want    bool
	}{
		{"plain", false, true},
		{"negated", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := booksSelect()
			sel.Where = &statement.BooleanExpr{Expr: col("in_print"), Negated: tt.negated}
			op, err := TranslateSelect(sel, nil, nil)
			require.NoError(t, err)

			match := pipelineOf(t, op.Command.Wire())[0].(bson.D)
			want := bson.D{{Key: "$match", Value: bson.D{
				{Key: "in_print", Value: bson.D{{Key: "$eq", Value: tt.want}}},
			}}}
			assert.Equal(t, want, match)
		})
	}
}

func TestOrJunction(t *testing.T) {
	sel := booksSelect()
	sel.Where = &statement.Junction{
		Kind: statement.JunctionOr,
		Predicates: []statement.Predicate{
			&statement.Comparison{Left: col("year"), Op: statement.OpLt, Right: lit(1900)},
			&statement.Comparison{Left: col("year"), Op: statement.OpGt, Right: lit(2000)},
		},
	}
	op, err := TranslateSelect(sel, nil, nil)
	require.NoError(t, err)

	match := pipelineOf(t, op.Command.Wire())[0].(bson.D)
	want := bson.D{{Key: "$match", Value: bson.D{
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "year", Value: bson.D{{Key: "$lt", Value: int64(1900)}}}},
			bson.D{{Key: "year", Value: bson.D{{Key: "$gt", Value: int64(2000)}}}},
		}},
	}}}
	assert.Equal(t, want, match)
}

func TestTupleSortKeyExpands(t *testing.T) {
	sel := booksSelect()
	sel.Sortings = []statement.Sorting{
		{Key: &statement.Tuple{Exprs: []statement.Expr{col("author"), col("title")}}, Descending: true},
		{Key: col("year")},
	}
	op, err := TranslateSelect(sel, nil, nil)
	require.NoError(t, err)

	sort := pipelineOf(t, op.Command.Wire())[0].(bson.D)
	want := bson.D{{Key: "$sort", Value: bson.D{
		{Key: "author", Value: int32(-1)},
		{Key: "title", Value: int32(-1)},
		{Key: "year", Value: int32(1)},
	}}}
	assert.Equal(t, want, sort)
}

func TestVirtualColumnsSkippedInProjection(t *testing.T) {
	sel := &statement.Select{
		From: []statement.TableRef{{Name: "books"}},
		Columns: []statement.SelectColumn{
			{Expr: col("title")},
			{Expr: col("dtype"), Virtual: true},
			{Expr: col("author")},
		},
	}
	op, err := TranslateSelect(sel, nil, nil)
	require.NoError(t, err)

	project := pipelineOf(t, op.Command.Wire())[0].(bson.D)
	want := bson.D{{Key: "$project", Value: bson.D{
		{Key: "title", Value: int32(1)},
		{Key: "author", Value: int32(1)},
	}}}
	assert.Equal(t, want, project)
}

func TestOptionsLimitSynthesizesMarkers(t *testing.T) {
	offset, maxRows := 20, 10
	opts := &statement.QueryOptions{Limit: statement.Limit{Offset: &offset, MaxRows: &maxRows}}

	sel := booksSelect()
	sel.Where = &statement.Comparison{Left: col("author"), Op: statement.OpEq, Right: param("author")}

	op, err := TranslateSelect(sel, nil, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"$match", "$skip", "$limit", "$project"},
		stageKeys(t, pipelineOf(t, op.Command.Wire())))

	// Binders: author parameter, then offset, then limit.
	require.Len(t, op.Binders, 3)
	assert.Equal(t, BindParameter, op.Binders[0].Source)
	assert.Equal(t, 1, op.OffsetBinder)
	assert.Equal(t, 2, op.LimitBinder)
	assert.Equal(t, BindOptionsOffset, op.Binders[op.OffsetBinder].Source)
	assert.Equal(t, BindOptionsLimit, op.Binders[op.LimitBinder].Source)

	values, err := op.BindValues(statement.Bindings{"author": "Herbert"}, opts)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Herbert", int64(20), int64(10)}, values)

	// The same translation re-executes with different paging.
	offset2, maxRows2 := 40, 5
	values, err = op.BindValues(statement.Bindings{"author": "Simmons"},
		&statement.QueryOptions{Limit: statement.Limit{Offset: &offset2, MaxRows: &maxRows2}})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Simmons", int64(40), int64(5)}, values)
}

func TestOptionsLimitMaxRowsOnly(t *testing.T) {
	maxRows := 10
	opts := &statement.QueryOptions{Limit: statement.Limit{MaxRows: &maxRows}}

	op, err := TranslateSelect(booksSelect(), nil, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"$limit", "$project"},
		stageKeys(t, pipelineOf(t, op.Command.Wire())))
	assert.Equal(t, -1, op.OffsetBinder)
	assert.Equal(t, 0, op.LimitBinder)
}

func TestLiteralOffsetAndFetch(t *testing.T) {
	sel := booksSelect()
	sel.Offset = lit(5)
	sel.Fetch = lit(10)
	sel.FetchClause = statement.FetchRowsOnly

	op, err := TranslateSelect(sel, nil, nil)
	require.NoError(t, err)

	pipeline := pipelineOf(t, op.Command.Wire())
	assert.Equal(t, bson.D{{Key: "$skip", Value: int64(5)}}, pipeline[0])
	assert.Equal(t, bson.D{{Key: "$limit", Value: int64(10)}}, pipeline[1])
	assert.Empty(t, op.Binders)
}

func TestFetchWithTiesRejected(t *testing.T) {
	sel := booksSelect()
	sel.Fetch = lit(10)
	sel.FetchClause = statement.FetchRowsWithTies

	_, err := TranslateSelect(sel, nil, nil)
	require.Error(t, err)
	assert.True(t, feature.IsNotSupported(err))
}

func TestFetchClauseValidatedWhenOptionsLimitWins(t *testing.T) {
	// An options-sourced limit takes over paging, but an untranslatable
	// fetch clause baked into the statement must still fail loudly.
	maxRows := 10
	opts := &statement.QueryOptions{Limit: statement.Limit{MaxRows: &maxRows}}

	sel := booksSelect()
	sel.Fetch = lit(10)
	sel.FetchClause = statement.FetchPercent

	_, err := TranslateSelect(sel, nil, opts)
	require.Error(t, err)
	assert.True(t, feature.IsNotSupported(err))
}

func TestSelectShapeRejections(t *testing.T) {
	tests := []struct {
		name  string
		shape func(*statement.Select)
	}{
		{"cte", func(sel *statement.Select) {
			sel.CTEs = []statement.CTE{{Name: "recent"}}
		}},
		{"join", func(sel *statement.Select) {
			sel.Joins = []statement.Join{{Table: statement.TableRef{Name: "authors"}}}
		}},
		{"group by", func(sel *statement.Select) {
			sel.GroupBy = []statement.Expr{col("author")}
		}},
		{"having", func(sel *statement.Select) {
			sel.Having = &statement.Comparison{Left: col("year"), Op: statement.OpGt, Right: lit(1950)}
		}},
		{"distinct", func(sel *statement.Select) {
			sel.Distinct = true
		}},
		{"no table", func(sel *statement.Select) {
			sel.From = nil
		}},
		{"multiple tables", func(sel *statement.Select) {
			sel.From = append(sel.From, statement.TableRef{Name: "authors"})
		}},
		{"case-insensitive sort", func(sel *statement.Select) {
			sel.Sortings = []statement.Sorting{{Key: col("title"), CaseInsensitive: true}}
		}},
		{"null ordering", func(sel *statement.Select) {
			sel.Sortings = []statement.Sorting{{Key: col("title"), NullOrdering: statement.NullOrderingFirst}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := booksSelect()
			tt.shape(sel)
			_, err := TranslateSelect(sel, nil, nil)
			require.Error(t, err)
			assert.True(t, feature.IsNotSupported(err))
		})
	}
}

func TestUnsupportedPredicatesFailClosed(t *testing.T) {
	tests := []struct {
		name string
		pred statement.Predicate
	}{
		{"like", &statement.Like{Expr: col("title"), Pattern: lit("Dune%")}},
		{"between", &statement.Between{Expr: col("year"), Lower: lit(1950), Upper: lit(1970)}},
		{"in", &statement.In{Expr: col("year"), Items: []statement.Expr{lit(1965)}}},
		{"exists", &statement.Exists{Select: booksSelect()}},
		{"fragment", &statement.Fragment{Text: "year % 2 = 0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := booksSelect()
			sel.Where = tt.pred
			_, err := TranslateSelect(sel, nil, nil)
			require.Error(t, err)
			assert.True(t, feature.IsNotSupported(err))
		})
	}
}

func TestComparisonShapeRejections(t *testing.T) {
	tests := []struct {
		name string
		pred statement.Predicate
	}{
		{"field vs field", &statement.Comparison{Left: col("a"), Op: statement.OpEq, Right: col("b")}},
		{"value vs value", &statement.Comparison{Left: lit(1), Op: statement.OpEq, Right: lit(2)}},
		{"function call", &statement.Comparison{
			Left:  &statement.FunctionCall{Name: "lower", Args: []statement.Expr{col("title")}},
			Op:    statement.OpEq,
			Right: lit("dune"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := booksSelect()
			sel.Where = tt.pred
			_, err := TranslateSelect(sel, nil, nil)
			require.Error(t, err)
			assert.True(t, feature.IsNotSupported(err))
		})
	}
}

func TestUnsupportedQueryOptions(t *testing.T) {
	timeout := 5 * time.Second
	readOnly := true
	cache := true
	fetchSize := 100

	tests := []struct {
		name string
		opts *statement.QueryOptions
	}{
		{"timeout", &statement.QueryOptions{Timeout: &timeout}},
		{"flush mode", &statement.QueryOptions{FlushMode: statement.FlushCommit}},
		{"read-only", &statement.QueryOptions{ReadOnly: &readOnly}},
		{"fetch graph", &statement.QueryOptions{FetchGraph: "book.authors"}},
		{"tuple transformer", &statement.QueryOptions{TupleTransformer: struct{}{}}},
		{"result list transformer", &statement.QueryOptions{ResultListTransformer: struct{}{}}},
		{"result caching", &statement.QueryOptions{CacheResults: &cache}},
		{"fetch profiles", &statement.QueryOptions{EnabledFetchProfiles: []string{"deep"}}},
		{"lock mode", &statement.QueryOptions{Lock: statement.LockPessimisticWrite}},
		{"hints", &statement.QueryOptions{Hints: []string{"idx_year"}}},
		{"fetch size", &statement.QueryOptions{FetchSize: &fetchSize}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TranslateSelect(booksSelect(), nil, tt.opts)
			require.Error(t, err)
			assert.True(t, feature.IsNotSupported(err))
		})
	}
}

func TestPositionalParameterBinding(t *testing.T) {
	sel := booksSelect()
	sel.Where = &statement.Comparison{
		Left:  col("year"),
		Op:    statement.OpEq,
		Right: &statement.Parameter{Ordinal: 1},
	}
	op, err := TranslateSelect(sel, nil, nil)
	require.NoError(t, err)

	require.Len(t, op.Binders, 1)
	assert.Equal(t, "1", op.Binders[0].Key())

	values, err := op.BindValues(statement.Bindings{"1": 1965}, nil)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(1965)}, values)

	_, err = op.BindValues(statement.Bindings{}, nil)
	require.Error(t, err)
	assert.False(t, feature.IsNotSupported(err))
}
