package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSelect(t *testing.T) {
	stmt, err := Decode([]byte(`{
		"select": {
			"from": ["books"],
			"columns": [{"column": "title"}, {"column": "dtype", "virtual": true}],
			"where": {"and": [
				{"compare": {"op": "=", "left": {"column": "author"}, "right": {"param": "author"}}},
				{"compare": {"op": ">", "left": {"column": "year"}, "right": {"value": 1950}}}
			]},
			"orderBy": [{"column": "title", "desc": true}],
			"offset": {"value": 5},
			"fetch": {"value": 10}
		}
	}`))
	require.NoError(t, err)

	sel, ok := stmt.(*Select)
	require.True(t, ok)
	assert.Equal(t, []TableRef{{Name: "books"}}, sel.From)
	require.Len(t, sel.Columns, 2)
	assert.False(t, sel.Columns[0].Virtual)
	assert.True(t, sel.Columns[1].Virtual)

	and, ok := sel.Where.(*Junction)
	require.True(t, ok)
	assert.Equal(t, JunctionAnd, and.Kind)
	require.Len(t, and.Predicates, 2)

	first, ok := and.Predicates[0].(*Comparison)
	require.True(t, ok)
	assert.Equal(t, OpEq, first.Op)
	assert.Equal(t, &ColumnRef{Column: "author"}, first.Left)
	assert.Equal(t, &Parameter{Name: "author"}, first.Right)

	second, ok := and.Predicates[1].(*Comparison)
	require.True(t, ok)
	assert.Equal(t, &Literal{Value: int64(1950)}, second.Right)

	require.Len(t, sel.Sortings, 1)
	assert.True(t, sel.Sortings[0].Descending)
	assert.Equal(t, &ColumnRef{Column: "title"}, sel.Sortings[0].Key)

	assert.Equal(t, &Literal{Value: int64(5)}, sel.Offset)
	assert.Equal(t, &Literal{Value: int64(10)}, sel.Fetch)
	assert.Equal(t, FetchRowsOnly, sel.FetchClause)
}

func TestDecodeLiteralNumbers(t *testing.T) {
	stmt, err := Decode([]byte(`{
		"select": {
			"from": ["books"],
			"where": {"or": [
				{"compare": {"op": "=", "left": {"column": "year"}, "right": {"value": 1965}}},
				{"compare": {"op": "=", "left": {"column": "rating"}, "right": {"value": 4.5}}}
			]}
		}
	}`))
	require.NoError(t, err)

	or := stmt.(*Select).Where.(*Junction)
	assert.Equal(t, &Literal{Value: int64(1965)}, or.Predicates[0].(*Comparison).Right)
	assert.Equal(t, &Literal{Value: 4.5}, or.Predicates[1].(*Comparison).Right)
}

func TestDecodeTableMutations(t *testing.T) {
	stmt, err := Decode([]byte(`{
		"tableUpdate": {
			"table": "books",
			"key": {"columns": ["_id"], "values": [{"param": "id"}]},
			"bindings": [{"column": "title", "value": {"param": "title"}}],
			"lockBindings": [{"column": "version", "value": {"param": "version"}}]
		}
	}`))
	require.NoError(t, err)

	upd, ok := stmt.(*TableUpdate)
	require.True(t, ok)
	assert.Equal(t, "books", upd.Table)
	assert.Equal(t, []string{"_id"}, upd.Key.Columns)
	require.Len(t, upd.Bindings, 1)
	assert.Equal(t, "title", upd.Bindings[0].Column)
	require.Len(t, upd.LockBindings, 1)
	assert.Equal(t, "version", upd.LockBindings[0].Column)
}

func TestDecodeBindingWithoutValue(t *testing.T) {
	stmt, err := Decode([]byte(`{
		"tableInsert": {
			"table": "books",
			"bindings": [{"column": "title"}]
		}
	}`))
	require.NoError(t, err)

	ins := stmt.(*TableInsert)
	require.Len(t, ins.Bindings, 1)
	assert.Nil(t, ins.Bindings[0].Value)
}

func TestDecodeUnsupportedPredicateKinds(t *testing.T) {
	stmt, err := Decode([]byte(`{
		"select": {
			"from": ["books"],
			"where": {"like": {
				"expr": {"column": "title"},
				"pattern": {"value": "Dune%"},
				"negated": true
			}}
		}
	}`))
	require.NoError(t, err)

	like, ok := stmt.(*Select).Where.(*Like)
	require.True(t, ok)
	assert.True(t, like.Negated)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "not json"},
		{"empty envelope", "{}"},
		{"expression without key", `{"select": {"from": ["books"], "offset": {}}}`},
		{"predicate without key", `{"select": {"from": ["books"], "where": {}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.in))
			assert.Error(t, err)
		})
	}
}
