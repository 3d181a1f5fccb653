package statement

import (
	"encoding/json"
	"fmt"
)

// Decode parses the JSON statement envelope used by the CLI and test
// fixtures into a statement tree. Exactly one statement kind must be set.
//
// The envelope mirrors the tree one-to-one; it is a transport encoding, not
// a query language. Expressions are objects with a single discriminating
// key ("column", "value", "numeric", "param", "tuple"), predicates likewise
// ("compare", "and", "or", "not", "group", "bool", "like", "in").
func Decode(data []byte) (interface{}, error) {
	var env struct {
		Select      *selectJSON      `json:"select"`
		Insert      *insertJSON      `json:"insert"`
		Update      *updateJSON      `json:"update"`
		Delete      *deleteJSON      `json:"delete"`
		TableInsert *tableInsertJSON `json:"tableInsert"`
		TableUpdate *tableUpdateJSON `json:"tableUpdate"`
		TableDelete *tableDeleteJSON `json:"tableDelete"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("statement: decode envelope: %w", err)
	}

	switch {
	case env.Select != nil:
		return env.Select.build()
	case env.Insert != nil:
		return env.Insert.build()
	case env.Update != nil:
		return env.Update.build()
	case env.Delete != nil:
		return env.Delete.build()
	case env.TableInsert != nil:
		return env.TableInsert.build()
	case env.TableUpdate != nil:
		return env.TableUpdate.build()
	case env.TableDelete != nil:
		return env.TableDelete.build()
	default:
		return nil, fmt.Errorf("statement: envelope carries no statement")
	}
}

type exprJSON struct {
	Column  string          `json:"column"`
	Table   string          `json:"table"`
	Value   json.RawMessage `json:"value"`
	Numeric string          `json:"numeric"`
	Param   string          `json:"param"`
	Ordinal int             `json:"ordinal"`
	Tuple   []exprJSON      `json:"tuple"`
}

func (e *exprJSON) build() (Expr, error) {
	switch {
	case e.Column != "":
		return &ColumnRef{Table: e.Table, Column: e.Column}, nil
	case e.Value != nil:
		var v interface{}
		if err := json.Unmarshal(e.Value, &v); err != nil {
			return nil, fmt.Errorf("statement: decode literal: %w", err)
		}
		return &Literal{Value: normalizeLiteral(v)}, nil
	case e.Numeric != "":
		return &NumericLiteral{Text: e.Numeric}, nil
	case e.Param != "" || e.Ordinal > 0:
		return &Parameter{Name: e.Param, Ordinal: e.Ordinal}, nil
	case len(e.Tuple) > 0:
		exprs := make([]Expr, len(e.Tuple))
		for i := range e.Tuple {
			x, err := e.Tuple[i].build()
			if err != nil {
				return nil, err
			}
			exprs[i] = x
		}
		return &Tuple{Exprs: exprs}, nil
	default:
		return nil, fmt.Errorf("statement: expression carries no discriminating key")
	}
}

// normalizeLiteral maps encoding/json's float64 numbers onto int64 where
// the value is integral, matching how the host engine binds Go integers.
func normalizeLiteral(v interface{}) interface{} {
	f, ok := v.(float64)
	if !ok {
		return v
	}
	if f == float64(int64(f)) {
		return int64(f)
	}
	return f
}

type predJSON struct {
	Compare *compareJSON `json:"compare"`
	And     []predJSON   `json:"and"`
	Or      []predJSON   `json:"or"`
	Not     *predJSON    `json:"not"`
	Group   *predJSON    `json:"group"`
	Bool    *boolJSON    `json:"bool"`
	Like    *likeJSON    `json:"like"`
	In      *inJSON      `json:"in"`
}

type compareJSON struct {
	Op    string   `json:"op"`
	Left  exprJSON `json:"left"`
	Right exprJSON `json:"right"`
}

type boolJSON struct {
	Expr    exprJSON `json:"expr"`
	Negated bool     `json:"negated"`
}

type likeJSON struct {
	Expr    exprJSON `json:"expr"`
	Pattern exprJSON `json:"pattern"`
	Negated bool     `json:"negated"`
}

type inJSON struct {
	Expr  exprJSON   `json:"expr"`
	Items []exprJSON `json:"items"`
}

func (p *predJSON) build() (Predicate, error) {
	switch {
	case p.Compare != nil:
		left, err := p.Compare.Left.build()
		if err != nil {
			return nil, err
		}
		right, err := p.Compare.Right.build()
		if err != nil {
			return nil, err
		}
		return &Comparison{Left: left, Op: CompareOp(p.Compare.Op), Right: right}, nil

	case len(p.And) > 0:
		return buildJunction(JunctionAnd, p.And)
	case len(p.Or) > 0:
		return buildJunction(JunctionOr, p.Or)

	case p.Not != nil:
		sub, err := p.Not.build()
		if err != nil {
			return nil, err
		}
		return &Negation{Predicate: sub}, nil

	case p.Group != nil:
		sub, err := p.Group.build()
		if err != nil {
			return nil, err
		}
		return &Grouped{Predicate: sub}, nil

	case p.Bool != nil:
		expr, err := p.Bool.Expr.build()
		if err != nil {
			return nil, err
		}
		return &BooleanExpr{Expr: expr, Negated: p.Bool.Negated}, nil

	case p.Like != nil:
		expr, err := p.Like.Expr.build()
		if err != nil {
			return nil, err
		}
		pattern, err := p.Like.Pattern.build()
		if err != nil {
			return nil, err
		}
		return &Like{Expr: expr, Pattern: pattern, Negated: p.Like.Negated}, nil

	case p.In != nil:
		expr, err := p.In.Expr.build()
		if err != nil {
			return nil, err
		}
		items := make([]Expr, len(p.In.Items))
		for i := range p.In.Items {
			x, err := p.In.Items[i].build()
			if err != nil {
				return nil, err
			}
			items[i] = x
		}
		return &In{Expr: expr, Items: items}, nil

	default:
		return nil, fmt.Errorf("statement: predicate carries no discriminating key")
	}
}

func buildJunction(kind JunctionKind, subs []predJSON) (Predicate, error) {
	preds := make([]Predicate, len(subs))
	for i := range subs {
		p, err := subs[i].build()
		if err != nil {
			return nil, err
		}
		preds[i] = p
	}
	return &Junction{Kind: kind, Predicates: preds}, nil
}

type sortingJSON struct {
	Column          string     `json:"column"`
	Tuple           []exprJSON `json:"tuple"`
	Desc            bool       `json:"desc"`
	CaseInsensitive bool       `json:"caseInsensitive"`
	NullOrdering    string     `json:"nullOrdering"`
}

type columnJSON struct {
	Column  string `json:"column"`
	Virtual bool   `json:"virtual"`
}

type selectJSON struct {
	From        []string      `json:"from"`
	Columns     []columnJSON  `json:"columns"`
	Where       *predJSON     `json:"where"`
	OrderBy     []sortingJSON `json:"orderBy"`
	Offset      *exprJSON     `json:"offset"`
	Fetch       *exprJSON     `json:"fetch"`
	FetchClause string        `json:"fetchClause"`
	Distinct    bool          `json:"distinct"`
	GroupBy     []string      `json:"groupBy"`
}

func (s *selectJSON) build() (*Select, error) {
	sel := &Select{Distinct: s.Distinct}
	for _, name := range s.From {
		sel.From = append(sel.From, TableRef{Name: name})
	}
	for _, c := range s.Columns {
		sel.Columns = append(sel.Columns, SelectColumn{
			Expr:    &ColumnRef{Column: c.Column},
			Virtual: c.Virtual,
		})
	}
	if s.Where != nil {
		w, err := s.Where.build()
		if err != nil {
			return nil, err
		}
		sel.Where = w
	}
	for _, o := range s.OrderBy {
		sorting := Sorting{
			Descending:      o.Desc,
			CaseInsensitive: o.CaseInsensitive,
			NullOrdering:    NullOrdering(o.NullOrdering),
		}
		if len(o.Tuple) > 0 {
			tuple := exprJSON{Tuple: o.Tuple}
			key, err := tuple.build()
			if err != nil {
				return nil, err
			}
			sorting.Key = key
		} else {
			sorting.Key = &ColumnRef{Column: o.Column}
		}
		sel.Sortings = append(sel.Sortings, sorting)
	}
	if s.Offset != nil {
		e, err := s.Offset.build()
		if err != nil {
			return nil, err
		}
		sel.Offset = e
	}
	if s.Fetch != nil {
		e, err := s.Fetch.build()
		if err != nil {
			return nil, err
		}
		sel.Fetch = e
		sel.FetchClause = FetchRowsOnly
		if s.FetchClause != "" {
			sel.FetchClause = FetchClauseType(s.FetchClause)
		}
	}
	for _, g := range s.GroupBy {
		sel.GroupBy = append(sel.GroupBy, &ColumnRef{Column: g})
	}
	return sel, nil
}

type insertJSON struct {
	Table     string       `json:"table"`
	Columns   []string     `json:"columns"`
	Rows      [][]exprJSON `json:"rows"`
	Returning []string     `json:"returning"`
}

func (s *insertJSON) build() (*Insert, error) {
	ins := &Insert{
		Table:     TableRef{Name: s.Table},
		Columns:   s.Columns,
		Returning: s.Returning,
	}
	for _, row := range s.Rows {
		exprs := make([]Expr, len(row))
		for i := range row {
			e, err := row[i].build()
			if err != nil {
				return nil, err
			}
			exprs[i] = e
		}
		ins.Rows = append(ins.Rows, exprs)
	}
	return ins, nil
}

type assignmentJSON struct {
	Column string   `json:"column"`
	Value  exprJSON `json:"value"`
}

func buildAssignments(in []assignmentJSON) ([]Assignment, error) {
	out := make([]Assignment, len(in))
	for i, a := range in {
		v, err := a.Value.build()
		if err != nil {
			return nil, err
		}
		out[i] = Assignment{Column: a.Column, Value: v}
	}
	return out, nil
}

type updateJSON struct {
	Table     string           `json:"table"`
	Set       []assignmentJSON `json:"set"`
	Where     *predJSON        `json:"where"`
	Returning []string         `json:"returning"`
}

func (s *updateJSON) build() (*Update, error) {
	assignments, err := buildAssignments(s.Set)
	if err != nil {
		return nil, err
	}
	upd := &Update{
		Table:       TableRef{Name: s.Table},
		Assignments: assignments,
		Returning:   s.Returning,
	}
	if s.Where != nil {
		w, err := s.Where.build()
		if err != nil {
			return nil, err
		}
		upd.Where = w
	}
	return upd, nil
}

type deleteJSON struct {
	Table     string    `json:"table"`
	Where     *predJSON `json:"where"`
	Returning []string  `json:"returning"`
}

func (s *deleteJSON) build() (*Delete, error) {
	del := &Delete{
		Table:     TableRef{Name: s.Table},
		Returning: s.Returning,
	}
	if s.Where != nil {
		w, err := s.Where.build()
		if err != nil {
			return nil, err
		}
		del.Where = w
	}
	return del, nil
}

type bindingJSON struct {
	Column string    `json:"column"`
	Value  *exprJSON `json:"value"`
}

func buildBindings(in []bindingJSON) ([]ColumnBinding, error) {
	out := make([]ColumnBinding, len(in))
	for i, b := range in {
		binding := ColumnBinding{Column: b.Column}
		if b.Value != nil {
			v, err := b.Value.build()
			if err != nil {
				return nil, err
			}
			binding.Value = v
		}
		out[i] = binding
	}
	return out, nil
}

type keyJSON struct {
	Columns []string   `json:"columns"`
	Values  []exprJSON `json:"values"`
}

func (k *keyJSON) build() (KeySpec, error) {
	key := KeySpec{Columns: k.Columns}
	for i := range k.Values {
		v, err := k.Values[i].build()
		if err != nil {
			return KeySpec{}, err
		}
		key.Values = append(key.Values, v)
	}
	return key, nil
}

type tableInsertJSON struct {
	Table    string        `json:"table"`
	Bindings []bindingJSON `json:"bindings"`
}

func (s *tableInsertJSON) build() (*TableInsert, error) {
	bindings, err := buildBindings(s.Bindings)
	if err != nil {
		return nil, err
	}
	return &TableInsert{Table: s.Table, Bindings: bindings}, nil
}

type tableUpdateJSON struct {
	Table        string        `json:"table"`
	Key          keyJSON       `json:"key"`
	Bindings     []bindingJSON `json:"bindings"`
	LockBindings []bindingJSON `json:"lockBindings"`
}

func (s *tableUpdateJSON) build() (*TableUpdate, error) {
	key, err := s.Key.build()
	if err != nil {
		return nil, err
	}
	bindings, err := buildBindings(s.Bindings)
	if err != nil {
		return nil, err
	}
	lockBindings, err := buildBindings(s.LockBindings)
	if err != nil {
		return nil, err
	}
	return &TableUpdate{Table: s.Table, Key: key, Bindings: bindings, LockBindings: lockBindings}, nil
}

type tableDeleteJSON struct {
	Table string  `json:"table"`
	Key   keyJSON `json:"key"`
}

func (s *tableDeleteJSON) build() (*TableDelete, error) {
	key, err := s.Key.build()
	if err != nil {
		return nil, err
	}
	return &TableDelete{Table: s.Table, Key: key}, nil
}
