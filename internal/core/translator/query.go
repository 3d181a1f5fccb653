package translator

import (
	"github.com/mongolift/mongolift/internal/core/command"
	"github.com/mongolift/mongolift/internal/core/feature"
	"github.com/mongolift/mongolift/internal/core/statement"
)

// translateSelect compiles a select statement into an aggregation pipeline
// with the fixed stage order Match, Sort, Skip, Limit, Project. The two int
// results are the binder indexes of the options-sourced offset and limit
// markers, -1 when absent.
func (t *Translator) translateSelect(sel *statement.Select, opts *statement.QueryOptions) (*command.Aggregate, int, int, error) {
	if err := checkSelectShape(sel); err != nil {
		return nil, -1, -1, err
	}
	if err := checkSortings(sel.Sortings); err != nil {
		return nil, -1, -1, err
	}

	coll := sel.From[0].Name
	t.registerCollection(coll)

	var stages []command.Stage

	if sel.Where != nil {
		f, err := t.renderFilter(sel.Where)
		if err != nil {
			return nil, -1, -1, err
		}
		stages = append(stages, command.Match{Filter: f})
	}

	if len(sel.Sortings) > 0 {
		sort, err := t.sortStage(sel.Sortings)
		if err != nil {
			return nil, -1, -1, err
		}
		stages = append(stages, sort)
	}

	stages, offsetBinder, limitBinder, err := t.appendLimitStages(stages, sel, opts)
	if err != nil {
		return nil, -1, -1, err
	}

	project, err := projectStage(sel.Columns)
	if err != nil {
		return nil, -1, -1, err
	}
	stages = append(stages, project)

	return &command.Aggregate{Coll: coll, Stages: stages}, offsetBinder, limitBinder, nil
}

// sortStage expands the sort specifications into sort fields. A tuple key
// expands into one field per element, all sharing the tuple's direction.
func (t *Translator) sortStage(sortings []statement.Sorting) (command.Sort, error) {
	var fields []command.SortField
	for _, s := range sortings {
		switch key := s.Key.(type) {
		case *statement.ColumnRef:
			fields = append(fields, command.SortField{Path: key.Column, Descending: s.Descending})
		case *statement.Tuple:
			for _, e := range key.Exprs {
				cr, ok := e.(*statement.ColumnRef)
				if !ok {
					return command.Sort{}, feature.Errorf("sort key",
						"tuple sort keys may only contain column references; got %T", e)
				}
				fields = append(fields, command.SortField{Path: cr.Column, Descending: s.Descending})
			}
		default:
			return command.Sort{}, feature.Errorf("sort key",
				"sort keys of type %T are not supported by the MongoDB dialect", s.Key)
		}
	}
	return command.Sort{Fields: fields}, nil
}

// appendLimitStages resolves offset/limit. A limit supplied through query
// options gets dedicated parameter markers whose binders read the options
// object at execution time, so the same translation can be re-executed with
// different paging. Literal offset/fetch expressions baked into the tree go
// through the ordinary value path. Absent sides produce no stage.
func (t *Translator) appendLimitStages(stages []command.Stage, sel *statement.Select, opts *statement.QueryOptions) ([]command.Stage, int, int, error) {
	offsetBinder, limitBinder := -1, -1

	if sel.Fetch != nil && sel.FetchClause != statement.FetchRowsOnly {
		return nil, -1, -1, feature.Errorf("fetch clause",
			"fetch clauses of type %q are not supported by the MongoDB dialect; only plain row-count limiting translates", sel.FetchClause)
	}

	if opts != nil && opts.Limit.IsSet() {
		if opts.Limit.Offset != nil {
			offsetBinder = len(t.binders)
			t.binders = append(t.binders, Binder{Source: BindOptionsOffset})
			stages = append(stages, command.Skip{Value: command.Marker{}})
		}
		if opts.Limit.MaxRows != nil {
			limitBinder = len(t.binders)
			t.binders = append(t.binders, Binder{Source: BindOptionsLimit})
			stages = append(stages, command.Limit{Value: command.Marker{}})
		}
		return stages, offsetBinder, limitBinder, nil
	}

	if sel.Offset != nil {
		v, err := t.renderValue(sel.Offset)
		if err != nil {
			return nil, -1, -1, err
		}
		stages = append(stages, command.Skip{Value: v})
	}
	if sel.Fetch != nil {
		v, err := t.renderValue(sel.Fetch)
		if err != nil {
			return nil, -1, -1, err
		}
		stages = append(stages, command.Limit{Value: v})
	}
	return stages, offsetBinder, limitBinder, nil
}

// projectStage enumerates every non-virtual selected column as an
// inclusion. The projection is always present.
func projectStage(columns []statement.SelectColumn) (command.Project, error) {
	var paths []string
	for _, col := range columns {
		if col.Virtual {
			continue
		}
		cr, ok := col.Expr.(*statement.ColumnRef)
		if !ok {
			return command.Project{}, feature.Errorf("select expression",
				"only direct column references can be selected; got %T", col.Expr)
		}
		paths = append(paths, cr.Column)
	}
	return command.Project{Paths: paths}, nil
}
