package translator

import (
	"fmt"

	"github.com/mongolift/mongolift/internal/core/command"
	"github.com/mongolift/mongolift/internal/core/feature"
	"github.com/mongolift/mongolift/internal/core/statement"
)

func (t *Translator) translateTableInsert(ins *statement.TableInsert) (*command.Insert, error) {
	t.registerCollection(ins.Table)

	doc := command.Document{Fields: make([]command.Field, 0, len(ins.Bindings))}
	for _, b := range ins.Bindings {
		v, err := t.renderBinding(b)
		if err != nil {
			return nil, err
		}
		doc.Fields = append(doc.Fields, command.Field{Name: b.Column, Value: v})
	}
	return &command.Insert{Coll: ins.Table, Documents: []command.Document{doc}}, nil
}

func (t *Translator) translateTableUpdate(upd *statement.TableUpdate) (*command.Update, error) {
	if err := checkLockBindings(upd.LockBindings); err != nil {
		return nil, err
	}

	t.registerCollection(upd.Table)

	filter, err := t.keyFilter(upd.Table, upd.Key)
	if err != nil {
		return nil, err
	}

	sets := make([]command.FieldUpdate, 0, len(upd.Bindings))
	for _, b := range upd.Bindings {
		v, err := t.renderBinding(b)
		if err != nil {
			return nil, err
		}
		sets = append(sets, command.FieldUpdate{Name: b.Column, Value: v})
	}
	return &command.Update{Coll: upd.Table, Filter: filter, Sets: sets}, nil
}

func (t *Translator) translateTableDelete(del *statement.TableDelete) (*command.Delete, error) {
	t.registerCollection(del.Table)

	filter, err := t.keyFilter(del.Table, del.Key)
	if err != nil {
		return nil, err
	}
	return &command.Delete{Coll: del.Table, Filter: filter}, nil
}

// renderBinding renders one column binding. A binding with no value
// expression is rejected: the column must either be omitted or carry an
// explicit value.
func (t *Translator) renderBinding(b statement.ColumnBinding) (command.Value, error) {
	if b.Value == nil {
		return nil, feature.Errorf("column binding",
			"column %q carries no value expression; omit the column or bind a value", b.Column)
	}
	return t.renderValue(b.Value)
}

// keyFilter builds the equality filter identifying the single row a
// key-driven mutation targets. Update and delete share this path.
func (t *Translator) keyFilter(table string, key statement.KeySpec) (command.Filter, error) {
	if len(key.Columns) != 1 {
		return nil, feature.Errorf("composite primary key",
			"table %q maps its primary key over %d columns; MongoDB documents key on a single _id field",
			table, len(key.Columns))
	}
	if len(key.Values) != len(key.Columns) {
		panic(fmt.Sprintf("translator: key of %q has %d columns but %d values",
			table, len(key.Columns), len(key.Values)))
	}
	v, err := t.renderValue(key.Values[0])
	if err != nil {
		return nil, err
	}
	return command.FieldComparison{Path: key.Columns[0], Op: command.OpEq, Value: v}, nil
}

func (t *Translator) translateInsert(ins *statement.Insert) (*command.Insert, error) {
	if err := checkMutationShape(ins.Returning, ins.CTEs, nil); err != nil {
		return nil, err
	}
	t.registerCollection(ins.Table.Name)

	docs := make([]command.Document, 0, len(ins.Rows))
	for rowIdx, row := range ins.Rows {
		// Rows share the statement's column list; a length mismatch is a
		// malformed tree, not a feature gap.
		if len(row) != len(ins.Columns) {
			panic(fmt.Sprintf("translator: insert into %q row %d has %d values for %d columns",
				ins.Table.Name, rowIdx, len(row), len(ins.Columns)))
		}
		doc := command.Document{Fields: make([]command.Field, 0, len(row))}
		for i, e := range row {
			if !isValue(e) {
				return nil, feature.Errorf("insert value",
					"column %q of row %d is not a literal or parameter value", ins.Columns[i], rowIdx)
			}
			v, err := t.renderValue(e)
			if err != nil {
				return nil, err
			}
			doc.Fields = append(doc.Fields, command.Field{Name: ins.Columns[i], Value: v})
		}
		docs = append(docs, doc)
	}
	return &command.Insert{Coll: ins.Table.Name, Documents: docs}, nil
}

func (t *Translator) translateUpdate(upd *statement.Update) (*command.Update, error) {
	if err := checkMutationShape(upd.Returning, upd.CTEs, upd.Joins); err != nil {
		return nil, err
	}
	t.registerCollection(upd.Table.Name)

	var filter command.Filter
	if upd.Where != nil {
		f, err := t.renderFilter(upd.Where)
		if err != nil {
			return nil, err
		}
		filter = f
	}

	sets := make([]command.FieldUpdate, 0, len(upd.Assignments))
	for _, a := range upd.Assignments {
		v, err := t.renderValue(a.Value)
		if err != nil {
			return nil, err
		}
		sets = append(sets, command.FieldUpdate{Name: a.Column, Value: v})
	}
	return &command.Update{Coll: upd.Table.Name, Filter: filter, Sets: sets}, nil
}

func (t *Translator) translateDelete(del *statement.Delete) (*command.Delete, error) {
	if err := checkMutationShape(del.Returning, del.CTEs, del.Joins); err != nil {
		return nil, err
	}
	t.registerCollection(del.Table.Name)

	var filter command.Filter
	if del.Where != nil {
		f, err := t.renderFilter(del.Where)
		if err != nil {
			return nil, err
		}
		filter = f
	}
	return &command.Delete{Coll: del.Table.Name, Filter: filter}, nil
}
