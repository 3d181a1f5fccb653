// Package translator compiles relational statement trees into MongoDB
// command documents.
//
// Translation is a single synchronous pass over the input tree. Constructs
// without a translation rule fail with a feature.Error naming the construct;
// violations of the translator's own invariants panic. A Translator instance
// holds mutable walk state (the exchange slot, the binder list, the affected
// collection set) and is used for exactly one statement; the package-level
// entry points create a fresh instance per call.
package translator

import (
	"github.com/mongolift/mongolift/internal/core/command"
	"github.com/mongolift/mongolift/internal/core/exchange"
	"github.com/mongolift/mongolift/internal/core/statement"
	"github.com/mongolift/mongolift/internal/debug"
)

// Translator walks one statement tree. Not safe for concurrent use: the
// exchange slot is single-slot mutable state.
type Translator struct {
	slot        exchange.Slot
	err         error
	binders     []Binder
	collections []string
	seen        map[string]struct{}
}

func newTranslator() *Translator {
	return &Translator{seen: make(map[string]struct{})}
}

// fail records the first translation error. Later visits become no-ops
// through the error checks at each request boundary.
func (t *Translator) fail(err error) {
	if t.err == nil {
		t.err = err
	}
}

func (t *Translator) registerCollection(name string) {
	if _, ok := t.seen[name]; ok {
		return
	}
	t.seen[name] = struct{}{}
	t.collections = append(t.collections, name)
}

func (t *Translator) finish(c command.Command) (*Operation, error) {
	text, err := command.Render(c)
	if err != nil {
		return nil, err
	}
	return &Operation{
		Command:     c,
		CommandJSON: text,
		Binders:     t.binders,
		Collections: t.collections,
	}, nil
}

// TranslateTableInsert translates a single-entity insert. Table mutations
// carry their values in column bindings; no external parameter bindings
// are involved.
func TranslateTableInsert(ins *statement.TableInsert) (*InsertOperation, error) {
	debug.Debug("translating table insert", "table", ins.Table, "bindings", len(ins.Bindings))
	t := newTranslator()
	cmd, err := t.translateTableInsert(ins)
	if err != nil {
		return nil, err
	}
	op, err := t.finish(cmd)
	if err != nil {
		return nil, err
	}
	return &InsertOperation{Operation: *op}, nil
}

// TranslateTableUpdate translates a single-entity, key-driven update. An
// update with no field bindings is a no-op and yields an empty operation
// without invoking the translator.
func TranslateTableUpdate(upd *statement.TableUpdate) (*UpdateOperation, error) {
	debug.Debug("translating table update", "table", upd.Table, "bindings", len(upd.Bindings))
	if err := checkLockBindings(upd.LockBindings); err != nil {
		return nil, err
	}
	if len(upd.Bindings) == 0 {
		return &UpdateOperation{}, nil
	}
	t := newTranslator()
	cmd, err := t.translateTableUpdate(upd)
	if err != nil {
		return nil, err
	}
	op, err := t.finish(cmd)
	if err != nil {
		return nil, err
	}
	return &UpdateOperation{Operation: *op}, nil
}

// TranslateTableDelete translates a single-entity, key-driven delete.
func TranslateTableDelete(del *statement.TableDelete) (*DeleteOperation, error) {
	debug.Debug("translating table delete", "table", del.Table)
	t := newTranslator()
	cmd, err := t.translateTableDelete(del)
	if err != nil {
		return nil, err
	}
	op, err := t.finish(cmd)
	if err != nil {
		return nil, err
	}
	return &DeleteOperation{Operation: *op}, nil
}

// TranslateInsert translates a general (multi-row) insert statement.
func TranslateInsert(ins *statement.Insert, bindings statement.Bindings, opts *statement.QueryOptions) (*InsertOperation, error) {
	debug.Debug("translating insert statement", "table", ins.Table.Name, "rows", len(ins.Rows))
	if err := checkQueryOptions(opts); err != nil {
		return nil, err
	}
	if err := checkBindings(bindings); err != nil {
		return nil, err
	}
	t := newTranslator()
	cmd, err := t.translateInsert(ins)
	if err != nil {
		return nil, err
	}
	op, err := t.finish(cmd)
	if err != nil {
		return nil, err
	}
	return &InsertOperation{Operation: *op}, nil
}

// TranslateUpdate translates a general update statement.
func TranslateUpdate(upd *statement.Update, bindings statement.Bindings, opts *statement.QueryOptions) (*UpdateOperation, error) {
	debug.Debug("translating update statement", "table", upd.Table.Name, "assignments", len(upd.Assignments))
	if err := checkQueryOptions(opts); err != nil {
		return nil, err
	}
	if err := checkBindings(bindings); err != nil {
		return nil, err
	}
	t := newTranslator()
	cmd, err := t.translateUpdate(upd)
	if err != nil {
		return nil, err
	}
	op, err := t.finish(cmd)
	if err != nil {
		return nil, err
	}
	return &UpdateOperation{Operation: *op}, nil
}

// TranslateDelete translates a general delete statement.
func TranslateDelete(del *statement.Delete, bindings statement.Bindings, opts *statement.QueryOptions) (*DeleteOperation, error) {
	debug.Debug("translating delete statement", "table", del.Table.Name)
	if err := checkQueryOptions(opts); err != nil {
		return nil, err
	}
	if err := checkBindings(bindings); err != nil {
		return nil, err
	}
	t := newTranslator()
	cmd, err := t.translateDelete(del)
	if err != nil {
		return nil, err
	}
	op, err := t.finish(cmd)
	if err != nil {
		return nil, err
	}
	return &DeleteOperation{Operation: *op}, nil
}

// TranslateSelect translates a select statement into an aggregation
// pipeline.
func TranslateSelect(sel *statement.Select, bindings statement.Bindings, opts *statement.QueryOptions) (*SelectOperation, error) {
	tables := make([]string, len(sel.From))
	for i, t := range sel.From {
		tables[i] = t.Name
	}
	debug.Debug("translating select statement", "tables", tables, "columns", len(sel.Columns))
	if err := checkQueryOptions(opts); err != nil {
		return nil, err
	}
	if err := checkBindings(bindings); err != nil {
		return nil, err
	}
	t := newTranslator()
	cmd, offsetBinder, limitBinder, err := t.translateSelect(sel, opts)
	if err != nil {
		return nil, err
	}
	op, err := t.finish(cmd)
	if err != nil {
		return nil, err
	}
	return &SelectOperation{
		Operation:    *op,
		OffsetBinder: offsetBinder,
		LimitBinder:  limitBinder,
	}, nil
}
