package translator

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mongolift/mongolift/internal/core/command"
	"github.com/mongolift/mongolift/internal/core/statement"
)

// Operation is the outcome of one translation: the command tree, its
// rendered extended-JSON text, the ordered binder list and the affected
// collection names. It is built once per translation and never mutated;
// callers own any caching.
type Operation struct {
	Command     command.Command
	CommandJSON string
	Binders     []Binder
	Collections []string
}

// BindValues resolves every binder in marker order.
func (o *Operation) BindValues(bindings statement.Bindings, opts *statement.QueryOptions) ([]interface{}, error) {
	values := make([]interface{}, len(o.Binders))
	for i, b := range o.Binders {
		v, err := b.Bind(bindings, opts)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// ExecutableWire returns the command document with all parameter markers
// replaced by bound values, ready to run against a database.
func (o *Operation) ExecutableWire(bindings statement.Bindings, opts *statement.QueryOptions) (bson.D, error) {
	values, err := o.BindValues(bindings, opts)
	if err != nil {
		return nil, err
	}
	return command.BindParameters(o.Command.Wire(), values), nil
}

// InsertOperation is the execution-ready result for insert statements.
type InsertOperation struct {
	Operation
}

// UpdateOperation is the execution-ready result for update statements.
type UpdateOperation struct {
	Operation
}

// NoOp reports whether the update had nothing to set and translation was
// skipped entirely.
func (o *UpdateOperation) NoOp() bool {
	return o.Command == nil
}

// DeleteOperation is the execution-ready result for delete statements.
type DeleteOperation struct {
	Operation
}

// SelectOperation is the execution-ready result for select statements.
// OffsetBinder and LimitBinder are the binder indexes of the markers
// synthesized for options-sourced paging, -1 when the corresponding stage
// is absent.
type SelectOperation struct {
	Operation
	OffsetBinder int
	LimitBinder  int
}
