// Package dialect is the public entry point for translating relational
// statement trees into MongoDB command documents.
//
// Statements are built from the types in internal/core/statement (re-exported
// here where callers need them) and translated into execution-ready
// operations carrying the command tree, its extended-JSON rendering and the
// ordered parameter binders. Constructs the document model cannot express
// fail with an unsupported-feature error detectable through NotSupported.
package dialect

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mongolift/mongolift/internal/core/feature"
	"github.com/mongolift/mongolift/internal/core/statement"
	"github.com/mongolift/mongolift/internal/core/translator"
)

// Operation result types, aliased from the translator.
type (
	Operation       = translator.Operation
	InsertOperation = translator.InsertOperation
	UpdateOperation = translator.UpdateOperation
	DeleteOperation = translator.DeleteOperation
	SelectOperation = translator.SelectOperation
	Binder          = translator.Binder
	BinderSource    = translator.BinderSource
)

// Binder sources, aliased from the translator.
const (
	BindParameter     = translator.BindParameter
	BindOptionsOffset = translator.BindOptionsOffset
	BindOptionsLimit  = translator.BindOptionsLimit
)

// NotSupported reports whether err is an unsupported-feature rejection, as
// opposed to an execution or decoding failure.
func NotSupported(err error) bool {
	return feature.IsNotSupported(err)
}

// Executor runs a translated operation against a database. The mongodb
// adapter satisfies it.
type Executor interface {
	Execute(ctx context.Context, op *Operation, bindings statement.Bindings, opts *statement.QueryOptions) (bson.M, error)
}

// Dialect bundles translation with an optional executor.
type Dialect struct {
	exec Executor
}

// New creates a dialect. exec may be nil for translate-only use.
func New(exec Executor) *Dialect {
	return &Dialect{exec: exec}
}

// Execute translates a JSON statement envelope and runs the result through
// the dialect's executor.
func (d *Dialect) Execute(ctx context.Context, data []byte, bindings statement.Bindings, opts *statement.QueryOptions) (bson.M, error) {
	if d.exec == nil {
		panic("dialect: Execute called on a translate-only dialect")
	}
	op, err := Translate(data, bindings, opts)
	if err != nil {
		return nil, err
	}
	if op.Command == nil {
		return bson.M{}, nil
	}
	return d.exec.Execute(ctx, op, bindings, opts)
}

// TranslateTableInsert translates a single-entity insert whose values are
// carried in column bindings.
func TranslateTableInsert(ins *statement.TableInsert) (*InsertOperation, error) {
	return translator.TranslateTableInsert(ins)
}

// TranslateTableUpdate translates a single-entity, key-driven update. An
// update with no field bindings yields a no-op operation.
func TranslateTableUpdate(upd *statement.TableUpdate) (*UpdateOperation, error) {
	return translator.TranslateTableUpdate(upd)
}

// TranslateTableDelete translates a single-entity, key-driven delete.
func TranslateTableDelete(del *statement.TableDelete) (*DeleteOperation, error) {
	return translator.TranslateTableDelete(del)
}

// TranslateInsert translates a general multi-row insert statement.
func TranslateInsert(ins *statement.Insert, bindings statement.Bindings, opts *statement.QueryOptions) (*InsertOperation, error) {
	return translator.TranslateInsert(ins, bindings, opts)
}

// TranslateUpdate translates a general update statement.
func TranslateUpdate(upd *statement.Update, bindings statement.Bindings, opts *statement.QueryOptions) (*UpdateOperation, error) {
	return translator.TranslateUpdate(upd, bindings, opts)
}

// TranslateDelete translates a general delete statement.
func TranslateDelete(del *statement.Delete, bindings statement.Bindings, opts *statement.QueryOptions) (*DeleteOperation, error) {
	return translator.TranslateDelete(del, bindings, opts)
}

// TranslateSelect translates a select statement into an aggregation
// pipeline operation.
func TranslateSelect(sel *statement.Select, bindings statement.Bindings, opts *statement.QueryOptions) (*SelectOperation, error) {
	return translator.TranslateSelect(sel, bindings, opts)
}

// Translate decodes a JSON statement envelope and dispatches to the
// matching translation entry point.
func Translate(data []byte, bindings statement.Bindings, opts *statement.QueryOptions) (*Operation, error) {
	stmt, err := statement.Decode(data)
	if err != nil {
		return nil, err
	}
	switch s := stmt.(type) {
	case *statement.Select:
		op, err := translator.TranslateSelect(s, bindings, opts)
		if err != nil {
			return nil, err
		}
		return &op.Operation, nil
	case *statement.Insert:
		op, err := translator.TranslateInsert(s, bindings, opts)
		if err != nil {
			return nil, err
		}
		return &op.Operation, nil
	case *statement.Update:
		op, err := translator.TranslateUpdate(s, bindings, opts)
		if err != nil {
			return nil, err
		}
		return &op.Operation, nil
	case *statement.Delete:
		op, err := translator.TranslateDelete(s, bindings, opts)
		if err != nil {
			return nil, err
		}
		return &op.Operation, nil
	case *statement.TableInsert:
		op, err := translator.TranslateTableInsert(s)
		if err != nil {
			return nil, err
		}
		return &op.Operation, nil
	case *statement.TableUpdate:
		op, err := translator.TranslateTableUpdate(s)
		if err != nil {
			return nil, err
		}
		return &op.Operation, nil
	case *statement.TableDelete:
		op, err := translator.TranslateTableDelete(s)
		if err != nil {
			return nil, err
		}
		return &op.Operation, nil
	default:
		panic("dialect: decoder produced an unknown statement type")
	}
}
