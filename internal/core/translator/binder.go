package translator

import (
	"fmt"
	"strconv"

	"github.com/mongolift/mongolift/internal/core/command"
	"github.com/mongolift/mongolift/internal/core/statement"
)

// BinderSource says where a binder resolves its value from at execution
// time. Ordinary parameters read the bindings map; offset/limit markers
// synthesized for options-sourced paging read the query options instead,
// which keeps the translated command reusable across executions with
// different paging.
type BinderSource int

const (
	// BindParameter resolves from the external parameter bindings.
	BindParameter BinderSource = iota
	// BindOptionsOffset resolves from QueryOptions.Limit.Offset.
	BindOptionsOffset
	// BindOptionsLimit resolves from QueryOptions.Limit.MaxRows.
	BindOptionsLimit
)

// Binder supplies the value for one parameter marker. The binder list is
// ordered to match the markers in render order (left-to-right, depth-first
// over the statement tree).
type Binder struct {
	Source  BinderSource
	Name    string // parameter name, empty for positional or options binders
	Ordinal int    // 1-based position for positional parameters
}

// Key returns the bindings-map key for a parameter binder.
func (b Binder) Key() string {
	if b.Name != "" {
		return b.Name
	}
	return strconv.Itoa(b.Ordinal)
}

// Bind resolves the binder against the execution-time bindings and options,
// converting the result to its BSON representation.
func (b Binder) Bind(bindings statement.Bindings, opts *statement.QueryOptions) (interface{}, error) {
	switch b.Source {
	case BindParameter:
		v, ok := bindings[b.Key()]
		if !ok {
			return nil, fmt.Errorf("translator: no value bound for parameter %q", b.Key())
		}
		return command.ToNative(v)
	case BindOptionsOffset:
		if opts == nil || opts.Limit.Offset == nil {
			return nil, fmt.Errorf("translator: query options carry no offset for the offset marker")
		}
		return int64(*opts.Limit.Offset), nil
	case BindOptionsLimit:
		if opts == nil || opts.Limit.MaxRows == nil {
			return nil, fmt.Errorf("translator: query options carry no max rows for the limit marker")
		}
		return int64(*opts.Limit.MaxRows), nil
	default:
		panic(fmt.Sprintf("translator: unknown binder source %d", b.Source))
	}
}
