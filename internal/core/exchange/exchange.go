// Package exchange implements the descriptor-tagged single-slot channel the
// translator uses to pass typed intermediate results out of a void-returning
// visit.
//
// The statement walk dispatches through visit methods that do not return
// values. A caller that needs the result of visiting a child opens a request
// with Execute, naming the shape of data it expects via a typed descriptor;
// the visit method serving the request hands its result back with Yield
// against the same descriptor. Requests nest: an inner Execute with a
// different descriptor is fine as long as each request is answered before
// its caller's.
//
// Misuse (yielding against the wrong descriptor, yielding twice, finishing a
// visit without yielding, opening a request while a value is pending) is a
// defect in a visit method, never an input error, and panics.
package exchange

import "fmt"

// Descriptor is a distinguishable request token whose type parameter pins
// the payload type at compile time.
type Descriptor[T any] struct {
	name string
}

// NewDescriptor creates a descriptor. The name appears in assertion
// messages only.
func NewDescriptor[T any](name string) *Descriptor[T] {
	return &Descriptor[T]{name: name}
}

// String returns the descriptor's diagnostic name.
func (d *Descriptor[T]) String() string { return d.name }

type token interface {
	String() string
}

type request struct {
	desc     token
	value    interface{}
	hasValue bool
}

// Slot holds at most one pending request per nesting level. A Slot is
// confined to one translator instance and one goroutine; the zero value is
// ready to use.
type Slot struct {
	stack []request
}

// Execute opens a request for a T, runs visit (which must Yield exactly
// once against desc) and returns the produced value.
func Execute[T any](s *Slot, desc *Descriptor[T], visit func()) T {
	if n := len(s.stack); n > 0 && s.stack[n-1].hasValue {
		panic(fmt.Sprintf("exchange: request for %q opened while a value for %q is pending",
			desc, s.stack[n-1].desc))
	}
	s.stack = append(s.stack, request{desc: desc})
	visit()
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	if !top.hasValue {
		panic(fmt.Sprintf("exchange: visit finished without yielding a value for %q", desc))
	}
	// A failed visit yields its descriptor's zero value, which for an
	// interface-typed T arrives as a nil interface{}. The comma-ok form
	// maps that back to T's zero value instead of panicking.
	v, _ := top.value.(T)
	return v
}

// Yield stores the value for the currently active request. desc must be the
// descriptor that opened it.
func Yield[T any](s *Slot, desc *Descriptor[T], value T) {
	if len(s.stack) == 0 {
		panic(fmt.Sprintf("exchange: yield for %q with no active request", desc))
	}
	top := &s.stack[len(s.stack)-1]
	if top.desc != token(desc) {
		panic(fmt.Sprintf("exchange: yield for %q but the active request is %q", desc, top.desc))
	}
	if top.hasValue {
		panic(fmt.Sprintf("exchange: second yield for %q", desc))
	}
	top.value = value
	top.hasValue = true
}
