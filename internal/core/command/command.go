// Package command models the MongoDB command tree the translator produces.
//
// Every node is immutable once built and renders to an ordered bson.D
// document: field order in documents, sort specifications and pipelines is
// meaningful on the wire, so bson.M is never used where order matters.
// Parameter placeholders render as BSON undefined and are substituted with
// bound values before execution; see BindParameters.
package command

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Value is a literal or a parameter placeholder in the command tree.
type Value interface {
	bsonValue() interface{}
}

// Literal wraps a BSON-native value produced by ToNative.
type Literal struct {
	Value interface{}
}

func (l Literal) bsonValue() interface{} { return l.Value }

// Marker is a parameter placeholder. Markers render as BSON undefined and
// keep positional correspondence with the translation's binder list in
// render order.
type Marker struct{}

func (Marker) bsonValue() interface{} { return bson.Undefined{} }

// Operator is a filter comparison operator. The set is closed; the
// translator's support-boundary checks guarantee nothing else reaches here.
type Operator string

const (
	// OpEq matches values equal to the operand.
	OpEq Operator = "$eq"
	// OpNe matches values not equal to the operand.
	OpNe Operator = "$ne"
	// OpLt matches values less than the operand.
	OpLt Operator = "$lt"
	// OpLte matches values less than or equal to the operand.
	OpLte Operator = "$lte"
	// OpGt matches values greater than the operand.
	OpGt Operator = "$gt"
	// OpGte matches values greater than or equal to the operand.
	OpGte Operator = "$gte"
)

// LogicalKind combines sub-filters.
type LogicalKind string

const (
	// LogicalAnd requires all sub-filters to match.
	LogicalAnd LogicalKind = "$and"
	// LogicalOr requires at least one sub-filter to match.
	LogicalOr LogicalKind = "$or"
	// LogicalNor requires no sub-filter to match. A single-element $nor is
	// the dialect's rendering of negation.
	LogicalNor LogicalKind = "$nor"
)

// Filter is a predicate tree in the command language.
type Filter interface {
	doc() bson.D
}

// FieldComparison compares a field path against a value. It always renders
// with the field on the left: {path: {op: value}}.
type FieldComparison struct {
	Path  string
	Op    Operator
	Value Value
}

func (f FieldComparison) doc() bson.D {
	return bson.D{{Key: f.Path, Value: bson.D{{Key: string(f.Op), Value: f.Value.bsonValue()}}}}
}

// Logical combines sub-filters with $and, $or or $nor.
type Logical struct {
	Kind LogicalKind
	Subs []Filter
}

func (l Logical) doc() bson.D {
	subs := make(bson.A, len(l.Subs))
	for i, s := range l.Subs {
		subs[i] = s.doc()
	}
	return bson.D{{Key: string(l.Kind), Value: subs}}
}

// FilterDocument renders a filter to its wire document. A nil filter
// renders as the match-everything document {}.
func FilterDocument(f Filter) bson.D {
	if f == nil {
		return bson.D{}
	}
	return f.doc()
}

// Document is an ordered set of field/value pairs, e.g. one inserted row.
type Document struct {
	Fields []Field
}

// Field is one named value of a document.
type Field struct {
	Name  string
	Value Value
}

func (d Document) doc() bson.D {
	out := make(bson.D, len(d.Fields))
	for i, f := range d.Fields {
		out[i] = bson.E{Key: f.Name, Value: f.Value.bsonValue()}
	}
	return out
}

// FieldUpdate sets one field in an update command.
type FieldUpdate struct {
	Name  string
	Value Value
}

// Command is a fully resolved MongoDB database command.
type Command interface {
	// Collection returns the command's target collection.
	Collection() string
	// Wire returns the ordered command document.
	Wire() bson.D
}

// Insert inserts one or more documents.
type Insert struct {
	Coll      string
	Documents []Document
}

// Collection returns the command's target collection.
func (c *Insert) Collection() string { return c.Coll }

// Wire returns the ordered command document.
func (c *Insert) Wire() bson.D {
	docs := make(bson.A, len(c.Documents))
	for i, d := range c.Documents {
		docs[i] = d.doc()
	}
	return bson.D{
		{Key: "insert", Value: c.Coll},
		{Key: "documents", Value: docs},
	}
}

// Update applies $set field updates to every document matching the filter.
type Update struct {
	Coll   string
	Filter Filter
	Sets   []FieldUpdate
}

// Collection returns the command's target collection.
func (c *Update) Collection() string { return c.Coll }

// Wire returns the ordered command document.
func (c *Update) Wire() bson.D {
	sets := make(bson.D, len(c.Sets))
	for i, s := range c.Sets {
		sets[i] = bson.E{Key: s.Name, Value: s.Value.bsonValue()}
	}
	update := bson.D{
		{Key: "q", Value: FilterDocument(c.Filter)},
		{Key: "u", Value: bson.D{{Key: "$set", Value: sets}}},
		{Key: "multi", Value: true},
	}
	return bson.D{
		{Key: "update", Value: c.Coll},
		{Key: "updates", Value: bson.A{update}},
	}
}

// Delete removes every document matching the filter.
type Delete struct {
	Coll   string
	Filter Filter
}

// Collection returns the command's target collection.
func (c *Delete) Collection() string { return c.Coll }

// Wire returns the ordered command document.
func (c *Delete) Wire() bson.D {
	del := bson.D{
		{Key: "q", Value: FilterDocument(c.Filter)},
		{Key: "limit", Value: int32(0)},
	}
	return bson.D{
		{Key: "delete", Value: c.Coll},
		{Key: "deletes", Value: bson.A{del}},
	}
}

// Aggregate runs a pipeline of stages against the collection.
type Aggregate struct {
	Coll   string
	Stages []Stage
}

// Collection returns the command's target collection.
func (c *Aggregate) Collection() string { return c.Coll }

// Wire returns the ordered command document.
func (c *Aggregate) Wire() bson.D {
	pipeline := make(bson.A, len(c.Stages))
	for i, s := range c.Stages {
		pipeline[i] = s.stageDoc()
	}
	return bson.D{
		{Key: "aggregate", Value: c.Coll},
		{Key: "pipeline", Value: pipeline},
		{Key: "cursor", Value: bson.D{}},
	}
}
