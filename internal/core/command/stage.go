package command

import "go.mongodb.org/mongo-driver/v2/bson"

// Stage is one step of an aggregation pipeline. The translator assembles
// stages in the fixed order Match, Sort, Skip, Limit, Project; stages for
// absent clauses are omitted entirely, never rendered empty.
type Stage interface {
	stageDoc() bson.D
}

// Match filters the pipeline input.
type Match struct {
	Filter Filter
}

func (s Match) stageDoc() bson.D {
	return bson.D{{Key: "$match", Value: FilterDocument(s.Filter)}}
}

// SortField is one key of a sort stage.
type SortField struct {
	Path       string
	Descending bool
}

// Sort orders the pipeline by one or more fields. Field order is preserved
// via bson.D since MongoDB sorts by key order.
type Sort struct {
	Fields []SortField
}

func (s Sort) stageDoc() bson.D {
	spec := make(bson.D, len(s.Fields))
	for i, f := range s.Fields {
		dir := int32(1)
		if f.Descending {
			dir = -1
		}
		spec[i] = bson.E{Key: f.Path, Value: dir}
	}
	return bson.D{{Key: "$sort", Value: spec}}
}

// Skip drops the first N documents. The value may be a parameter marker
// bound from query options at execution time.
type Skip struct {
	Value Value
}

func (s Skip) stageDoc() bson.D {
	return bson.D{{Key: "$skip", Value: s.Value.bsonValue()}}
}

// Limit caps the number of documents. The value may be a parameter marker
// bound from query options at execution time.
type Limit struct {
	Value Value
}

func (s Limit) stageDoc() bson.D {
	return bson.D{{Key: "$limit", Value: s.Value.bsonValue()}}
}

// Project enumerates the selected fields as inclusions.
type Project struct {
	Paths []string
}

func (s Project) stageDoc() bson.D {
	spec := make(bson.D, len(s.Paths))
	for i, p := range s.Paths {
		spec[i] = bson.E{Key: p, Value: int32(1)}
	}
	return bson.D{{Key: "$project", Value: spec}}
}
