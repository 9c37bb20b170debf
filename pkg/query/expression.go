package query

import "github.com/relario/recordsync/pkg/record"

// Expression is a node in an immutable query expression tree. Builder
// calls always return new nodes; no node mutates another.
type Expression interface {
	expressionNode()
}

// GetExpression addresses a raw path on the remote source.
type GetExpression struct {
	Path string
}

// AttributeExpression addresses a named attribute of the current record.
type AttributeExpression struct {
	Name string
}

// EqualExpression compares an expression against a literal value.
type EqualExpression struct {
	Expression Expression
	Value      interface{}
}

// AndExpression combines conditions that must all hold.
type AndExpression struct {
	Conditions []Expression
}

// RecordExpression selects a single record.
type RecordExpression struct {
	Record record.RecordIdentity
}

// RelatedRecordExpression selects the record behind a to-one relationship.
type RelatedRecordExpression struct {
	Record       record.RecordIdentity
	Relationship string
}

// RelatedRecordsExpression selects the records behind a to-many
// relationship.
type RelatedRecordsExpression struct {
	Record       record.RecordIdentity
	Relationship string
}

// RecordsExpression selects a whole collection by type.
type RecordsExpression struct {
	Type string
}

// FilterExpression narrows a source expression by a predicate.
type FilterExpression struct {
	Source    Expression
	Predicate Expression
}

// SortExpression orders a source expression by one or more fields.
type SortExpression struct {
	Source Expression
	Fields []SortField
}

// PageExpression applies pagination directives to a source expression.
type PageExpression struct {
	Source  Expression
	Options map[string]interface{}
}

func (GetExpression) expressionNode()            {}
func (AttributeExpression) expressionNode()      {}
func (EqualExpression) expressionNode()          {}
func (AndExpression) expressionNode()            {}
func (RecordExpression) expressionNode()         {}
func (RelatedRecordExpression) expressionNode()  {}
func (RelatedRecordsExpression) expressionNode() {}
func (RecordsExpression) expressionNode()        {}
func (FilterExpression) expressionNode()         {}
func (SortExpression) expressionNode()           {}
func (PageExpression) expressionNode()           {}
