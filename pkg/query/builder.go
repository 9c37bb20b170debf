package query

import (
	"sort"

	"github.com/relario/recordsync/pkg/record"
)

// Term wraps an expression with the fluent chain. Every method returns a
// new Term over a new expression node; a Term in hand never changes.
type Term struct {
	expr       Expression
	extensions map[string]Extension
}

// Extension is a named query-term capability merged into the base chain
// at configuration time.
type Extension func(t Term, args ...interface{}) Term

// Builder constructs root terms and carries the registered extensions.
type Builder struct {
	extensions map[string]Extension
}

// NewBuilder creates a query builder with no extensions.
func NewBuilder() *Builder {
	return &Builder{extensions: make(map[string]Extension)}
}

// RegisterExtension merges a named capability into every term the builder
// produces. Registering a name twice replaces the earlier closure.
func (b *Builder) RegisterExtension(name string, fn Extension) {
	b.extensions[name] = fn
}

// Records starts a term over a whole collection.
func (b *Builder) Records(recordType string) Term {
	return Term{expr: RecordsExpression{Type: recordType}, extensions: b.extensions}
}

// Record starts a term over a single record.
func (b *Builder) Record(identity record.RecordIdentity) Term {
	return Term{expr: RecordExpression{Record: identity}, extensions: b.extensions}
}

// RelatedRecord starts a term over a to-one relationship.
func (b *Builder) RelatedRecord(identity record.RecordIdentity, relationship string) Term {
	return Term{expr: RelatedRecordExpression{Record: identity, Relationship: relationship}, extensions: b.extensions}
}

// RelatedRecords starts a term over a to-many relationship.
func (b *Builder) RelatedRecords(identity record.RecordIdentity, relationship string) Term {
	return Term{expr: RelatedRecordsExpression{Record: identity, Relationship: relationship}, extensions: b.extensions}
}

// Get builds a raw path expression.
func Get(path string) Expression {
	return GetExpression{Path: path}
}

// Attribute builds an attribute expression.
func Attribute(name string) Expression {
	return AttributeExpression{Name: name}
}

// Equal builds an equality condition.
func Equal(expr Expression, value interface{}) Expression {
	return EqualExpression{Expression: expr, Value: value}
}

// And combines conditions.
func And(conditions ...Expression) Expression {
	combined := make([]Expression, len(conditions))
	copy(combined, conditions)
	return AndExpression{Conditions: combined}
}

// Expression returns the term's underlying expression tree.
func (t Term) Expression() Expression {
	return t.expr
}

// Filter narrows the term by a predicate.
func (t Term) Filter(predicate Expression) Term {
	return t.derive(FilterExpression{Source: t.expr, Predicate: predicate})
}

// FilterAttributes is sugar: one equal(attribute(k), v) per entry,
// combined with and() only when more than one entry is present. A single
// condition is passed through unwrapped; consumers depend on that shape.
func (t Term) FilterAttributes(attributes map[string]interface{}) Term {
	names := make([]string, 0, len(attributes))
	for name := range attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	conditions := make([]Expression, 0, len(names))
	for _, name := range names {
		conditions = append(conditions, Equal(Attribute(name), attributes[name]))
	}
	if len(conditions) == 1 {
		return t.Filter(conditions[0])
	}
	return t.Filter(And(conditions...))
}

// Sort orders the term by the given specifiers.
func (t Term) Sort(specifiers ...SortSpecifier) (Term, error) {
	fields := make([]SortField, 0, len(specifiers))
	for _, spec := range specifiers {
		field, err := parseSortSpecifier(spec)
		if err != nil {
			return Term{}, err
		}
		fields = append(fields, field)
	}
	return t.derive(SortExpression{Source: t.expr, Fields: fields}), nil
}

// Page applies pagination options to the term.
func (t Term) Page(options map[string]interface{}) Term {
	opts := make(map[string]interface{}, len(options))
	for k, v := range options {
		opts[k] = v
	}
	return t.derive(PageExpression{Source: t.expr, Options: opts})
}

// Apply invokes a registered extension by name.
func (t Term) Apply(name string, args ...interface{}) (Term, error) {
	fn, ok := t.extensions[name]
	if !ok {
		return Term{}, ErrUnknownExtension
	}
	return fn(t, args...), nil
}

func (t Term) derive(expr Expression) Term {
	return Term{expr: expr, extensions: t.extensions}
}
