// Package predicate models the store-agnostic filter conditions a compiled
// query is made of: equality, set membership, numeric ranges, and an explicit
// Always variant for dimensions the caller left unconstrained.
package predicate

import "fmt"

// Kind discriminates predicate variants.
type Kind int

const (
	// Equals matches a single exact value.
	Equals Kind = iota
	// AnyOf matches documents whose field contains any of the given values.
	AnyOf
	// Numeric matches a numeric range.
	Numeric
	// Always matches any value. Distinct from Equals("") so the store layer
	// never has to rely on empty-string sentinel semantics.
	Always
)

// Predicate is a single field-level filter condition.
type Predicate struct {
	field     string
	kind      Kind
	match     string
	values    []string
	rangeExpr *Range
}

// NewEquals creates an exact match predicate.
func NewEquals(field, value string) (Predicate, error) {
	if field == "" {
		return Predicate{}, fmt.Errorf("predicate field is required")
	}
	if value == "" {
		return Predicate{}, fmt.Errorf("match value is required for field %q", field)
	}
	return Predicate{field: field, kind: Equals, match: value}, nil
}

// NewAnyOf creates a set membership predicate.
func NewAnyOf(field string, values []string) (Predicate, error) {
	if field == "" {
		return Predicate{}, fmt.Errorf("predicate field is required")
	}
	if len(values) == 0 {
		return Predicate{}, fmt.Errorf("at least one value is required for field %q", field)
	}
	for _, v := range values {
		if v == "" {
			return Predicate{}, fmt.Errorf("empty value in set for field %q", field)
		}
	}
	return Predicate{field: field, kind: AnyOf, values: values}, nil
}

// NewNumeric creates a numeric range predicate.
func NewNumeric(field string, r Range) (Predicate, error) {
	if field == "" {
		return Predicate{}, fmt.Errorf("predicate field is required")
	}
	return Predicate{field: field, kind: Numeric, rangeExpr: &r}, nil
}

// NewAlways creates an any-value predicate for an unconstrained dimension.
func NewAlways(field string) (Predicate, error) {
	if field == "" {
		return Predicate{}, fmt.Errorf("predicate field is required")
	}
	return Predicate{field: field, kind: Always}, nil
}

// Field returns the store field name.
func (p Predicate) Field() string { return p.field }

// Kind returns the predicate variant.
func (p Predicate) Kind() Kind { return p.kind }

// Match returns the exact match value.
func (p Predicate) Match() string { return p.match }

// Values returns the membership set.
func (p Predicate) Values() []string { return p.values }

// Range returns the numeric range expression (nil for non-numeric kinds).
func (p Predicate) Range() *Range { return p.rangeExpr }

// Range is a numeric range with gt/gte/lt/lte boundaries.
type Range struct {
	gt  *float64
	gte *float64
	lt  *float64
	lte *float64
}

// NewRange validates and creates a Range. At least one boundary is required;
// gt/gte and lt/lte are mutually exclusive.
func NewRange(gt, gte, lt, lte *float64) (Range, error) {
	if gt == nil && gte == nil && lt == nil && lte == nil {
		return Range{}, fmt.Errorf("at least one range boundary is required")
	}
	if gt != nil && gte != nil {
		return Range{}, fmt.Errorf("cannot specify both gt and gte")
	}
	if lt != nil && lte != nil {
		return Range{}, fmt.Errorf("cannot specify both lt and lte")
	}
	return Range{gt: gt, gte: gte, lt: lt, lte: lte}, nil
}

// AtLeast builds an inclusive lower-bounded range.
func AtLeast(v float64) Range { return Range{gte: &v} }

// AtMost builds an inclusive upper-bounded range.
func AtMost(v float64) Range { return Range{lte: &v} }

// Above builds an exclusive lower-bounded range.
func Above(v float64) Range { return Range{gt: &v} }

// Between builds an inclusive two-sided range.
func Between(lo, hi float64) Range { return Range{gte: &lo, lte: &hi} }

// Exactly builds a single-point range.
func Exactly(v float64) Range { return Range{gte: &v, lte: &v} }

// GT returns the lower exclusive bound.
func (r Range) GT() *float64 { return r.gt }

// GTE returns the lower inclusive bound.
func (r Range) GTE() *float64 { return r.gte }

// LT returns the upper exclusive bound.
func (r Range) LT() *float64 { return r.lt }

// LTE returns the upper inclusive bound.
func (r Range) LTE() *float64 { return r.lte }

// Set is an ordered predicate list with exactly one predicate per filter
// dimension. Dimensions are conjunctive; order is fixed by the compiler.
type Set struct {
	preds []Predicate
}

// NewSet creates a predicate set preserving argument order.
func NewSet(preds ...Predicate) Set {
	return Set{preds: preds}
}

// Predicates returns the ordered predicate list.
func (s Set) Predicates() []Predicate { return s.preds }

// Len returns the number of predicates.
func (s Set) Len() int { return len(s.preds) }

// ByField returns the predicate for a field, if present.
func (s Set) ByField(field string) (Predicate, bool) {
	for _, p := range s.preds {
		if p.field == field {
			return p, true
		}
	}
	return Predicate{}, false
}
