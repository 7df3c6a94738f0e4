package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mentorhub/mentorsearch/internal/domain"
	"github.com/mentorhub/mentorsearch/internal/domain/mentor"
	"github.com/mentorhub/mentorsearch/internal/domain/query"
	"github.com/mentorhub/mentorsearch/internal/domain/search/predicate"
)

// maxPriceSentinel is the effectively-unbounded upper price bound used when
// the caller did not constrain price.
const maxPriceSentinel = 1e9

// defaultLanguages is the permissive language set matched when the caller did
// not constrain languages.
var defaultLanguages = []string{
	"english", "spanish", "french", "german",
	"turkish", "arabic", "russian", "chinese",
}

// Compile maps a normalized query into the ordered predicate set. Pure and
// deterministic: every dimension contributes exactly one predicate, either
// the constrained form or a permissive default, so the executor never
// branches on filter presence. Profession area is the only hard requirement.
func Compile(q query.Structured) (predicate.Set, error) {
	if q.Profession == "" {
		return predicate.Set{}, domain.ErrMissingProfessionArea
	}

	var b setBuilder

	b.equals(mentor.FieldProfession, strings.ToLower(q.Profession))
	b.numeric(mentor.FieldRating, predicate.AtLeast(deref(q.MinRating, 0)))
	b.numeric(mentor.FieldHourlyPrice, predicate.AtMost(deref(q.MaxPrice, maxPriceSentinel)))

	if q.City != nil {
		b.equals(mentor.FieldCity, *q.City)
	} else {
		b.always(mentor.FieldCity)
	}

	if q.Online != nil {
		b.equals(mentor.FieldOnline, strconv.FormatBool(*q.Online))
	} else {
		b.always(mentor.FieldOnline)
	}

	if len(q.Languages) > 0 {
		b.anyOf(mentor.FieldLanguages, q.Languages)
	} else {
		b.anyOf(mentor.FieldLanguages, defaultLanguages)
	}

	b.numeric(mentor.FieldAvailability, availabilityRange(q.AvailabilityCode()))
	b.numeric(mentor.FieldExperience, predicate.AtLeast(float64(derefInt(q.Experience, 0))))
	b.numeric(mentor.FieldAge, ageRange(q.MinAge, q.MaxAge))

	if q.Gender != nil {
		b.equals(mentor.FieldGender, *q.Gender)
	} else {
		b.always(mentor.FieldGender)
	}

	if b.err != nil {
		return predicate.Set{}, fmt.Errorf("compile: %w", b.err)
	}
	return predicate.NewSet(b.preds...), nil
}

// availabilityRange expresses the requested availability subset as a range
// over the derived code (0 none, 1 weekdays, 2 both, 3 weekends).
// Weekdays-or-both is code <= 2, weekends-or-both is code >= 2; an
// unconstrained query still requires some availability (code > 0).
func availabilityRange(code int) predicate.Range {
	switch code {
	case 1:
		return predicate.AtMost(2)
	case 2:
		return predicate.Exactly(2)
	case 3:
		return predicate.AtLeast(2)
	default:
		return predicate.Above(0)
	}
}

func ageRange(minAge, maxAge *int) predicate.Range {
	switch {
	case minAge != nil && maxAge != nil:
		return predicate.Between(float64(*minAge), float64(*maxAge))
	case minAge != nil:
		return predicate.AtLeast(float64(*minAge))
	case maxAge != nil:
		return predicate.AtMost(float64(*maxAge))
	default:
		return predicate.AtLeast(0)
	}
}

// setBuilder accumulates predicates, keeping the first constructor error.
type setBuilder struct {
	preds []predicate.Predicate
	err   error
}

func (b *setBuilder) add(p predicate.Predicate, err error) {
	if b.err == nil && err != nil {
		b.err = err
		return
	}
	b.preds = append(b.preds, p)
}

func (b *setBuilder) equals(field, value string) {
	b.add(predicate.NewEquals(field, value))
}

func (b *setBuilder) anyOf(field string, values []string) {
	b.add(predicate.NewAnyOf(field, values))
}

func (b *setBuilder) numeric(field string, r predicate.Range) {
	b.add(predicate.NewNumeric(field, r))
}

func (b *setBuilder) always(field string) {
	b.add(predicate.NewAlways(field))
}

func deref(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}

func derefInt(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}
