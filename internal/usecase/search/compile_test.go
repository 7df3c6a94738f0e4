package search

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mentorhub/mentorsearch/internal/domain"
	"github.com/mentorhub/mentorsearch/internal/domain/mentor"
	"github.com/mentorhub/mentorsearch/internal/domain/query"
	"github.com/mentorhub/mentorsearch/internal/domain/search/predicate"
)

var compiledOrder = []string{
	mentor.FieldProfession,
	mentor.FieldRating,
	mentor.FieldHourlyPrice,
	mentor.FieldCity,
	mentor.FieldOnline,
	mentor.FieldLanguages,
	mentor.FieldAvailability,
	mentor.FieldExperience,
	mentor.FieldAge,
	mentor.FieldGender,
}

func TestCompile_MissingProfession(t *testing.T) {
	_, err := Compile(query.Structured{})
	if !errors.Is(err, domain.ErrMissingProfessionArea) {
		t.Fatalf("err = %v, want ErrMissingProfessionArea", err)
	}
}

// A query with only the profession set compiles to one predicate per
// dimension, with permissive defaults everywhere else.
func TestCompile_Defaults(t *testing.T) {
	set, err := Compile(query.Structured{Profession: "Math"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Len() != len(compiledOrder) {
		t.Fatalf("Len() = %d, want %d", set.Len(), len(compiledOrder))
	}
	for i, p := range set.Predicates() {
		if p.Field() != compiledOrder[i] {
			t.Errorf("predicate %d field = %q, want %q", i, p.Field(), compiledOrder[i])
		}
	}

	prof, _ := set.ByField(mentor.FieldProfession)
	if prof.Kind() != predicate.Equals || prof.Match() != "math" {
		t.Errorf("profession predicate = %v %q", prof.Kind(), prof.Match())
	}

	rating, _ := set.ByField(mentor.FieldRating)
	if rating.Range().GTE() == nil || *rating.Range().GTE() != 0 {
		t.Errorf("rating range = %+v, want gte 0", rating.Range())
	}

	price, _ := set.ByField(mentor.FieldHourlyPrice)
	if price.Range().LTE() == nil || *price.Range().LTE() != maxPriceSentinel {
		t.Errorf("price range = %+v, want lte sentinel", price.Range())
	}

	for _, field := range []string{mentor.FieldCity, mentor.FieldOnline, mentor.FieldGender} {
		p, _ := set.ByField(field)
		if p.Kind() != predicate.Always {
			t.Errorf("%s kind = %v, want Always", field, p.Kind())
		}
	}

	langs, _ := set.ByField(mentor.FieldLanguages)
	if langs.Kind() != predicate.AnyOf || !reflect.DeepEqual(langs.Values(), defaultLanguages) {
		t.Errorf("languages = %v %v", langs.Kind(), langs.Values())
	}

	avail, _ := set.ByField(mentor.FieldAvailability)
	if avail.Range().GT() == nil || *avail.Range().GT() != 0 {
		t.Errorf("availability range = %+v, want gt 0", avail.Range())
	}

	age, _ := set.ByField(mentor.FieldAge)
	if age.Range().GTE() == nil || *age.Range().GTE() != 0 {
		t.Errorf("age range = %+v, want gte 0", age.Range())
	}
}

// Fully constrained query: every dimension carries the requested bound.
func TestCompile_FullyConstrained(t *testing.T) {
	maxPrice, minRating := 50.0, 3.5
	city, gender := "paris", "female"
	online := true
	exp := 2
	minAge, maxAge := 30, 50

	q := query.Structured{
		Profession:   "Math",
		MaxPrice:     &maxPrice,
		MinRating:    &minRating,
		City:         &city,
		Online:       &online,
		Languages:    []string{"english", "french"},
		Experience:   &exp,
		Availability: []string{query.Weekends},
		MinAge:       &minAge,
		MaxAge:       &maxAge,
		Gender:       &gender,
	}

	set, err := Compile(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prof, _ := set.ByField(mentor.FieldProfession)
	if prof.Match() != "math" {
		t.Errorf("profession = %q, want %q", prof.Match(), "math")
	}

	rating, _ := set.ByField(mentor.FieldRating)
	if *rating.Range().GTE() != 3.5 {
		t.Errorf("rating gte = %g", *rating.Range().GTE())
	}

	price, _ := set.ByField(mentor.FieldHourlyPrice)
	if *price.Range().LTE() != 50 {
		t.Errorf("price lte = %g", *price.Range().LTE())
	}

	cityPred, _ := set.ByField(mentor.FieldCity)
	if cityPred.Kind() != predicate.Equals || cityPred.Match() != "paris" {
		t.Errorf("city = %v %q", cityPred.Kind(), cityPred.Match())
	}

	onlinePred, _ := set.ByField(mentor.FieldOnline)
	if onlinePred.Match() != "true" {
		t.Errorf("online = %q", onlinePred.Match())
	}

	langs, _ := set.ByField(mentor.FieldLanguages)
	if !reflect.DeepEqual(langs.Values(), []string{"english", "french"}) {
		t.Errorf("languages = %v", langs.Values())
	}

	// Weekends only: availability code >= 2 (weekends or both).
	avail, _ := set.ByField(mentor.FieldAvailability)
	if avail.Range().GTE() == nil || *avail.Range().GTE() != 2 {
		t.Errorf("availability = %+v, want gte 2", avail.Range())
	}

	expPred, _ := set.ByField(mentor.FieldExperience)
	if *expPred.Range().GTE() != 2 {
		t.Errorf("experience gte = %g", *expPred.Range().GTE())
	}

	age, _ := set.ByField(mentor.FieldAge)
	if *age.Range().GTE() != 30 || *age.Range().LTE() != 50 {
		t.Errorf("age range = %+v", age.Range())
	}

	genderPred, _ := set.ByField(mentor.FieldGender)
	if genderPred.Kind() != predicate.Equals || genderPred.Match() != "female" {
		t.Errorf("gender = %v %q", genderPred.Kind(), genderPred.Match())
	}
}

func TestAvailabilityRange(t *testing.T) {
	tests := []struct {
		name string
		code int
		want predicate.Range
	}{
		{"unspecified requires some availability", 0, predicate.Above(0)},
		{"weekdays is weekdays-or-both", 1, predicate.AtMost(2)},
		{"both is exactly both", 2, predicate.Exactly(2)},
		{"weekends is weekends-or-both", 3, predicate.AtLeast(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := availabilityRange(tt.code)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("availabilityRange(%d) = %+v, want %+v", tt.code, got, tt.want)
			}
		})
	}
}

func TestAgeRange(t *testing.T) {
	minAge, maxAge := 30, 50

	tests := []struct {
		name     string
		min, max *int
		want     predicate.Range
	}{
		{"both bounds", &minAge, &maxAge, predicate.Between(30, 50)},
		{"min only", &minAge, nil, predicate.AtLeast(30)},
		{"max only", nil, &maxAge, predicate.AtMost(50)},
		{"unbounded", nil, nil, predicate.AtLeast(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ageRange(tt.min, tt.max)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ageRange = %+v, want %+v", got, tt.want)
			}
		})
	}
}
