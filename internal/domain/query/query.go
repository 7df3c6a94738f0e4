package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mentorhub/mentorsearch/internal/domain"
)

// Availability tokens accepted in a structured query.
const (
	Weekdays = "weekdays"
	Weekends = "weekends"
)

// Experience level ordinals.
const (
	LevelBeginner     = 1
	LevelIntermediate = 2
	LevelAdvanced     = 3
)

// Candidate is the raw structured payload extracted from the completion
// output, before validation and canonicalization.
type Candidate struct {
	ProfessionArea    string   `json:"professionArea"`
	MaxPrice          *float64 `json:"maxPrice"`
	MinRating         *float64 `json:"minRating"`
	Location          Location `json:"location"`
	PreferredLanguage []string `json:"preferredLanguage"`
	ExperienceLevel   any      `json:"experienceLevel"`
	Availability      []string `json:"availability"`
	AgeRange          AgeRange `json:"ageRange"`
	GenderPreference  *string  `json:"genderPreference"`
}

// Location is the nested location object of a candidate payload.
type Location struct {
	City           *string `json:"city"`
	OnlineFlexible *bool   `json:"onlineFlexible"`
}

// AgeRange is the nested age bounds object of a candidate payload.
type AgeRange struct {
	MinAge *float64 `json:"minAge"`
	MaxAge *float64 `json:"maxAge"`
}

// Structured is the canonical, schema-validated search query. Absent optional
// fields are nil, never omitted, so downstream stages only do nil checks.
type Structured struct {
	Profession   string
	MaxPrice     *float64
	MinRating    *float64
	City         *string
	Online       *bool
	Languages    []string
	Experience   *int
	Availability []string
	MinAge       *int
	MaxAge       *int
	Gender       *string
}

// Normalize validates a candidate payload and canonicalizes it into a
// Structured query. Each rule is independent of the others; normalizing an
// already-normalized query is a no-op.
func Normalize(c Candidate) (Structured, error) {
	profession := strings.TrimSpace(c.ProfessionArea)
	if profession == "" {
		return Structured{}, fmt.Errorf("%w: professionArea", domain.ErrMissingRequiredField)
	}

	minAge, maxAge, err := normalizeAges(c.AgeRange)
	if err != nil {
		return Structured{}, err
	}

	return Structured{
		Profession:   CanonicalSubject(profession),
		MaxPrice:     c.MaxPrice,
		MinRating:    c.MinRating,
		City:         lowerPtr(c.Location.City),
		Online:       c.Location.OnlineFlexible,
		Languages:    normalizeTokens(c.PreferredLanguage, nil),
		Experience:   normalizeExperience(c.ExperienceLevel),
		Availability: normalizeAvailability(c.Availability),
		MinAge:       minAge,
		MaxAge:       maxAge,
		Gender:       lowerPtr(c.GenderPreference),
	}, nil
}

// Candidate re-wraps a structured query as a candidate payload. Useful for
// fixed-point checks and for callers that already hold structured input.
func (s Structured) Candidate() Candidate {
	c := Candidate{
		ProfessionArea:    s.Profession,
		MaxPrice:          s.MaxPrice,
		MinRating:         s.MinRating,
		PreferredLanguage: s.Languages,
		Availability:      s.Availability,
		GenderPreference:  s.Gender,
	}
	c.Location.City = s.City
	c.Location.OnlineFlexible = s.Online
	if s.Experience != nil {
		c.ExperienceLevel = float64(*s.Experience)
	}
	if s.MinAge != nil {
		v := float64(*s.MinAge)
		c.AgeRange.MinAge = &v
	}
	if s.MaxAge != nil {
		v := float64(*s.MaxAge)
		c.AgeRange.MaxAge = &v
	}
	return c
}

// AvailabilityCode encodes the availability subset as an ordinal:
// 0 = unspecified, 1 = weekdays only, 2 = both, 3 = weekends only.
// Range-style predicates rely on this ordering ("weekdays or both" is <= 2).
func (s Structured) AvailabilityCode() int {
	return AvailabilityCode(s.Availability)
}

// AvailabilityCode derives the ordinal encoding for an availability subset.
func AvailabilityCode(subset []string) int {
	var weekdays, weekends bool
	for _, tok := range subset {
		switch tok {
		case Weekdays:
			weekdays = true
		case Weekends:
			weekends = true
		}
	}
	switch {
	case weekdays && weekends:
		return 2
	case weekdays:
		return 1
	case weekends:
		return 3
	default:
		return 0
	}
}

func normalizeAges(r AgeRange) (*int, *int, error) {
	toInt := func(v *float64) (*int, error) {
		if v == nil {
			return nil, nil
		}
		if *v < 0 {
			return nil, fmt.Errorf("%w: negative age %g", domain.ErrInvalidRange, *v)
		}
		n := int(*v)
		return &n, nil
	}

	minAge, err := toInt(r.MinAge)
	if err != nil {
		return nil, nil, err
	}
	maxAge, err := toInt(r.MaxAge)
	if err != nil {
		return nil, nil, err
	}
	if minAge != nil && maxAge != nil && *minAge > *maxAge {
		return nil, nil, fmt.Errorf("%w: minAge %d > maxAge %d", domain.ErrInvalidRange, *minAge, *maxAge)
	}
	return minAge, maxAge, nil
}

// normalizeExperience accepts the ordinal 1..3 (as a JSON number or numeric
// string) or a level word; anything else is treated as unspecified.
func normalizeExperience(v any) *int {
	level := 0
	switch x := v.(type) {
	case float64:
		level = int(x)
	case int:
		level = x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "beginner", "1":
			level = LevelBeginner
		case "intermediate", "2":
			level = LevelIntermediate
		case "advanced", "3":
			level = LevelAdvanced
		}
	}
	if level < LevelBeginner || level > LevelAdvanced {
		return nil
	}
	return &level
}

// normalizeAvailability keeps known tokens only, collapsing duplicates.
// Unknown tokens are dropped, not rejected.
func normalizeAvailability(tokens []string) []string {
	return normalizeTokens(tokens, map[string]bool{Weekdays: true, Weekends: true})
}

// normalizeTokens lower-cases and dedupes a token list, keeping only allowed
// tokens when allowed is non-nil. Returns nil for an empty result.
func normalizeTokens(tokens []string, allowed map[string]bool) []string {
	seen := make(map[string]bool, len(tokens))
	var out []string
	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" || seen[tok] {
			continue
		}
		if allowed != nil && !allowed[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

func lowerPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*s))
	if v == "" {
		return nil
	}
	return &v
}
