package query

import (
	"strings"
	"unicode"
)

// subjectSynonyms maps known subject variations to their canonical name.
// Keys are lower-cased; values are the first-letter-capitalized canonical form.
var subjectSynonyms = map[string]string{
	"math":             "Math",
	"maths":            "Math",
	"mathematics":      "Math",
	"algebra":          "Math",
	"calculus":         "Math",
	"music":            "Music",
	"piano":            "Music",
	"guitar":           "Music",
	"violin":           "Music",
	"singing":          "Music",
	"programming":      "Programming",
	"coding":           "Programming",
	"software":         "Programming",
	"computer science": "Programming",
	"art":              "Art",
	"drawing":          "Art",
	"painting":         "Art",
	"english":          "English",
	"physics":          "Physics",
	"chemistry":        "Chemistry",
	"biology":          "Biology",
	"history":          "History",
}

// CanonicalSubject maps a subject name to its canonical capitalized form.
// Unrecognized subjects pass through capitalized; the compiler treats any
// value as a literal match key, so there is no hard failure here.
func CanonicalSubject(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	if canonical, ok := subjectSynonyms[strings.ToLower(s)]; ok {
		return canonical
	}
	return capitalize(s)
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
