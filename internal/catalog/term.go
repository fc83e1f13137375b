package catalog

import (
	"strings"

	"github.com/alexanderramin/courseplan/internal/domain"
)

// termRules are tested in order; the first substring hit wins, so a string
// mentioning both "year" and "term" is a full-year course.
var termRules = []struct {
	needle string
	label  domain.TermLabel
	tag    string
}{
	{"year", domain.TermFullYear, domain.TagYear},
	{"two terms", domain.TermTwoTerms, domain.TagTwoTerm},
	{"half", domain.TermHalf, domain.TagHalf},
	{"term", domain.TermSingle, domain.TagTerm},
}

// NormalizeTerm classifies the free-text term and duration fields into a
// term label and its tag. Unrecognized text yields (TermNone, "").
func NormalizeTerm(term, duration string) (domain.TermLabel, string) {
	text := strings.ToLower(term + " " + duration)
	for _, r := range termRules {
		if strings.Contains(text, r.needle) {
			return r.label, r.tag
		}
	}
	return domain.TermNone, ""
}
