package catalog

import (
	"strings"
	"unicode"
)

// Canonical department buckets.
const (
	DeptEnglish   = "English"
	DeptLanguages = "Modern & Classical Languages"
	DeptHPRSS     = "History, Philosophy, Religion & Social Sciences"
	DeptCS        = "Computer Science"
	DeptMath      = "Mathematics"
	DeptScience   = "Science"
	DeptArts      = "Performing & Visual Arts"
	DeptOther     = "Other"

	// DeptAll disables department filtering.
	DeptAll = "All"
)

type departmentRule struct {
	bucket  string
	needles []string // substring matches
	words   []string // whole-word matches
}

// departmentRules are evaluated in order and the first match wins.
// Computer Science and HPRSS must precede Mathematics and Science:
// "computer science", "data science" and "political science" contain "science".
var departmentRules = []departmentRule{
	{bucket: DeptEnglish, needles: []string{"english"}},
	{bucket: DeptLanguages, needles: []string{
		"language", "classic", "latin", "greek", "spanish", "french", "chinese",
		"mandarin", "german", "japanese", "italian", "arabic", "russian",
	}},
	{bucket: DeptHPRSS, needles: []string{
		"hprss", "history", "philosophy", "religio", "social science",
		"social studies", "economics", "government", "psychology", "political",
		"civics", "anthropology", "sociology",
	}},
	{bucket: DeptCS, needles: []string{"computer", "computing", "programming", "data science"}},
	{bucket: DeptMath, needles: []string{"math", "calculus", "statistics"}},
	{bucket: DeptScience, needles: []string{"science", "biology", "chemistry", "physics"}},
	{bucket: DeptArts,
		needles: []string{"arts", "music", "theater", "theatre", "dance", "drama", "visual", "performing", "ceramics", "photography", "choir", "orchestra"},
		words:   []string{"art"},
	},
}

// CanonicalizeDepartment maps free-text department names onto a bucket.
// Empty or unrecognized input maps to DeptOther.
func CanonicalizeDepartment(dept string) string {
	d := strings.ToLower(strings.TrimSpace(dept))
	if d == "" {
		return DeptOther
	}
	var words []string
	for _, rule := range departmentRules {
		for _, n := range rule.needles {
			if strings.Contains(d, n) {
				return rule.bucket
			}
		}
		if len(rule.words) > 0 {
			if words == nil {
				words = strings.FieldsFunc(d, func(r rune) bool { return !unicode.IsLetter(r) })
			}
			for _, w := range rule.words {
				for _, have := range words {
					if have == w {
						return rule.bucket
					}
				}
			}
		}
	}
	return DeptOther
}

// CanonicalDepartments returns every bucket, "Other" last.
func CanonicalDepartments() []string {
	out := make([]string, 0, len(departmentRules)+1)
	for _, r := range departmentRules {
		out = append(out, r.bucket)
	}
	return append(out, DeptOther)
}

// ParseDepartment resolves user input ("cs", "math", "All") to a bucket name.
func ParseDepartment(input string) (string, bool) {
	in := strings.TrimSpace(input)
	if in == "" || strings.EqualFold(in, DeptAll) {
		return DeptAll, true
	}
	for _, b := range CanonicalDepartments() {
		if strings.EqualFold(b, in) {
			return b, true
		}
	}
	switch strings.ToLower(in) {
	case "cs":
		return DeptCS, true
	case "languages", "lang":
		return DeptLanguages, true
	case "arts":
		return DeptArts, true
	}
	if b := CanonicalizeDepartment(in); b != DeptOther {
		return b, true
	}
	return "", false
}
