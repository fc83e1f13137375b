package catalog

import (
	"strings"

	"github.com/alexanderramin/courseplan/internal/domain"
)

// DeptMatch selects how FilterSpec.Department is compared.
type DeptMatch int

const (
	// MatchCanonical compares canonical buckets.
	MatchCanonical DeptMatch = iota
	// MatchExact compares the raw department text case-insensitively.
	MatchExact
)

// TagToggles are independent required-tag switches.
type TagToggles struct {
	GESC     bool
	PPR      bool
	CL       bool
	ADV      bool
	FullYear bool
	Half     bool
}

func (t TagToggles) required() []string {
	var out []string
	if t.GESC {
		out = append(out, domain.TagGESC)
	}
	if t.PPR {
		out = append(out, domain.TagPPR)
	}
	if t.CL {
		out = append(out, domain.TagCL)
	}
	if t.ADV {
		out = append(out, domain.TagADV)
	}
	if t.FullYear {
		out = append(out, domain.TagYear)
	}
	if t.Half {
		out = append(out, domain.TagHalf)
	}
	return out
}

// Any reports whether at least one toggle is on.
func (t TagToggles) Any() bool { return len(t.required()) > 0 }

type FilterSpec struct {
	Query               string
	IncludeDescriptions bool
	Department          string
	DeptMatch           DeptMatch
	Tags                TagToggles
}

// FilterCourses returns the courses matching spec, in input order.
func FilterCourses(courses []domain.Course, spec FilterSpec) []domain.Course {
	out := make([]domain.Course, 0, len(courses))
	required := spec.Tags.required()
	query := strings.ToLower(strings.TrimSpace(spec.Query))
	for _, c := range courses {
		if matches(c, spec, required, query) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c domain.Course, spec FilterSpec, required []string, query string) bool {
	if !departmentMatches(c, spec) {
		return false
	}
	for _, tag := range required {
		if !c.HasTag(tag) {
			return false
		}
	}
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(c.DepartmentName()), query) {
		return true
	}
	return spec.IncludeDescriptions && strings.Contains(strings.ToLower(c.DescriptionText()), query)
}

func departmentMatches(c domain.Course, spec FilterSpec) bool {
	want := strings.TrimSpace(spec.Department)
	if want == "" || strings.EqualFold(want, DeptAll) {
		return true
	}
	if spec.DeptMatch == MatchExact {
		return strings.EqualFold(strings.TrimSpace(c.DepartmentName()), want)
	}
	bucket, ok := ParseDepartment(want)
	if !ok {
		return false
	}
	return CanonicalizeDepartment(c.DepartmentName()) == bucket
}

// FindByTitle returns the first course whose title equals title
// (case-insensitive). Duplicate titles are not disambiguated.
func FindByTitle(courses []domain.Course, title string) (domain.Course, bool) {
	want := strings.TrimSpace(title)
	for _, c := range courses {
		if strings.EqualFold(c.Title, want) {
			return c, true
		}
	}
	return domain.Course{}, false
}
