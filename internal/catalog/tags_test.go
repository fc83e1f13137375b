package catalog

import (
	"testing"

	"github.com/alexanderramin/courseplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func ptrInt(n int) *int       { return &n }
func ptrBool(b bool) *bool    { return &b }
func ptrStr(s string) *string { return &s }

func TestDeriveTags_NoFields(t *testing.T) {
	tags, level := DeriveTags(RawCourse{Title: "Biology"})
	assert.Empty(t, tags)
	assert.Equal(t, domain.LevelNone, level)
}

func TestDeriveTags_ProgramFlags(t *testing.T) {
	tags, _ := DeriveTags(RawCourse{Title: "Ethics", GESC: ptrBool(true), PPR: ptrBool(true)})
	assert.Equal(t, []string{"GESC", "PPR"}, tags)

	tags, _ = DeriveTags(RawCourse{Title: "Ethics", GESC: ptrBool(false), PPR: ptrBool(true)})
	assert.Equal(t, []string{"PPR"}, tags)
}

func TestDeriveTags_LevelFromRigor(t *testing.T) {
	cases := []struct {
		name  string
		rigor *int
		want  domain.Level
		tag   string
	}{
		{"missing defaults to 1", nil, domain.LevelNone, ""},
		{"rigor 1", ptrInt(1), domain.LevelNone, ""},
		{"rigor 2", ptrInt(2), domain.LevelAdvanced, "ADV"},
		{"rigor 3", ptrInt(3), domain.LevelCollege, "CL"},
		{"rigor above range", ptrInt(5), domain.LevelCollege, "CL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tags, level := DeriveTags(RawCourse{Title: "Chemistry", Rigor: tc.rigor})
			assert.Equal(t, tc.want, level)
			if tc.tag == "" {
				assert.Empty(t, tags)
			} else {
				assert.Equal(t, []string{tc.tag}, tags)
			}
		})
	}
}

func TestDeriveTags_CLTitlePrefixWinsOverRigor(t *testing.T) {
	tags, level := DeriveTags(RawCourse{Title: "  cl Multivariable Calculus", Rigor: ptrInt(2)})
	assert.Equal(t, domain.LevelCollege, level)
	assert.Equal(t, []string{"CL"}, tags)

	// "CL" without the trailing space is not a prefix marker.
	_, level = DeriveTags(RawCourse{Title: "Classics"})
	assert.Equal(t, domain.LevelNone, level)
}

func TestDeriveTags_Idempotent(t *testing.T) {
	rc := RawCourse{Title: "CL Physics", Rigor: ptrInt(3), GESC: ptrBool(true)}
	tags1, level1 := DeriveTags(rc)
	tags2, level2 := DeriveTags(rc)
	assert.Equal(t, tags1, tags2)
	assert.Equal(t, level1, level2)
}

func TestNormalizeTerm_Priority(t *testing.T) {
	cases := []struct {
		term, duration string
		label          domain.TermLabel
		tag            string
	}{
		{"Full Year Term Course", "", domain.TermFullYear, "YEAR"},
		{"", "Year-long", domain.TermFullYear, "YEAR"},
		{"Two Terms", "", domain.TermTwoTerms, "TWO-TERM"},
		{"Half course", "", domain.TermHalf, "HALF"},
		{"", "half-term", domain.TermHalf, "HALF"},
		{"Fall Term", "", domain.TermSingle, "TERM"},
		{"Winter", "one trimester", domain.TermNone, ""},
		{"", "", domain.TermNone, ""},
	}
	for _, tc := range cases {
		label, tag := NormalizeTerm(tc.term, tc.duration)
		assert.Equal(t, tc.label, label, "term=%q duration=%q", tc.term, tc.duration)
		assert.Equal(t, tc.tag, tag, "term=%q duration=%q", tc.term, tc.duration)
	}
}

func TestNormalizeTerm_ConcatenatesFields(t *testing.T) {
	// "two" in term and "terms" in duration only meet when concatenated.
	label, _ := NormalizeTerm("two", "terms")
	assert.Equal(t, domain.TermTwoTerms, label)
}
