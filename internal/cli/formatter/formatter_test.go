package formatter

import (
	"regexp"
	"strings"
	"testing"

	"github.com/alexanderramin/courseplan/internal/catalog"
	"github.com/alexanderramin/courseplan/internal/domain"
	"github.com/alexanderramin/courseplan/internal/planner"
	"github.com/alexanderramin/courseplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "BB"}, [][]string{
		{"long value", "x"},
		{"s"},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "A           BB", lines[0])
	assert.Equal(t, "──────────  ──", lines[1])
	assert.Equal(t, "long value  x", lines[2])
	assert.Equal(t, "s           ", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab…", Truncate("abcdef", 3))
	assert.Equal(t, "abcdef", Truncate("abcdef", 0))
}

func TestFormatCourseList(t *testing.T) {
	courses := []domain.Course{
		testutil.NewTestCourse("Biology", testutil.WithDepartment("Science"), testutil.WithTerm(domain.TermFullYear), testutil.WithTags(domain.TagGESC)),
		testutil.NewTestCourse("Ceramics", testutil.WithDepartment("Visual Arts"), testutil.WithTerm(domain.TermSingle)),
	}
	out := stripANSI(FormatCourseList(courses, func(title string) bool { return title == "Biology" }))

	assert.Contains(t, out, "★  Biology")
	assert.Contains(t, out, catalog.DeptArts)
	assert.Contains(t, out, "Full year")
	assert.Contains(t, out, "GESC")
	assert.Contains(t, out, "2 courses")

	assert.Contains(t, stripANSI(FormatCourseList(nil, nil)), "No courses match.")
}

func TestFormatDepartments_CountsEveryBucket(t *testing.T) {
	courses := []domain.Course{
		testutil.NewTestCourse("Biology", testutil.WithDepartment("Science")),
		testutil.NewTestCourse("Chemistry", testutil.WithDepartment("Sciences")),
		testutil.NewTestCourse("Mystery"),
	}
	out := stripANSI(FormatDepartments(courses))
	for _, d := range catalog.CanonicalDepartments() {
		assert.Contains(t, out, d)
	}
	assert.Regexp(t, `Science\s+2`, out)
	assert.Regexp(t, `Other\s+1`, out)
}

func TestFormatPlanner_ShowsGroupsAndPlacements(t *testing.T) {
	state := domain.NewPlannerState(3)
	state.SelectedCourses = []domain.PlanItem{{Title: "Fall Art"}, {Title: "Latin I"}}
	state.Grid, _ = planner.Assign(state.Grid, testutil.NewTestCourse("Fall Art", testutil.WithTerm(domain.TermSingle)), domain.Sophomore, 1)
	state.Grid, _ = planner.Assign(state.Grid, testutil.NewTestCourse("Geometry"), domain.Freshman, 0)

	out := stripANSI(FormatPlanner(state))
	assert.Contains(t, out, "FRESHMAN  1/3")
	assert.Contains(t, out, "1. Geometry")
	assert.Contains(t, out, "2. Terms")
	assert.Contains(t, out, "1/3")
	assert.Contains(t, out, "a. Fall Art")
	assert.Contains(t, out, "b. —")
	assert.Contains(t, out, "✔ Fall Art Sophomore[1]")
	assert.Contains(t, out, "  Latin I")
}

func TestFormatLintReport(t *testing.T) {
	out := stripANSI(FormatLintReport("course-database.json", catalog.LintReport{
		Shape:      catalog.ShapeFlatArray,
		Courses:    4,
		Dropped:    1,
		Advisories: []string{"0.title: Invalid type"},
		Truncated:  true,
	}))
	assert.Contains(t, out, "flat-array")
	assert.Contains(t, out, "4 usable, 1 dropped")
	assert.Contains(t, out, "1 advisories")
	assert.Contains(t, out, "further advisories omitted")
}

func TestFormatPrefs(t *testing.T) {
	out := stripANSI(FormatPrefs(domain.CatalogPrefs{
		Grade:      11,
		MathCourse: "Algebra II",
		Language:   domain.LanguagePref{Name: "French", Level: "III", Intent: "continue"},
	}))
	assert.Contains(t, out, "11")
	assert.Contains(t, out, "Algebra II")
	assert.Contains(t, out, "French (III), continue")
}
