package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/courseplan/internal/catalog"
	"github.com/alexanderramin/courseplan/internal/domain"
)

const maxTitleWidth = 48

// FormatCourseList renders courses as a table. Titles for which selected
// returns true are starred; selected may be nil.
func FormatCourseList(courses []domain.Course, selected func(title string) bool) string {
	if len(courses) == 0 {
		return Dim("No courses match.") + "\n"
	}
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		mark := " "
		if selected != nil && selected(c.Title) {
			mark = StyleGreen.Render("★")
		}
		rows = append(rows, []string{
			mark,
			Truncate(c.Title, maxTitleWidth),
			catalog.CanonicalizeDepartment(c.DepartmentName()),
			termText(c.TermLabel),
			formatGrades(c.Grades),
			TagBadges(c.Tags),
		})
	}
	out := RenderTable([]string{"", "TITLE", "DEPARTMENT", "TERM", "GRADES", "TAGS"}, rows)
	return out + Dim(Plural(len(courses), "course")) + "\n"
}

// FormatCourseDetail renders every field of one course.
func FormatCourseDetail(c domain.Course) string {
	var b strings.Builder
	line := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", StyleDim.Render(fmt.Sprintf("%-14s", label)), value)
	}
	line("Department", c.DepartmentName())
	line("Bucket", catalog.CanonicalizeDepartment(c.DepartmentName()))
	line("Term", termText(c.TermLabel))
	line("Level", string(c.Level))
	line("Grades", formatGrades(c.Grades))
	line("Tags", TagBadges(c.Tags))
	line("Prerequisite", domain.StrFromPtr(c.PrerequisiteText))
	if c.PermissionRequired != nil && *c.PermissionRequired {
		line("Permission", StyleYellow.Render("required"))
	}
	if d := c.DescriptionText(); d != "" {
		b.WriteString("\n" + d + "\n")
	}
	return RenderBox(c.Title, strings.TrimRight(b.String(), "\n"))
}

// FormatDepartments lists the canonical buckets with course counts.
func FormatDepartments(courses []domain.Course) string {
	counts := make(map[string]int)
	for _, c := range courses {
		counts[catalog.CanonicalizeDepartment(c.DepartmentName())]++
	}
	rows := [][]string{}
	for _, d := range catalog.CanonicalDepartments() {
		rows = append(rows, []string{d, strconv.Itoa(counts[d])})
	}
	return RenderTable([]string{"DEPARTMENT", "COURSES"}, rows)
}

// FormatLintReport summarizes a catalog lint run.
func FormatLintReport(source string, r catalog.LintReport) string {
	var b strings.Builder
	b.WriteString(Header("Catalog lint") + "\n")
	fmt.Fprintf(&b, "%s %s\n", Dim("source: "), source)
	fmt.Fprintf(&b, "%s %s\n", Dim("shape:  "), r.Shape)
	fmt.Fprintf(&b, "%s %d usable, %d dropped\n", Dim("courses:"), r.Courses, r.Dropped)
	if len(r.Advisories) == 0 {
		b.WriteString(StyleGreen.Render("✔ no advisories") + "\n")
		return b.String()
	}
	b.WriteString(StyleYellow.Render(fmt.Sprintf("%d advisories", len(r.Advisories))) + "\n")
	for _, a := range r.Advisories {
		b.WriteString("  • " + a + "\n")
	}
	if r.Truncated {
		b.WriteString(Dim("  (further advisories omitted)") + "\n")
	}
	return b.String()
}

func termText(l domain.TermLabel) string {
	if l == domain.TermNone {
		return Dim("—")
	}
	return string(l)
}

func formatGrades(grades []int) string {
	if len(grades) == 0 {
		return ""
	}
	parts := make([]string, len(grades))
	for i, g := range grades {
		parts[i] = strconv.Itoa(g)
	}
	return strings.Join(parts, ",")
}
