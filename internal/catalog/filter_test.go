package catalog

import (
	"testing"

	"github.com/alexanderramin/courseplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterFixture() []domain.Course {
	return FlattenDatabase([]byte(`[
	  {"title":"CL Calculus","department":"Mathematics","rigor":3,"term":"Full year"},
	  {"title":"Geometry","department":"Mathematics","description":"Proofs and constructions.","term":"Full year"},
	  {"title":"Intro to Python","department":"Computer Science","gesc":true,"term":"Term"},
	  {"title":"Ethics","department":"Philosophy","ppr":true,"gesc":true,"term":"Half course"},
	  {"title":"Chemistry","department":"Science","rigor":2,"term":"Two terms"},
	  {"title":"Ceramics","department":"Visual Arts","term":"Term"}
	]`))
}

func titles(cs []domain.Course) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Title)
	}
	return out
}

func TestFilterCourses_EmptySpecReturnsAllInOrder(t *testing.T) {
	courses := filterFixture()
	got := FilterCourses(courses, FilterSpec{Department: DeptAll})
	assert.Equal(t, titles(courses), titles(got))

	got = FilterCourses(courses, FilterSpec{})
	assert.Equal(t, titles(courses), titles(got))
}

func TestFilterCourses_CLToggleExcludesNonCL(t *testing.T) {
	got := FilterCourses(filterFixture(), FilterSpec{Tags: TagToggles{CL: true}})
	require.Len(t, got, 1)
	for _, c := range got {
		assert.True(t, c.HasTag("CL"))
	}
	assert.Equal(t, "CL Calculus", got[0].Title)
}

func TestFilterCourses_TagTogglesAreConjunctive(t *testing.T) {
	got := FilterCourses(filterFixture(), FilterSpec{Tags: TagToggles{GESC: true}})
	assert.Equal(t, []string{"Intro to Python", "Ethics"}, titles(got))

	got = FilterCourses(filterFixture(), FilterSpec{Tags: TagToggles{GESC: true, PPR: true}})
	assert.Equal(t, []string{"Ethics"}, titles(got))
}

func TestFilterCourses_ExtendedToggles(t *testing.T) {
	got := FilterCourses(filterFixture(), FilterSpec{Tags: TagToggles{FullYear: true}})
	assert.Equal(t, []string{"CL Calculus", "Geometry"}, titles(got))

	got = FilterCourses(filterFixture(), FilterSpec{Tags: TagToggles{Half: true}})
	assert.Equal(t, []string{"Ethics"}, titles(got))

	got = FilterCourses(filterFixture(), FilterSpec{Tags: TagToggles{ADV: true}})
	assert.Equal(t, []string{"Chemistry"}, titles(got))
}

func TestFilterCourses_QueryMatchesTitleAndDepartment(t *testing.T) {
	got := FilterCourses(filterFixture(), FilterSpec{Query: "  PYTHON "})
	assert.Equal(t, []string{"Intro to Python"}, titles(got))

	got = FilterCourses(filterFixture(), FilterSpec{Query: "mathem"})
	assert.Equal(t, []string{"CL Calculus", "Geometry"}, titles(got))
}

func TestFilterCourses_DescriptionsOnlyWhenEnabled(t *testing.T) {
	spec := FilterSpec{Query: "proofs"}
	assert.Empty(t, FilterCourses(filterFixture(), spec))

	spec.IncludeDescriptions = true
	assert.Equal(t, []string{"Geometry"}, titles(FilterCourses(filterFixture(), spec)))
}

func TestFilterCourses_CanonicalDepartment(t *testing.T) {
	got := FilterCourses(filterFixture(), FilterSpec{Department: DeptHPRSS})
	assert.Equal(t, []string{"Ethics"}, titles(got))

	got = FilterCourses(filterFixture(), FilterSpec{Department: DeptScience})
	assert.Equal(t, []string{"Chemistry"}, titles(got), "computer science must not land in science")

	got = FilterCourses(filterFixture(), FilterSpec{Department: DeptArts})
	assert.Equal(t, []string{"Ceramics"}, titles(got))
}

func TestFilterCourses_ExactDepartment(t *testing.T) {
	got := FilterCourses(filterFixture(), FilterSpec{Department: "philosophy", DeptMatch: MatchExact})
	assert.Equal(t, []string{"Ethics"}, titles(got))

	got = FilterCourses(filterFixture(), FilterSpec{Department: DeptHPRSS, DeptMatch: MatchExact})
	assert.Empty(t, got)
}

func TestFilterCourses_DoesNotMutateInput(t *testing.T) {
	courses := filterFixture()
	before := titles(courses)
	_ = FilterCourses(courses, FilterSpec{Tags: TagToggles{CL: true}, Query: "calc"})
	assert.Equal(t, before, titles(courses))
}

func TestFindByTitle(t *testing.T) {
	c, ok := FindByTitle(filterFixture(), "geometry")
	require.True(t, ok)
	assert.Equal(t, "Geometry", c.Title)

	_, ok = FindByTitle(filterFixture(), "Astronomy")
	assert.False(t, ok)
}
