package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeDepartment(t *testing.T) {
	cases := map[string]string{
		"English":                          DeptEnglish,
		"  ENGLISH DEPARTMENT ":            DeptEnglish,
		"Modern Languages":                 DeptLanguages,
		"Classics":                         DeptLanguages,
		"Latin":                            DeptLanguages,
		"HPRSS":                            DeptHPRSS,
		"History & Social Sciences":        DeptHPRSS,
		"Philosophy and Religious Studies": DeptHPRSS,
		"Computer Science":                 DeptCS,
		"Mathematics":                      DeptMath,
		"Math":                             DeptMath,
		"Science":                          DeptScience,
		"Biology":                          DeptScience,
		"Visual Arts":                      DeptArts,
		"Music":                            DeptArts,
		"Studio Art":                       DeptArts,
		"Athletics Department":             DeptOther,
		"":                                 DeptOther,
		"   ":                              DeptOther,
	}
	for in, want := range cases {
		assert.Equal(t, want, CanonicalizeDepartment(in), "input %q", in)
	}
}

func TestCanonicalizeDepartment_ComputerScienceIsNotScience(t *testing.T) {
	assert.Equal(t, DeptCS, CanonicalizeDepartment("Computer Science"))
	assert.Equal(t, DeptCS, CanonicalizeDepartment("computer science & engineering"))
	assert.NotEqual(t, DeptScience, CanonicalizeDepartment("Computer Science"))
}

func TestCanonicalizeDepartment_SocialScienceIsNotScience(t *testing.T) {
	assert.Equal(t, DeptHPRSS, CanonicalizeDepartment("Social Science"))
	assert.Equal(t, DeptHPRSS, CanonicalizeDepartment("Political Science"))
	assert.Equal(t, DeptHPRSS, CanonicalizeDepartment("Civics"))
	assert.Equal(t, DeptHPRSS, CanonicalizeDepartment("Sociology"))
	assert.Equal(t, DeptCS, CanonicalizeDepartment("Data Science"))
}

func TestCanonicalDepartments_OtherLast(t *testing.T) {
	depts := CanonicalDepartments()
	assert.Len(t, depts, 8)
	assert.Equal(t, DeptEnglish, depts[0])
	assert.Equal(t, DeptOther, depts[len(depts)-1])
}

func TestParseDepartment(t *testing.T) {
	b, ok := ParseDepartment("")
	assert.True(t, ok)
	assert.Equal(t, DeptAll, b)

	b, ok = ParseDepartment("cs")
	assert.True(t, ok)
	assert.Equal(t, DeptCS, b)

	b, ok = ParseDepartment("mathematics")
	assert.True(t, ok)
	assert.Equal(t, DeptMath, b)

	b, ok = ParseDepartment("other")
	assert.True(t, ok)
	assert.Equal(t, DeptOther, b)

	_, ok = ParseDepartment("underwater basket weaving")
	assert.False(t, ok)
}
