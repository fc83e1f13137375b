package testutil

import (
	"github.com/alexanderramin/courseplan/internal/domain"
)

// Course options
type CourseOption func(*domain.Course)

// WithTerm sets the term label and its matching tag.
func WithTerm(label domain.TermLabel) CourseOption {
	return func(c *domain.Course) {
		c.TermLabel = label
		switch label {
		case domain.TermFullYear:
			c.Tags = domain.AddTags(c.Tags, domain.TagYear)
		case domain.TermTwoTerms:
			c.Tags = domain.AddTags(c.Tags, domain.TagTwoTerm)
		case domain.TermHalf:
			c.Tags = domain.AddTags(c.Tags, domain.TagHalf)
		case domain.TermSingle:
			c.Tags = domain.AddTags(c.Tags, domain.TagTerm)
		}
	}
}

func WithDepartment(d string) CourseOption {
	return func(c *domain.Course) {
		c.Department = &d
	}
}

func WithDescription(d string) CourseOption {
	return func(c *domain.Course) {
		c.Description = &d
	}
}

func WithTags(tags ...string) CourseOption {
	return func(c *domain.Course) {
		c.Tags = domain.AddTags(c.Tags, tags...)
	}
}

func WithLevel(l domain.Level) CourseOption {
	return func(c *domain.Course) {
		c.Level = l
		c.Tags = domain.AddTags(c.Tags, string(l))
	}
}

// NewTestCourse returns a full-year-less, untagged course unless options say
// otherwise.
func NewTestCourse(title string, opts ...CourseOption) domain.Course {
	c := domain.Course{Title: title, Tags: []string{}}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// NewTestPlannerState returns a default envelope with the given selections.
func NewTestPlannerState(slotsPerYear int, selected ...string) domain.PlannerV2State {
	st := domain.NewPlannerState(slotsPerYear)
	for _, s := range selected {
		st.SelectedCourses = append(st.SelectedCourses, domain.PlanItem{Title: s})
	}
	return st
}
