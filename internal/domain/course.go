package domain

import "strings"

// Course is the canonical catalog record produced by the flattener.
// Tags, Level and TermLabel are derived from the raw entry and never edited.
type Course struct {
	Title              string    `json:"title"`
	Description        *string   `json:"description,omitempty"`
	Department         *string   `json:"department,omitempty"`
	Tags               []string  `json:"tags"`
	Level              Level     `json:"level,omitempty"`
	Grades             []int     `json:"grades,omitempty"`
	PermissionRequired *bool     `json:"permissionRequired,omitempty"`
	TermLabel          TermLabel `json:"termLabel,omitempty"`
	PrerequisiteText   *string   `json:"prerequisiteText,omitempty"`
}

// HasTag reports whether the course carries tag (case-insensitive).
func (c Course) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// DepartmentName returns the original department text, or "".
func (c Course) DepartmentName() string {
	return StrFromPtr(c.Department)
}

// DescriptionText returns the description, or "".
func (c Course) DescriptionText() string {
	return StrFromPtr(c.Description)
}

// IsTermLike reports whether the course is grouped when placed in the grid.
func (c Course) IsTermLike() bool {
	return c.TermLabel.IsTermLike()
}

// Clone returns a deep copy so grids never share slices with the catalog.
func (c Course) Clone() Course {
	out := c
	out.Tags = append([]string{}, c.Tags...)
	if c.Grades != nil {
		out.Grades = append([]int(nil), c.Grades...)
	}
	out.Description = clonePtr(c.Description)
	out.Department = clonePtr(c.Department)
	out.PrerequisiteText = clonePtr(c.PrerequisiteText)
	out.PermissionRequired = clonePtr(c.PermissionRequired)
	return out
}

// AddTags appends each tag not already present, preserving first-seen order.
func AddTags(tags []string, add ...string) []string {
	for _, a := range add {
		if a == "" {
			continue
		}
		seen := false
		for _, t := range tags {
			if t == a {
				seen = true
				break
			}
		}
		if !seen {
			tags = append(tags, a)
		}
	}
	return tags
}

// PlanItem is a loose reference to a course by title.
type PlanItem struct {
	Title string `json:"title"`
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
