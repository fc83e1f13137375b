package catalog

import (
	"strings"

	"github.com/alexanderramin/courseplan/internal/domain"
)

// DeriveTags computes the program tags and rigor level of a raw course.
// A "CL " title prefix or rigor >= 3 marks college level; rigor 2 marks
// advanced. Missing rigor counts as 1.
func DeriveTags(rc RawCourse) ([]string, domain.Level) {
	tags := []string{}
	if domain.BoolFromPtrWithDefault(false, rc.GESC) {
		tags = domain.AddTags(tags, domain.TagGESC)
	}
	if domain.BoolFromPtrWithDefault(false, rc.PPR) {
		tags = domain.AddTags(tags, domain.TagPPR)
	}

	rigor := domain.IntFromPtrWithDefault(1, rc.Rigor)
	title := strings.ToUpper(strings.TrimSpace(rc.Title))

	level := domain.LevelNone
	switch {
	case strings.HasPrefix(title, "CL ") || rigor >= 3:
		tags = domain.AddTags(tags, domain.TagCL)
		level = domain.LevelCollege
	case rigor == 2:
		tags = domain.AddTags(tags, domain.TagADV)
		level = domain.LevelAdvanced
	}
	return tags, level
}
