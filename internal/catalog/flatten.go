package catalog

import (
	"encoding/json"

	"github.com/alexanderramin/courseplan/internal/domain"
)

// FlattenDatabase parses a raw catalog payload and returns its canonical
// courses in input order. Malformed input degrades to fewer (or zero) courses.
func FlattenDatabase(data []byte) []domain.Course {
	courses, _ := Flatten(ParseCatalog(data))
	return courses
}

// Flatten walks a shape-detected catalog. It also returns how many entries
// were dropped for lacking a usable title.
func Flatten(cat RawCatalog) ([]domain.Course, int) {
	f := flattener{courses: []domain.Course{}}
	switch cat.Shape {
	case ShapeDepartmentBlocks:
		for _, block := range cat.Blocks {
			f.addAll(block.Courses, block.Department)
			for _, group := range block.Grouped {
				f.addAll(group.Courses, domain.CoalesceStr(block.Department, group.Key))
			}
		}
	case ShapeFlatArray, ShapeCoursesWrapper:
		f.addAll(cat.Courses, "")
	}
	return f.courses, f.dropped
}

type flattener struct {
	courses []domain.Course
	dropped int
}

func (f *flattener) addAll(entries []json.RawMessage, fallbackDept string) {
	for _, raw := range entries {
		rc, ok := DecodeRawCourse(raw)
		if !ok {
			f.dropped++
			continue
		}
		f.courses = append(f.courses, NormalizeCourse(rc, fallbackDept))
	}
}

// NormalizeCourse converts one raw course. The course's own department wins
// over fallbackDept.
func NormalizeCourse(rc RawCourse, fallbackDept string) domain.Course {
	tags, level := DeriveTags(rc)
	label, termTag := NormalizeTerm(domain.StrFromPtr(rc.Term), domain.StrFromPtr(rc.Duration))
	tags = domain.AddTags(tags, termTag)

	c := domain.Course{
		Title:       rc.Title,
		Description: rc.Description,
		Department:  domain.StrPtr(domain.CoalesceStr(domain.StrFromPtr(rc.Department), fallbackDept)),
		Tags:        tags,
		Level:       level,
		TermLabel:   label,
	}
	if len(rc.Grades) > 0 {
		c.Grades = append([]int(nil), rc.Grades...)
	}
	if rc.Prerequisite != nil {
		c.PrerequisiteText = rc.Prerequisite.Text
		c.PermissionRequired = rc.Prerequisite.PermissionRequired
	}
	return c
}
