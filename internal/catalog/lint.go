package catalog

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// rawCourseSchema describes a well-formed entry. Lint results are advisory;
// loading never depends on them.
const rawCourseSchema = `{
  "type": "object",
  "required": ["title"],
  "properties": {
    "title": { "type": "string", "minLength": 1 },
    "description": { "type": "string" },
    "department": { "type": "string" },
    "rigor": { "type": "integer", "enum": [1, 2, 3] },
    "gesc": { "type": "boolean" },
    "ppr": { "type": "boolean" },
    "term": { "type": "string" },
    "duration": { "type": "string" },
    "grades": { "type": "array", "items": { "type": "integer", "minimum": 9, "maximum": 12 } },
    "prerequisite": {
      "type": "array",
      "minItems": 2,
      "maxItems": 2,
      "items": [
        { "type": ["string", "null"] },
        { "type": "boolean" }
      ]
    }
  }
}`

var shapeSchemas = map[Shape]string{
	ShapeDepartmentBlocks: `{
  "type": "object",
  "required": ["departments"],
  "definitions": { "course": ` + rawCourseSchema + ` },
  "properties": {
    "departments": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["courses"],
        "properties": {
          "department": { "type": "string" },
          "courses": {
            "oneOf": [
              { "type": "array", "items": { "$ref": "#/definitions/course" } },
              { "type": "object", "additionalProperties": { "type": "array", "items": { "$ref": "#/definitions/course" } } }
            ]
          }
        }
      }
    }
  }
}`,
	ShapeFlatArray: `{
  "type": "array",
  "definitions": { "course": ` + rawCourseSchema + ` },
  "items": { "$ref": "#/definitions/course" }
}`,
	ShapeCoursesWrapper: `{
  "type": "object",
  "required": ["courses"],
  "definitions": { "course": ` + rawCourseSchema + ` },
  "properties": {
    "courses": { "type": "array", "items": { "$ref": "#/definitions/course" } }
  }
}`,
}

// maxAdvisories caps how many schema findings a report carries.
const maxAdvisories = 50

// LintReport summarizes how a payload will be interpreted.
type LintReport struct {
	Shape      Shape
	Courses    int
	Dropped    int
	Advisories []string
	Truncated  bool
}

// Lint reports the detected shape, course counts, and schema advisories.
func Lint(data []byte) LintReport {
	cat := ParseCatalog(data)
	courses, dropped := Flatten(cat)
	report := LintReport{Shape: cat.Shape, Courses: len(courses), Dropped: dropped}

	schema, ok := shapeSchemas[cat.Shape]
	if !ok {
		report.Advisories = []string{"payload matches none of the known catalog shapes"}
		return report
	}

	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		report.Advisories = []string{fmt.Sprintf("schema check skipped: %v", err)}
		return report
	}
	for _, desc := range result.Errors() {
		if len(report.Advisories) == maxAdvisories {
			report.Truncated = true
			break
		}
		report.Advisories = append(report.Advisories, desc.String())
	}
	return report
}
