package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawCourse is one untrusted catalog entry. Optional fields are nil when the
// source omitted them or supplied a value of the wrong type.
type RawCourse struct {
	Title        string
	Description  *string
	Department   *string
	Rigor        *int
	GESC         *bool
	PPR          *bool
	Term         *string
	Duration     *string
	Grades       []int
	Prerequisite *Prerequisite
}

// Prerequisite is the [text|null, permissionRequired] tuple.
type Prerequisite struct {
	Text               *string
	PermissionRequired *bool
}

// Shape identifies which of the known catalog layouts a payload uses.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeDepartmentBlocks
	ShapeFlatArray
	ShapeCoursesWrapper
)

func (s Shape) String() string {
	switch s {
	case ShapeDepartmentBlocks:
		return "departments"
	case ShapeFlatArray:
		return "flat-array"
	case ShapeCoursesWrapper:
		return "courses-wrapper"
	default:
		return "unknown"
	}
}

// RawCatalog is a payload whose shape has been detected once. Entries are
// kept as raw JSON until flattening so a bad entry only drops itself.
type RawCatalog struct {
	Shape   Shape
	Blocks  []DepartmentBlock
	Courses []json.RawMessage
}

// DepartmentBlock is one element of the "departments" array. Exactly one of
// Courses (array form) and Grouped (map form) is populated.
type DepartmentBlock struct {
	Department string
	Courses    []json.RawMessage
	Grouped    []KeyedCourses
}

// KeyedCourses is one key of a map-shaped course collection, in document order.
type KeyedCourses struct {
	Key     string
	Courses []json.RawMessage
}

// ParseCatalog detects the payload shape in priority order: department
// blocks, bare array, courses wrapper. Invalid JSON or an unrecognized layout
// yields ShapeUnknown; it never returns an error.
func ParseCatalog(data []byte) RawCatalog {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return RawCatalog{Shape: ShapeUnknown}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err == nil {
		if raw, ok := top["departments"]; ok {
			if blocks, ok := asArray(raw); ok {
				return RawCatalog{Shape: ShapeDepartmentBlocks, Blocks: parseBlocks(blocks)}
			}
		}
	}

	if arr, ok := asArray(trimmed); ok {
		return RawCatalog{Shape: ShapeFlatArray, Courses: arr}
	}

	if top != nil {
		if raw, ok := top["courses"]; ok {
			if arr, ok := asArray(raw); ok {
				return RawCatalog{Shape: ShapeCoursesWrapper, Courses: arr}
			}
		}
	}

	return RawCatalog{Shape: ShapeUnknown}
}

func parseBlocks(raw []json.RawMessage) []DepartmentBlock {
	blocks := make([]DepartmentBlock, 0, len(raw))
	for _, r := range raw {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(r, &fields); err != nil {
			continue
		}
		block := DepartmentBlock{}
		if d := looseString(fields["department"]); d != nil {
			block.Department = *d
		}
		coursesRaw, ok := fields["courses"]
		if !ok {
			continue
		}
		if arr, ok := asArray(coursesRaw); ok {
			block.Courses = arr
		} else if obj, ok := orderedObject(coursesRaw); ok {
			for _, f := range obj {
				arr, ok := asArray(f.value)
				if !ok {
					continue
				}
				block.Grouped = append(block.Grouped, KeyedCourses{Key: f.key, Courses: arr})
			}
		} else {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

type objectField struct {
	key   string
	value json.RawMessage
}

// orderedObject decodes a JSON object's members in document order.
func orderedObject(raw json.RawMessage) ([]objectField, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, false
	}
	var out []objectField
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := kt.(string)
		if !ok {
			return nil, false
		}
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, false
		}
		out = append(out, objectField{key: key, value: val})
	}
	return out, true
}

func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(trimmed, &arr); err != nil {
		return nil, false
	}
	return arr, true
}

// DecodeRawCourse leniently decodes one entry. It reports false when the
// entry is not an object or has no usable title.
func DecodeRawCourse(raw json.RawMessage) (RawCourse, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return RawCourse{}, false
	}
	title := looseString(fields["title"])
	if title == nil || strings.TrimSpace(*title) == "" {
		return RawCourse{}, false
	}
	rc := RawCourse{
		Title:        strings.TrimSpace(*title),
		Description:  looseString(fields["description"]),
		Department:   looseString(fields["department"]),
		Rigor:        looseInt(fields["rigor"]),
		GESC:         looseBool(fields["gesc"]),
		PPR:          looseBool(fields["ppr"]),
		Term:         looseString(fields["term"]),
		Duration:     looseString(fields["duration"]),
		Grades:       looseGrades(fields["grades"]),
		Prerequisite: loosePrerequisite(fields["prerequisite"]),
	}
	return rc, true
}

func looseString(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func looseInt(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f != math.Trunc(f) {
			return nil
		}
		n := int(f)
		return &n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return &n
		}
	}
	return nil
}

func looseBool(raw json.RawMessage) *bool {
	if len(raw) == 0 {
		return nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return &b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "y", "1":
			v := true
			return &v
		case "false", "no", "n", "0":
			v := false
			return &v
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		v := f != 0
		return &v
	}
	return nil
}

// looseGrades keeps only grade levels 9 through 12.
func looseGrades(raw json.RawMessage) []int {
	if len(raw) == 0 {
		return nil
	}
	items, ok := asArray(raw)
	if !ok {
		if n := looseInt(raw); n != nil && validGrade(*n) {
			return []int{*n}
		}
		return nil
	}
	var out []int
	for _, it := range items {
		if n := looseInt(it); n != nil && validGrade(*n) {
			out = append(out, *n)
		}
	}
	return out
}

func validGrade(n int) bool { return n >= 9 && n <= 12 }

func loosePrerequisite(raw json.RawMessage) *Prerequisite {
	if len(raw) == 0 {
		return nil
	}
	if items, ok := asArray(raw); ok {
		if len(items) == 0 {
			return nil
		}
		p := &Prerequisite{Text: looseString(items[0])}
		if len(items) > 1 {
			p.PermissionRequired = looseBool(items[1])
		}
		if p.Text == nil && p.PermissionRequired == nil {
			return nil
		}
		return p
	}
	if s := looseString(raw); s != nil {
		return &Prerequisite{Text: s}
	}
	return nil
}
