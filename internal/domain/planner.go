package domain

import (
	"bytes"
	"encoding/json"
)

// TermGroup occupies one grid slot and holds up to Size term-like courses.
// len(Items) == Size always holds.
type TermGroup struct {
	Size  int       `json:"size"`
	Items []*Course `json:"items"`
}

// NewTermGroup returns an empty group of the given size.
func NewTermGroup(size int) *TermGroup {
	return &TermGroup{Size: size, Items: make([]*Course, size)}
}

// IsEmpty reports whether every item is nil.
func (g *TermGroup) IsEmpty() bool {
	for _, it := range g.Items {
		if it != nil {
			return false
		}
	}
	return true
}

// Filled returns the number of non-nil items.
func (g *TermGroup) Filled() int {
	n := 0
	for _, it := range g.Items {
		if it != nil {
			n++
		}
	}
	return n
}

func (g *TermGroup) clone() *TermGroup {
	out := &TermGroup{Size: g.Size, Items: make([]*Course, len(g.Items))}
	for i, it := range g.Items {
		if it != nil {
			c := it.Clone()
			out.Items[i] = &c
		}
	}
	return out
}

type SlotKind int

const (
	SlotEmpty SlotKind = iota
	SlotCourse
	SlotGroup
)

// Slot is one grid cell: empty, a bare course, or a TermGroup.
// The zero value is an empty slot. At most one of Course and Group is set.
type Slot struct {
	Course *Course
	Group  *TermGroup
}

// CourseSlot wraps a bare course.
func CourseSlot(c Course) Slot {
	cc := c.Clone()
	return Slot{Course: &cc}
}

// GroupSlot wraps a term group.
func GroupSlot(g *TermGroup) Slot {
	return Slot{Group: g}
}

func (s Slot) Kind() SlotKind {
	switch {
	case s.Group != nil:
		return SlotGroup
	case s.Course != nil:
		return SlotCourse
	default:
		return SlotEmpty
	}
}

func (s Slot) IsEmpty() bool { return s.Kind() == SlotEmpty }

// Clone deep-copies the slot.
func (s Slot) Clone() Slot {
	switch s.Kind() {
	case SlotGroup:
		return Slot{Group: s.Group.clone()}
	case SlotCourse:
		c := s.Course.Clone()
		return Slot{Course: &c}
	default:
		return Slot{}
	}
}

// Titles returns the titles of every course held by the slot.
func (s Slot) Titles() []string {
	switch s.Kind() {
	case SlotCourse:
		return []string{s.Course.Title}
	case SlotGroup:
		var out []string
		for _, it := range s.Group.Items {
			if it != nil {
				out = append(out, it.Title)
			}
		}
		return out
	default:
		return nil
	}
}

func (s Slot) MarshalJSON() ([]byte, error) {
	switch s.Kind() {
	case SlotGroup:
		return json.Marshal(s.Group)
	case SlotCourse:
		return json.Marshal(s.Course)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null, a course object, or a {size, items} group.
// Anything else decodes to an empty slot; only invalid JSON is an error.
func (s *Slot) UnmarshalJSON(data []byte) error {
	*s = Slot{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		if json.Valid(trimmed) {
			return nil
		}
		return err
	}
	if rawItems, ok := probe["items"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(rawItems, &items); err != nil {
			return nil
		}
		// A missing, non-numeric or non-positive size falls back to the item count.
		size := len(items)
		if rawSize, ok := probe["size"]; ok {
			var n int
			if err := json.Unmarshal(rawSize, &n); err == nil && n > 0 {
				size = n
			}
		}
		g := &TermGroup{Size: size, Items: make([]*Course, 0, len(items))}
		for _, raw := range items {
			g.Items = append(g.Items, decodeCourse(raw))
		}
		s.Group = g
		return nil
	}
	s.Course = decodeCourse(trimmed)
	return nil
}

func decodeCourse(raw json.RawMessage) *Course {
	var c Course
	if err := json.Unmarshal(raw, &c); err != nil || c.Title == "" {
		return nil
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c
}

// Grid maps each year to its ordered slots.
type Grid map[Year][]Slot

// NewGrid returns an all-empty grid with slotsPerYear slots in every year.
func NewGrid(slotsPerYear int) Grid {
	g := make(Grid, len(Years))
	for _, y := range Years {
		g[y] = make([]Slot, slotsPerYear)
	}
	return g
}

// Clone deep-copies the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for y, row := range g {
		cp := make([]Slot, len(row))
		for i, s := range row {
			cp[i] = s.Clone()
		}
		out[y] = cp
	}
	return out
}

// PlannerV2State is the persisted planner envelope.
type PlannerV2State struct {
	Version         int        `json:"version"`
	SelectedCourses []PlanItem `json:"selectedCourses"`
	Grid            Grid       `json:"grid"`
}

// NewPlannerState returns the default envelope: no selections, empty grid.
func NewPlannerState(slotsPerYear int) PlannerV2State {
	return PlannerV2State{
		Version:         PlannerVersion,
		SelectedCourses: []PlanItem{},
		Grid:            NewGrid(slotsPerYear),
	}
}

// IsSelected reports whether a plan item with this title exists.
func (p PlannerV2State) IsSelected(title string) bool {
	for _, it := range p.SelectedCourses {
		if it.Title == title {
			return true
		}
	}
	return false
}
