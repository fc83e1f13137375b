// Package planner implements the four-year grid engine. Every operation is a
// pure transform: it returns a new grid and leaves its input untouched.
package planner

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/courseplan/internal/domain"
)

var (
	// ErrUnknownYear is returned for a year key outside the four grid years.
	// It is always joined with ErrSlotOutOfRange.
	ErrUnknownYear = errors.New("unknown year")

	// ErrSlotOutOfRange is returned for a slot index outside the year's row.
	ErrSlotOutOfRange = errors.New("slot index out of range")
)

// SlotRef addresses one grid cell.
type SlotRef struct {
	Year  domain.Year
	Index int
}

func (r SlotRef) String() string {
	return fmt.Sprintf("%s[%d]", r.Year, r.Index)
}

// Assign places course into (year, index).
//
// Term-like courses go into a TermGroup sized for their label (3 for "Term",
// 2 for "Half course"). An empty slot, bare course, or group of the other
// size is replaced by a fresh group, discarding what it held. The course
// takes the first empty item; when the group is already full it overwrites
// the last item.
//
// Any other course replaces the whole slot.
func Assign(grid domain.Grid, course domain.Course, year domain.Year, index int) (domain.Grid, error) {
	if err := checkRef(grid, SlotRef{Year: year, Index: index}); err != nil {
		return grid, err
	}
	out := grid.Clone()
	row := out[year]

	if !course.IsTermLike() {
		row[index] = domain.CourseSlot(course)
		return out, nil
	}

	size := course.TermLabel.GroupSize()
	group := row[index].Group
	if group == nil || group.Size != size {
		group = domain.NewTermGroup(size)
	}

	c := course.Clone()
	placed := false
	for i, it := range group.Items {
		if it == nil {
			group.Items[i] = &c
			placed = true
			break
		}
	}
	if !placed {
		// TODO: decide whether a full group should reject or rotate instead of overwriting.
		group.Items[len(group.Items)-1] = &c
	}
	row[index] = domain.GroupSlot(group)
	return out, nil
}

// ClearSlot empties (year, index).
func ClearSlot(grid domain.Grid, year domain.Year, index int) (domain.Grid, error) {
	if err := checkRef(grid, SlotRef{Year: year, Index: index}); err != nil {
		return grid, err
	}
	out := grid.Clone()
	out[year][index] = domain.Slot{}
	return out, nil
}

// ClearSub empties item sub of the TermGroup at (year, index) and collapses
// the slot once every item is empty. It is a no-op when the slot does not hold
// a group or sub is outside the group.
func ClearSub(grid domain.Grid, year domain.Year, index, sub int) (domain.Grid, error) {
	if err := checkRef(grid, SlotRef{Year: year, Index: index}); err != nil {
		return grid, err
	}
	group := grid[year][index].Group
	if group == nil || sub < 0 || sub >= len(group.Items) {
		return grid, nil
	}
	out := grid.Clone()
	g := out[year][index].Group
	g.Items[sub] = nil
	if g.IsEmpty() {
		out[year][index] = domain.Slot{}
	}
	return out, nil
}

// ClearAll empties every slot in scope. The scope is validated first, so an
// invalid ref leaves the grid untouched.
func ClearAll(grid domain.Grid, scope []SlotRef) (domain.Grid, error) {
	for _, ref := range scope {
		if err := checkRef(grid, ref); err != nil {
			return grid, err
		}
	}
	out := grid.Clone()
	for _, ref := range scope {
		out[ref.Year][ref.Index] = domain.Slot{}
	}
	return out, nil
}

// AllSlots returns a scope covering the whole grid.
func AllSlots(grid domain.Grid) []SlotRef {
	var scope []SlotRef
	for _, y := range domain.Years {
		scope = append(scope, YearSlots(grid, y)...)
	}
	return scope
}

// YearSlots returns a scope covering one year.
func YearSlots(grid domain.Grid, year domain.Year) []SlotRef {
	row := grid[year]
	scope := make([]SlotRef, 0, len(row))
	for i := range row {
		scope = append(scope, SlotRef{Year: year, Index: i})
	}
	return scope
}

func checkRef(grid domain.Grid, ref SlotRef) error {
	row, ok := grid[ref.Year]
	if !ok {
		return fmt.Errorf("%w: %w: %q", ErrSlotOutOfRange, ErrUnknownYear, ref.Year)
	}
	if ref.Index < 0 || ref.Index >= len(row) {
		return fmt.Errorf("%w: %s (have %d slots)", ErrSlotOutOfRange, ref, len(row))
	}
	return nil
}
