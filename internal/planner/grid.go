package planner

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/courseplan/internal/domain"
)

// Validate checks the structure of a grid: exactly the four year
// keys, slotsPerYear slots per year, groups of size 2 or 3 whose item count
// equals their size and whose items carry the matching term label, and no
// all-empty groups.
func Validate(grid domain.Grid, slotsPerYear int) []error {
	var errs []error
	if len(grid) != len(domain.Years) {
		errs = append(errs, fmt.Errorf("grid has %d year keys, want %d", len(grid), len(domain.Years)))
	}
	for _, y := range domain.Years {
		row, ok := grid[y]
		if !ok {
			errs = append(errs, fmt.Errorf("grid is missing year %q", y))
			continue
		}
		if len(row) != slotsPerYear {
			errs = append(errs, fmt.Errorf("%s has %d slots, want %d", y, len(row), slotsPerYear))
		}
		for i, s := range row {
			if s.Course != nil && s.Group != nil {
				errs = append(errs, fmt.Errorf("%s[%d] holds both a course and a group", y, i))
			}
			if s.Group != nil {
				errs = append(errs, validateGroup(fmt.Sprintf("%s[%d]", y, i), s.Group)...)
			}
		}
	}
	return errs
}

func validateGroup(prefix string, g *domain.TermGroup) []error {
	var errs []error
	want := labelForSize(g.Size)
	if want == domain.TermNone {
		errs = append(errs, fmt.Errorf("%s: invalid group size %d", prefix, g.Size))
	}
	if len(g.Items) != g.Size {
		errs = append(errs, fmt.Errorf("%s: group has %d items, size %d", prefix, len(g.Items), g.Size))
	}
	for j, it := range g.Items {
		if it != nil && want != domain.TermNone && it.TermLabel != want {
			errs = append(errs, fmt.Errorf("%s.items[%d]: %q is %q, group holds %q", prefix, j, it.Title, it.TermLabel, want))
		}
	}
	if g.IsEmpty() {
		errs = append(errs, fmt.Errorf("%s: empty group was not collapsed", prefix))
	}
	return errs
}

// Normalize returns a grid that satisfies Validate. Year rows are padded with
// empty slots or truncated to slotsPerYear. Groups with an invalid size
// become empty, items with the wrong label are cleared, items are padded or
// truncated to the group size, and empty groups collapse. Bare courses are
// left as they are, term-like or not.
func Normalize(grid domain.Grid, slotsPerYear int) domain.Grid {
	out := domain.NewGrid(slotsPerYear)
	for _, y := range domain.Years {
		row := grid[y]
		for i := 0; i < slotsPerYear && i < len(row); i++ {
			out[y][i] = normalizeSlot(row[i])
		}
	}
	return out
}

func normalizeSlot(s domain.Slot) domain.Slot {
	s = s.Clone()
	if s.Group == nil {
		return s
	}
	want := labelForSize(s.Group.Size)
	if want == domain.TermNone {
		return domain.Slot{}
	}
	items := make([]*domain.Course, s.Group.Size)
	for j := 0; j < len(items) && j < len(s.Group.Items); j++ {
		if it := s.Group.Items[j]; it != nil && it.TermLabel == want {
			items[j] = it
		}
	}
	g := &domain.TermGroup{Size: s.Group.Size, Items: items}
	if g.IsEmpty() {
		return domain.Slot{}
	}
	return domain.GroupSlot(g)
}

func labelForSize(size int) domain.TermLabel {
	switch size {
	case 3:
		return domain.TermSingle
	case 2:
		return domain.TermHalf
	default:
		return domain.TermNone
	}
}

// Placements returns every cell holding a course titled title.
func Placements(grid domain.Grid, title string) []SlotRef {
	var refs []SlotRef
	for _, y := range domain.Years {
		for i, s := range grid[y] {
			for _, t := range s.Titles() {
				if strings.EqualFold(t, title) {
					refs = append(refs, SlotRef{Year: y, Index: i})
					break
				}
			}
		}
	}
	return refs
}

// Occupancy counts non-empty slots per year.
func Occupancy(grid domain.Grid) map[domain.Year]int {
	out := make(map[domain.Year]int, len(domain.Years))
	for _, y := range domain.Years {
		n := 0
		for _, s := range grid[y] {
			if !s.IsEmpty() {
				n++
			}
		}
		out[y] = n
	}
	return out
}
