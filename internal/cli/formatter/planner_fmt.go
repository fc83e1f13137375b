package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/courseplan/internal/domain"
	"github.com/alexanderramin/courseplan/internal/planner"
)

// FormatPlanner renders the four-year grid as one tree per year followed by
// the selected-course list. Placed selections are marked.
func FormatPlanner(state domain.PlannerV2State) string {
	var b strings.Builder
	occupancy := planner.Occupancy(state.Grid)

	for _, y := range domain.Years {
		row := state.Grid[y]
		b.WriteString(Header(fmt.Sprintf("%s  %d/%d", y, occupancy[y], len(row))) + "\n")
		b.WriteString(RenderTree(yearItems(row)))
		b.WriteString("\n")
	}

	b.WriteString(Header("Selected courses") + "\n")
	if len(state.SelectedCourses) == 0 {
		b.WriteString(Dim("Nothing selected yet.") + "\n")
		return b.String()
	}
	for _, it := range state.SelectedCourses {
		placed := planner.Placements(state.Grid, it.Title)
		if len(placed) == 0 {
			b.WriteString("  " + it.Title + "\n")
			continue
		}
		refs := make([]string, len(placed))
		for i, r := range placed {
			refs[i] = r.String()
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", StyleGreen.Render("✔"), it.Title, Dim(strings.Join(refs, " "))))
	}
	return b.String()
}

func yearItems(row []domain.Slot) []TreeItem {
	var items []TreeItem
	for i, s := range row {
		label := fmt.Sprintf("%d. ", i+1)
		last := i == len(row)-1
		switch s.Kind() {
		case domain.SlotEmpty:
			items = append(items, TreeItem{Title: label + "—", Level: 1, IsLast: last, Empty: true})
		case domain.SlotCourse:
			items = append(items, TreeItem{
				Title:  label + s.Course.Title,
				Level:  1,
				IsLast: last,
				Detail: TagBadges(s.Course.Tags),
			})
		case domain.SlotGroup:
			g := s.Group
			items = append(items, TreeItem{
				Title:  label + groupLabel(g),
				Level:  1,
				IsLast: last,
				Detail: Dim(fmt.Sprintf("%d/%d", g.Filled(), g.Size)),
			})
			for j, it := range g.Items {
				sub := TreeItem{Level: 2, IsLast: j == len(g.Items)-1}
				if it == nil {
					sub.Title = fmt.Sprintf("%c. —", 'a'+j)
					sub.Empty = true
				} else {
					sub.Title = fmt.Sprintf("%c. %s", 'a'+j, it.Title)
				}
				items = append(items, sub)
			}
		}
	}
	return items
}

func groupLabel(g *domain.TermGroup) string {
	if g.Size == domain.TermHalf.GroupSize() {
		return "Half courses"
	}
	return "Terms"
}
