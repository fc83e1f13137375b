package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a tree. Level 0 lines are roots.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Empty  bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree draws items with box-drawing connectors. Empty items are dimmed
// and details are right-aligned in one column.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	widest := 0
	for i, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}
		title := StyleFg.Render(item.Title)
		if item.Empty {
			title = StyleDim.Render(item.Title)
		}
		contents[i] = StyleDim.Render(prefix) + title
		widest = max(widest, lipgloss.Width(contents[i]))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(contents[i])
		if item.Detail != "" {
			b.WriteString(strings.Repeat(" ", widest-lipgloss.Width(contents[i])+colGap))
			b.WriteString(item.Detail)
		}
		b.WriteString("\n")
	}
	return b.String()
}
