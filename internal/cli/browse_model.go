package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/courseplan/internal/catalog"
	"github.com/alexanderramin/courseplan/internal/cli/formatter"
	"github.com/alexanderramin/courseplan/internal/domain"
	"github.com/alexanderramin/courseplan/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type browseKeys struct {
	Quit       key.Binding
	Focus      key.Binding
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Dept       key.Binding
	Desc       key.Binding
	GESC       key.Binding
	PPR        key.Binding
	CL         key.Binding
	ADV        key.Binding
	FullYear   key.Binding
	Half       key.Binding
	ClearQuery key.Binding
}

func defaultBrowseKeys() browseKeys {
	return browseKeys{
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Focus:      key.NewBinding(key.WithKeys("tab", "/"), key.WithHelp("tab", "search/list")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "select")),
		Dept:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "department")),
		Desc:       key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "search descriptions")),
		GESC:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "GESC")),
		PPR:        key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "PPR")),
		CL:         key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "CL")),
		ADV:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "ADV")),
		FullYear:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "full year")),
		Half:       key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "half")),
		ClearQuery: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear search")),
	}
}

// browseModel is the interactive catalog browser. The search box and the
// course list take turns holding focus; letter keys toggle filters only while
// the list is focused.
type browseModel struct {
	ctx     context.Context
	catalog service.CatalogService
	planner service.PlannerService
	keys    browseKeys

	courses  []domain.Course
	filtered []domain.Course
	selected map[string]bool

	search      textinput.Model
	searching   bool
	includeDesc bool
	deptIndex   int // 0 is All, then CanonicalDepartments order
	tags        catalog.TagToggles

	cursor int
	height int
	status string
	err    error
}

func newBrowseModel(ctx context.Context, courses []domain.Course, cat service.CatalogService, pl service.PlannerService) *browseModel {
	ti := textinput.New()
	ti.Placeholder = "search titles and departments"
	ti.Prompt = "/ "
	ti.CharLimit = 80

	m := &browseModel{
		ctx:      ctx,
		catalog:  cat,
		planner:  pl,
		keys:     defaultBrowseKeys(),
		courses:  courses,
		selected: map[string]bool{},
		search:   ti,
		height:   20,
	}
	for _, it := range pl.State(ctx).SelectedCourses {
		m.selected[it.Title] = true
	}
	m.refilter()
	return m
}

func (m *browseModel) Init() tea.Cmd { return nil }

func departmentChoices() []string {
	return append([]string{catalog.DeptAll}, catalog.CanonicalDepartments()...)
}

func (m *browseModel) spec() catalog.FilterSpec {
	return catalog.FilterSpec{
		Query:               m.search.Value(),
		IncludeDescriptions: m.includeDesc,
		Department:          departmentChoices()[m.deptIndex],
		Tags:                m.tags,
	}
}

func (m *browseModel) refilter() {
	m.filtered = m.catalog.Filter(m.courses, m.spec())
	if m.cursor >= len(m.filtered) {
		m.cursor = max(len(m.filtered)-1, 0)
	}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refilter()
	return m, cmd
}

func (m *browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Focus):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, k.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case key.Matches(msg, k.Toggle):
		m.toggleSelected()
	case key.Matches(msg, k.Dept):
		m.deptIndex = (m.deptIndex + 1) % len(departmentChoices())
		m.refilter()
	case key.Matches(msg, k.Desc):
		m.includeDesc = !m.includeDesc
		m.refilter()
	case key.Matches(msg, k.GESC):
		m.tags.GESC = !m.tags.GESC
		m.refilter()
	case key.Matches(msg, k.PPR):
		m.tags.PPR = !m.tags.PPR
		m.refilter()
	case key.Matches(msg, k.CL):
		m.tags.CL = !m.tags.CL
		m.refilter()
	case key.Matches(msg, k.ADV):
		m.tags.ADV = !m.tags.ADV
		m.refilter()
	case key.Matches(msg, k.FullYear):
		m.tags.FullYear = !m.tags.FullYear
		m.refilter()
	case key.Matches(msg, k.Half):
		m.tags.Half = !m.tags.Half
		m.refilter()
	case key.Matches(msg, k.ClearQuery):
		m.search.SetValue("")
		m.refilter()
	}
	return m, nil
}

func (m *browseModel) toggleSelected() {
	if len(m.filtered) == 0 {
		return
	}
	title := m.filtered[m.cursor].Title
	var err error
	if m.selected[title] {
		_, err = m.planner.Unselect(m.ctx, title)
		if err == nil {
			delete(m.selected, title)
			m.status = "Removed " + title
		}
	} else {
		_, err = m.planner.Select(m.ctx, title)
		if err == nil {
			m.selected[title] = true
			m.status = "Selected " + title
		}
	}
	m.err = err
}

func (m *browseModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Course catalog") + "\n")
	b.WriteString(m.search.View() + "\n")
	b.WriteString(m.filterLine() + "\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(formatter.Dim("No courses match.") + "\n")
	}
	start := 0
	if m.cursor >= m.height {
		start = m.cursor - m.height + 1
	}
	end := min(start+m.height, len(m.filtered))
	for i := start; i < end; i++ {
		c := m.filtered[i]
		cursor := "  "
		if i == m.cursor && !m.searching {
			cursor = formatter.StyleHeader.Render("▸ ")
		}
		mark := "[ ]"
		if m.selected[c.Title] {
			mark = formatter.StyleGreen.Render("[x]")
		}
		fmt.Fprintf(&b, "%s%s %s  %s\n", cursor, mark, c.Title, formatter.TagBadges(c.Tags))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n", formatter.Dim(fmt.Sprintf("%d of %d courses, %d selected", len(m.filtered), len(m.courses), len(m.selected))))
	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render(m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString(formatter.Dim(m.status) + "\n")
	}
	b.WriteString(formatter.Dim(m.helpLine()) + "\n")
	return b.String()
}

func (m *browseModel) filterLine() string {
	on := func(label string, v bool) string {
		if v {
			return formatter.StyleGreen.Render("●" + label)
		}
		return formatter.Dim("○" + label)
	}
	parts := []string{
		"dept: " + formatter.Bold(departmentChoices()[m.deptIndex]),
		on("desc", m.includeDesc),
		on(domain.TagGESC, m.tags.GESC),
		on(domain.TagPPR, m.tags.PPR),
		on(domain.TagCL, m.tags.CL),
		on(domain.TagADV, m.tags.ADV),
		on(domain.TagYear, m.tags.FullYear),
		on(domain.TagHalf, m.tags.Half),
	}
	return strings.Join(parts, "  ")
}

func (m *browseModel) helpLine() string {
	bindings := []key.Binding{m.keys.Focus, m.keys.Toggle, m.keys.Dept, m.keys.GESC, m.keys.PPR, m.keys.CL, m.keys.ADV, m.keys.FullYear, m.keys.Half, m.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
