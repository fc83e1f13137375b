package service

import (
	"context"
	"net/http"

	"github.com/alexanderramin/courseplan/internal/catalog"
	"github.com/alexanderramin/courseplan/internal/domain"
	"github.com/alexanderramin/courseplan/internal/planner"
)

// LoadedCatalog is one successful catalog retrieval.
type LoadedCatalog struct {
	Raw     []byte
	Source  string
	Shape   catalog.Shape
	Courses []domain.Course
	Dropped int
}

type CatalogService interface {
	// Load fetches and flattens the catalog once; later calls reuse it.
	Load(ctx context.Context) (*LoadedCatalog, error)
	Filter(courses []domain.Course, spec catalog.FilterSpec) []domain.Course
	Find(courses []domain.Course, title string) (domain.Course, bool)
	Lint(ctx context.Context) (catalog.LintReport, error)
}

// PlannerService owns the in-memory planner state and persists it after
// every successful mutation. Each mutation returns the new state.
type PlannerService interface {
	State(ctx context.Context) domain.PlannerV2State
	Select(ctx context.Context, title string) (domain.PlannerV2State, error)
	Unselect(ctx context.Context, title string) (domain.PlannerV2State, error)
	Assign(ctx context.Context, course domain.Course, year domain.Year, index int) (domain.PlannerV2State, error)
	ClearSlot(ctx context.Context, year domain.Year, index int) (domain.PlannerV2State, error)
	ClearSub(ctx context.Context, year domain.Year, index, sub int) (domain.PlannerV2State, error)
	ClearAll(ctx context.Context, scope []planner.SlotRef) (domain.PlannerV2State, error)
}

// PrefsService is satisfied by *store.PrefsStore.
type PrefsService interface {
	SavePrefs(ctx context.Context, prefs domain.CatalogPrefs) (domain.CatalogPrefs, *http.Cookie)
	LoadPrefs(ctx context.Context) (domain.CatalogPrefs, error)
}
