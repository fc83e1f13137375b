package service

import (
	"context"
	"sync"

	"github.com/alexanderramin/courseplan/internal/domain"
	"github.com/alexanderramin/courseplan/internal/planner"
)

// PlannerPersistence is satisfied by *store.PlannerStore.
type PlannerPersistence interface {
	Load(ctx context.Context) domain.PlannerV2State
	Save(ctx context.Context, state domain.PlannerV2State)
}

type plannerService struct {
	store    PlannerPersistence
	observer UseCaseObserver

	mu     sync.Mutex
	state  domain.PlannerV2State
	loaded bool
}

func NewPlannerService(store PlannerPersistence, observers ...UseCaseObserver) PlannerService {
	return &plannerService{
		store:    store,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *plannerService) State(ctx context.Context) domain.PlannerV2State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(ctx)
}

// current loads state on first use. Callers hold mu.
func (s *plannerService) current(ctx context.Context) domain.PlannerV2State {
	if !s.loaded {
		s.state = s.store.Load(ctx)
		s.loaded = true
	}
	return s.state
}

// mutate applies fn to the current state; on success the result replaces the
// in-memory state and is saved.
func (s *plannerService) mutate(ctx context.Context, name string, fields map[string]any, fn func(domain.PlannerV2State) (domain.PlannerV2State, error)) (state domain.PlannerV2State, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	done := useCase(ctx, s.observer, name, fields)
	defer done(&err)

	cur := s.current(ctx)
	next, err := fn(cur)
	if err != nil {
		return cur, err
	}
	s.state = next
	s.store.Save(ctx, next)
	return next, nil
}

func (s *plannerService) Select(ctx context.Context, title string) (domain.PlannerV2State, error) {
	return s.mutate(ctx, "select-course", map[string]any{"title": title}, func(st domain.PlannerV2State) (domain.PlannerV2State, error) {
		if st.IsSelected(title) {
			return st, nil
		}
		items := make([]domain.PlanItem, 0, len(st.SelectedCourses)+1)
		items = append(items, st.SelectedCourses...)
		st.SelectedCourses = append(items, domain.PlanItem{Title: title})
		return st, nil
	})
}

func (s *plannerService) Unselect(ctx context.Context, title string) (domain.PlannerV2State, error) {
	return s.mutate(ctx, "unselect-course", map[string]any{"title": title}, func(st domain.PlannerV2State) (domain.PlannerV2State, error) {
		items := make([]domain.PlanItem, 0, len(st.SelectedCourses))
		for _, it := range st.SelectedCourses {
			if it.Title != title {
				items = append(items, it)
			}
		}
		st.SelectedCourses = items
		return st, nil
	})
}

func (s *plannerService) Assign(ctx context.Context, course domain.Course, year domain.Year, index int) (domain.PlannerV2State, error) {
	fields := map[string]any{"title": course.Title, "year": string(year), "slot": index}
	return s.mutate(ctx, "assign-course", fields, func(st domain.PlannerV2State) (domain.PlannerV2State, error) {
		grid, err := planner.Assign(st.Grid, course, year, index)
		if err != nil {
			return st, err
		}
		st.Grid = grid
		return st, nil
	})
}

func (s *plannerService) ClearSlot(ctx context.Context, year domain.Year, index int) (domain.PlannerV2State, error) {
	fields := map[string]any{"year": string(year), "slot": index}
	return s.mutate(ctx, "clear-slot", fields, func(st domain.PlannerV2State) (domain.PlannerV2State, error) {
		grid, err := planner.ClearSlot(st.Grid, year, index)
		if err != nil {
			return st, err
		}
		st.Grid = grid
		return st, nil
	})
}

func (s *plannerService) ClearSub(ctx context.Context, year domain.Year, index, sub int) (domain.PlannerV2State, error) {
	fields := map[string]any{"year": string(year), "slot": index, "sub": sub}
	return s.mutate(ctx, "clear-sub", fields, func(st domain.PlannerV2State) (domain.PlannerV2State, error) {
		grid, err := planner.ClearSub(st.Grid, year, index, sub)
		if err != nil {
			return st, err
		}
		st.Grid = grid
		return st, nil
	})
}

func (s *plannerService) ClearAll(ctx context.Context, scope []planner.SlotRef) (domain.PlannerV2State, error) {
	fields := map[string]any{"slots": len(scope)}
	return s.mutate(ctx, "clear-all", fields, func(st domain.PlannerV2State) (domain.PlannerV2State, error) {
		grid, err := planner.ClearAll(st.Grid, scope)
		if err != nil {
			return st, err
		}
		st.Grid = grid
		return st, nil
	})
}
