// Package store persists planner and onboarding state as JSON blobs in the
// key-value table. Loads never fail on bad data: anything that cannot be
// trusted is replaced by a default. Saves never fail either; storage errors
// are logged and dropped.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/alexanderramin/courseplan/internal/db"
	"github.com/alexanderramin/courseplan/internal/domain"
	"github.com/alexanderramin/courseplan/internal/logger"
	"github.com/alexanderramin/courseplan/internal/planner"
	"github.com/alexanderramin/courseplan/internal/repository"
)

// PlannerStore loads and saves the planner envelope under plannerV2, migrating
// from the legacy plannerV1 and plan keys on first load.
type PlannerStore struct {
	kv           repository.KVRepo
	uow          db.UnitOfWork
	slotsPerYear int
	log          *logger.Logger
}

type Option func(*PlannerStore)

// WithUnitOfWork runs the legacy migration inside a transaction so the legacy
// reads and the plannerV2 write see one snapshot.
func WithUnitOfWork(uow db.UnitOfWork) Option {
	return func(s *PlannerStore) { s.uow = uow }
}

func WithSlotsPerYear(n int) Option {
	return func(s *PlannerStore) {
		if n > 0 {
			s.slotsPerYear = n
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(s *PlannerStore) { s.log = logger.OrNop(l) }
}

func NewPlannerStore(kv repository.KVRepo, opts ...Option) *PlannerStore {
	s := &PlannerStore{
		kv:           kv,
		slotsPerYear: domain.DefaultSlotsPerYear,
		log:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SlotsPerYear is the row width every loaded grid is normalized to.
func (s *PlannerStore) SlotsPerYear() int { return s.slotsPerYear }

// Load returns the planner state. A missing plannerV2 key triggers migration
// from the legacy keys; the migrated envelope is written back immediately.
// With no state at all, Load returns a fresh default without writing it.
func (s *PlannerStore) Load(ctx context.Context) domain.PlannerV2State {
	raw, err := s.kv.Get(ctx, domain.KeyPlannerV2)
	switch {
	case err == nil:
		return s.decodeEnvelope(raw)
	case errors.Is(err, repository.ErrNotFound):
		return s.migrate(ctx)
	default:
		s.log.Warn("reading planner state failed, using default", "key", domain.KeyPlannerV2, "error", err)
		return domain.NewPlannerState(s.slotsPerYear)
	}
}

// Save writes state under plannerV2. Failures are logged, never returned.
func (s *PlannerStore) Save(ctx context.Context, state domain.PlannerV2State) {
	if err := s.put(ctx, s.kv, state); err != nil {
		s.log.Error("saving planner state failed", "key", domain.KeyPlannerV2, "error", err)
	}
}

func (s *PlannerStore) put(ctx context.Context, kv repository.KVRepo, state domain.PlannerV2State) error {
	state.Version = domain.PlannerVersion
	if state.SelectedCourses == nil {
		state.SelectedCourses = []domain.PlanItem{}
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return kv.Put(ctx, domain.KeyPlannerV2, string(data))
}

func (s *PlannerStore) migrate(ctx context.Context) domain.PlannerV2State {
	if s.uow == nil {
		state, found := s.readLegacy(ctx, s.kv)
		if found {
			s.Save(ctx, state)
		}
		return state
	}

	var state domain.PlannerV2State
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txKV := repository.NewSQLiteKVRepo(tx)
		var found bool
		state, found = s.readLegacy(ctx, txKV)
		if !found {
			return nil
		}
		return s.put(ctx, txKV, state)
	})
	if err != nil {
		s.log.Error("persisting migrated planner state failed", "key", domain.KeyPlannerV2, "error", err)
	}
	return state
}

// readLegacy builds an envelope from plannerV1 and plan. found is false when
// neither key exists.
func (s *PlannerStore) readLegacy(ctx context.Context, kv repository.KVRepo) (domain.PlannerV2State, bool) {
	state := domain.NewPlannerState(s.slotsPerYear)
	found := false

	if raw, err := kv.Get(ctx, domain.KeyPlannerV1); err == nil {
		found = true
		if grid, ok := decodeGrid(json.RawMessage(raw), s.slotsPerYear); ok {
			state.Grid = grid
		} else {
			s.log.Warn("discarding unreadable legacy grid", "key", domain.KeyPlannerV1)
		}
	}
	if raw, err := kv.Get(ctx, domain.KeyLegacyPlan); err == nil {
		found = true
		state.SelectedCourses = decodePlanItems(json.RawMessage(raw))
	}
	if found {
		s.log.Info("migrated legacy planner state",
			"selected", len(state.SelectedCourses))
	}
	return state, found
}

func (s *PlannerStore) decodeEnvelope(raw string) domain.PlannerV2State {
	state := domain.NewPlannerState(s.slotsPerYear)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		s.log.Warn("discarding corrupt planner state", "key", domain.KeyPlannerV2, "error", err)
		return state
	}
	state.SelectedCourses = decodePlanItems(fields["selectedCourses"])
	if grid, ok := decodeGrid(fields["grid"], s.slotsPerYear); ok {
		state.Grid = grid
	} else {
		s.log.Warn("discarding malformed planner grid", "key", domain.KeyPlannerV2)
	}
	return state
}

// decodeGrid accepts an object holding every year key, each mapped to an
// array. Individual slots that do not decode become empty; the result is
// normalized to slotsPerYear.
func decodeGrid(raw json.RawMessage, slotsPerYear int) (domain.Grid, bool) {
	var years map[string]json.RawMessage
	if err := json.Unmarshal(raw, &years); err != nil || years == nil {
		return nil, false
	}
	grid := make(domain.Grid, len(domain.Years))
	for _, y := range domain.Years {
		rowRaw, ok := years[string(y)]
		if !ok {
			return nil, false
		}
		var cells []json.RawMessage
		if err := json.Unmarshal(rowRaw, &cells); err != nil || cells == nil {
			return nil, false
		}
		row := make([]domain.Slot, len(cells))
		for i, cell := range cells {
			_ = row[i].UnmarshalJSON(cell)
		}
		grid[y] = row
	}
	return planner.Normalize(grid, slotsPerYear), true
}

// decodePlanItems reads a list whose entries are {title} objects or bare
// strings. Anything that is not an array yields an empty list; entries
// without a usable title are skipped.
func decodePlanItems(raw json.RawMessage) []domain.PlanItem {
	items := []domain.PlanItem{}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return items
	}
	for _, e := range entries {
		var title string
		if err := json.Unmarshal(e, &title); err != nil {
			var obj struct {
				Title string `json:"title"`
			}
			if err := json.Unmarshal(e, &obj); err != nil {
				continue
			}
			title = obj.Title
		}
		if title = strings.TrimSpace(title); title != "" {
			items = append(items, domain.PlanItem{Title: title})
		}
	}
	return items
}
