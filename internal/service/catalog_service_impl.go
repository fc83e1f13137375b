package service

import (
	"context"
	"sync"

	"github.com/alexanderramin/courseplan/internal/catalog"
	"github.com/alexanderramin/courseplan/internal/domain"
)

// CatalogFetcher is satisfied by *catalog.Source.
type CatalogFetcher interface {
	Fetch(ctx context.Context) ([]byte, string, error)
}

type catalogService struct {
	fetcher  CatalogFetcher
	observer UseCaseObserver

	mu     sync.Mutex
	loaded *LoadedCatalog
}

func NewCatalogService(fetcher CatalogFetcher, observers ...UseCaseObserver) CatalogService {
	return &catalogService{
		fetcher:  fetcher,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *catalogService) Load(ctx context.Context) (cat *LoadedCatalog, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded != nil {
		return s.loaded, nil
	}

	fields := map[string]any{}
	done := useCase(ctx, s.observer, "load-catalog", fields)
	defer done(&err)

	raw, source, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	parsed := catalog.ParseCatalog(raw)
	courses, dropped := catalog.Flatten(parsed)

	fields["source"] = source
	fields["shape"] = parsed.Shape.String()
	fields["courses"] = len(courses)
	fields["dropped"] = dropped

	s.loaded = &LoadedCatalog{
		Raw:     raw,
		Source:  source,
		Shape:   parsed.Shape,
		Courses: courses,
		Dropped: dropped,
	}
	return s.loaded, nil
}

func (s *catalogService) Filter(courses []domain.Course, spec catalog.FilterSpec) []domain.Course {
	return catalog.FilterCourses(courses, spec)
}

func (s *catalogService) Find(courses []domain.Course, title string) (domain.Course, bool) {
	return catalog.FindByTitle(courses, title)
}

func (s *catalogService) Lint(ctx context.Context) (catalog.LintReport, error) {
	cat, err := s.Load(ctx)
	if err != nil {
		return catalog.LintReport{}, err
	}
	return catalog.Lint(cat.Raw), nil
}
