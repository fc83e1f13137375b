package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexanderramin/courseplan/internal/catalog"
	"github.com/alexanderramin/courseplan/internal/domain"
	"github.com/alexanderramin/courseplan/internal/logger"
	"github.com/alexanderramin/courseplan/internal/service"
	"github.com/alexanderramin/courseplan/internal/store"
	"github.com/alexanderramin/courseplan/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testCatalog = `[
	{"title":"Biology","department":"Science","gesc":true,"term":"Full Year"},
	{"title":"CL Calculus","department":"Mathematics","rigor":3},
	{"title":"Ceramics","department":"Visual Arts","term":"Term","description":"Wheel throwing"}
]`

type stubFetcher struct {
	body string
	err  error
}

func (f stubFetcher) Fetch(context.Context) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte(f.body), "stub", nil
}

func newTestRouter(t *testing.T, fetcher service.CatalogFetcher) (*gin.Engine, *store.PrefsStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	kv := testutil.NewTestKV(t)
	prefs := store.NewPrefsStore(kv, nil)
	h := &Handlers{
		Catalog: service.NewCatalogService(fetcher),
		Planner: service.NewPlannerService(store.NewPlannerStore(kv)),
		Prefs:   prefs,
	}
	return NewRouter(RouterConfig{Handlers: h}), prefs
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRoot_RedirectsToOnboardingWithoutPrefs(t *testing.T) {
	r, _ := newTestRouter(t, stubFetcher{body: testCatalog})

	rec := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/onboarding", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: domain.KeyCatalogPrefs, Value: "garbage"})
	rec = do(r, req)
	assert.Equal(t, "/onboarding", rec.Header().Get("Location"))
}

func TestRoot_RedirectsToPlannerWithSavedPrefs(t *testing.T) {
	r, prefs := newTestRouter(t, stubFetcher{body: testCatalog})
	_, cookie := prefs.SavePrefs(context.Background(), domain.CatalogPrefs{Grade: 9})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := do(r, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/planner", rec.Header().Get("Location"))
}

func TestRawCatalog_PassesThrough(t *testing.T) {
	r, _ := newTestRouter(t, stubFetcher{body: testCatalog})

	rec := do(r, httptest.NewRequest(http.MethodGet, "/catalog.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testCatalog, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestCourses_FiltersByQueryParams(t *testing.T) {
	r, _ := newTestRouter(t, stubFetcher{body: testCatalog})

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Biology", "CL Calculus", "Ceramics"}},
		{"?cl=true", []string{"CL Calculus"}},
		{"?gesc=1&year=true", []string{"Biology"}},
		{"?dept=" + url.QueryEscape(catalog.DeptArts), []string{"Ceramics"}},
		{"?q=wheel", nil},
		{"?q=wheel&desc=true", []string{"Ceramics"}},
		{"?dept=Science&exact=true", []string{"Biology"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(r, httptest.NewRequest(http.MethodGet, "/api/courses"+tt.query, nil))
			require.Equal(t, http.StatusOK, rec.Code)

			var body coursesResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			var got []string
			for _, c := range body.Courses {
				got = append(got, c.Title)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), body.Count)
		})
	}
}

func TestCourses_CatalogUnavailable(t *testing.T) {
	err := fmt.Errorf("%w: no candidate answered", catalog.ErrCatalogUnavailable)
	r, _ := newTestRouter(t, stubFetcher{err: err})

	rec := do(r, httptest.NewRequest(http.MethodGet, "/api/courses", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "catalog_unavailable", env.Error.Code)

	r, _ = newTestRouter(t, stubFetcher{err: errors.New("boom")})
	rec = do(r, httptest.NewRequest(http.MethodGet, "/catalog.json", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSavePrefs_SetsCookie(t *testing.T) {
	r, prefs := newTestRouter(t, stubFetcher{body: testCatalog})

	req := httptest.NewRequest(http.MethodPost, "/api/prefs", strings.NewReader(`{"grade":11,"mathCourse":"Precalculus"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(r, req)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, domain.KeyCatalogPrefs, cookies[0].Name)

	stored, err := prefs.LoadPrefs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 11, stored.Grade)
	assert.Equal(t, domain.PrefsVersion, stored.Version)

	bad := httptest.NewRequest(http.MethodPost, "/api/prefs", strings.NewReader(`{"grade":7}`))
	assert.Equal(t, http.StatusBadRequest, do(r, bad).Code)
}

func TestPlannerState_ReturnsEnvelope(t *testing.T) {
	r, _ := newTestRouter(t, stubFetcher{body: testCatalog})

	rec := do(r, httptest.NewRequest(http.MethodGet, "/api/planner", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var state domain.PlannerV2State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, domain.PlannerVersion, state.Version)
	assert.Len(t, state.Grid, 4)
}

func TestRequestLogger_TagsLinesWithRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	kv := testutil.NewTestKV(t)
	r := NewRouter(RouterConfig{
		Handlers: &Handlers{
			Catalog: service.NewCatalogService(stubFetcher{body: testCatalog}),
			Planner: service.NewPlannerService(store.NewPlannerStore(kv)),
			Prefs:   store.NewPrefsStore(kv, nil),
		},
		Log: logger.FromZap(zap.New(core)),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/planner", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := do(r, req)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/planner", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestNewServer_RunsInReleaseMode(t *testing.T) {
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })
	gin.SetMode(gin.DebugMode)

	kv := testutil.NewTestKV(t)
	srv := NewServer(RouterConfig{Handlers: &Handlers{
		Catalog: service.NewCatalogService(stubFetcher{body: testCatalog}),
		Planner: service.NewPlannerService(store.NewPlannerStore(kv)),
		Prefs:   store.NewPrefsStore(kv, nil),
	}})
	require.NotNil(t, srv.Engine)
	assert.Equal(t, gin.ReleaseMode, gin.Mode())
}
