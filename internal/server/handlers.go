package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/alexanderramin/courseplan/internal/catalog"
	"github.com/alexanderramin/courseplan/internal/domain"
	"github.com/alexanderramin/courseplan/internal/service"
	"github.com/alexanderramin/courseplan/internal/store"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Catalog service.CatalogService
	Planner service.PlannerService
	Prefs   service.PrefsService
}

type coursesResponse struct {
	Source  string          `json:"source"`
	Count   int             `json:"count"`
	Courses []domain.Course `json:"courses"`
}

// Root sends visitors without a complete catalogPrefs cookie to onboarding.
func (h *Handlers) Root(c *gin.Context) {
	prefs, err := store.PrefsFromRequest(c.Request)
	if err != nil || !prefs.Complete() {
		c.Redirect(http.StatusFound, "/onboarding")
		return
	}
	c.Redirect(http.StatusFound, "/planner")
}

// RawCatalog passes the fetched payload through unchanged.
func (h *Handlers) RawCatalog(c *gin.Context) {
	cat, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", cat.Raw)
}

// Courses returns the flattened catalog filtered by query parameters.
func (h *Handlers) Courses(c *gin.Context) {
	cat, ok := h.loadCatalog(c)
	if !ok {
		return
	}
	courses := h.Catalog.Filter(cat.Courses, filterFromQuery(c))
	RespondOK(c, coursesResponse{Source: cat.Source, Count: len(courses), Courses: courses})
}

// PlannerState returns the current planner envelope.
func (h *Handlers) PlannerState(c *gin.Context) {
	RespondOK(c, h.Planner.State(c.Request.Context()))
}

// SavePrefs stores onboarding answers and mirrors them into the cookie.
func (h *Handlers) SavePrefs(c *gin.Context) {
	var prefs domain.CatalogPrefs
	if err := c.ShouldBindJSON(&prefs); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_prefs", err)
		return
	}
	if prefs.Grade < 9 || prefs.Grade > 12 {
		RespondError(c, http.StatusBadRequest, "invalid_prefs", errors.New("grade must be between 9 and 12"))
		return
	}
	saved, cookie := h.Prefs.SavePrefs(c.Request.Context(), prefs)
	if cookie != nil {
		http.SetCookie(c.Writer, cookie)
	}
	RespondOK(c, saved)
}

func (h *Handlers) loadCatalog(c *gin.Context) (*service.LoadedCatalog, bool) {
	cat, err := h.Catalog.Load(c.Request.Context())
	if err != nil {
		status, code := http.StatusInternalServerError, "internal"
		if errors.Is(err, catalog.ErrCatalogUnavailable) {
			status, code = http.StatusServiceUnavailable, "catalog_unavailable"
		}
		RespondError(c, status, code, err)
		return nil, false
	}
	return cat, true
}

func filterFromQuery(c *gin.Context) catalog.FilterSpec {
	flag := func(name string) bool {
		v, _ := strconv.ParseBool(c.Query(name))
		return v
	}
	spec := catalog.FilterSpec{
		Query:               c.Query("q"),
		IncludeDescriptions: flag("desc"),
		Department:          c.Query("dept"),
		Tags: catalog.TagToggles{
			GESC:     flag("gesc"),
			PPR:      flag("ppr"),
			CL:       flag("cl"),
			ADV:      flag("adv"),
			FullYear: flag("year"),
			Half:     flag("half"),
		},
	}
	if flag("exact") {
		spec.DeptMatch = catalog.MatchExact
	}
	return spec
}
