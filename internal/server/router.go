// Package server exposes the catalog and planner state over HTTP with gin.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alexanderramin/courseplan/internal/logger"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Handlers *Handlers
	Log      *logger.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(cfg.Log))

	h := cfg.Handlers
	router.GET("/", h.Root)
	router.GET("/catalog.json", h.RawCatalog)

	api := router.Group("/api")
	{
		api.GET("/courses", h.Courses)
		api.GET("/planner", h.PlannerState)
		api.POST("/prefs", h.SavePrefs)
	}
	return router
}

type Server struct {
	Engine *gin.Engine
}

// NewServer builds the production server; gin runs in release mode so the
// debug route dump stays off stdout.
func NewServer(cfg RouterConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	return &Server{Engine: NewRouter(cfg)}
}

// Run serves on address until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
