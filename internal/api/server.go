// Package api is the HTTP front door, ported from the teacher's
// internal/api/server.go + middleware.go (Echo, structured middleware chain,
// rate limiting) with handlers rebuilt over internal/dispatcher instead of a
// single in-process compile worker pool.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/optimuscode/optimus/internal/dispatcher"
)

// Server wraps an *echo.Echo configured with Optimus's routes.
type Server struct {
	echo       *echo.Echo
	dispatcher *dispatcher.Dispatcher
}

// New builds a Server and registers all routes and middleware.
func New(d *dispatcher.Dispatcher) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	}))

	s := &Server{echo: e, dispatcher: d}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	submitLimit := submissionRateLimitMiddleware(newSubmissionLimiter(20, time.Minute))
	s.echo.POST("/execute", s.handleSubmit, submitLimit)
	s.echo.POST("/jobs", s.handleSubmit, submitLimit)

	s.echo.GET("/job/:id", s.handleGetJob)
	s.echo.GET("/jobs/:id", s.handleGetJob)
	s.echo.DELETE("/jobs/:id", s.handleCancel)

	s.echo.GET("/queues/:language/length", s.handleQueueLength)
	s.echo.GET("/environments", s.handleEnvironments)
}

// Start blocks serving HTTP on addr until the process is killed or Shutdown
// is called from another goroutine.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully drains in-flight requests, ported from the teacher's
// cmd/api/main.go signal-handling shutdown sequence.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying http.Handler, used by httptest-based tests.
func (s *Server) Handler() http.Handler { return s.echo }
