package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/optimuscode/optimus/pkg/models"
)

// handleSubmit implements POST /execute (alias /jobs), ported from the
// teacher's internal/api.Server.HandleCompile.
func (s *Server) handleSubmit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
	}

	job := req.toJob()
	id, err := s.dispatcher.Submit(c.Request().Context(), job)
	if err != nil {
		if errors.Is(err, models.ErrValidation) || errors.Is(err, models.ErrUnknownLanguage) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "store unavailable"})
	}

	return c.JSON(http.StatusOK, submitResponse{JobID: id, Status: "queued"})
}

// handleGetJob implements GET /job/:id (alias /jobs/:id), ported from the
// teacher's internal/api.Server.HandleGetJob.
func (s *Server) handleGetJob(c echo.Context) error {
	id := c.Param("id")
	status, err := s.dispatcher.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "job not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "store unavailable"})
	}

	if status.Result == nil {
		return c.JSON(http.StatusAccepted, pendingResponse{Status: "pending"})
	}
	return c.JSON(http.StatusOK, toResultResponse(status.Result))
}

// handleCancel implements DELETE /jobs/:id.
func (s *Server) handleCancel(c echo.Context) error {
	id := c.Param("id")
	if err := s.dispatcher.Cancel(c.Request().Context(), id); err != nil {
		if errors.Is(err, models.ErrJobNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "job not found"})
		}
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "store unavailable"})
	}
	return c.NoContent(http.StatusOK)
}

// handleHealth implements GET /health.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleQueueLength implements GET /queues/:language/length, the
// internal/autoscale signal exposed over HTTP (spec.md §4.4).
func (s *Server) handleQueueLength(c echo.Context) error {
	language := models.Language(c.Param("language"))
	length, err := s.dispatcher.QueueLength(c.Request().Context(), language)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "store unavailable"})
	}
	return c.JSON(http.StatusOK, queueLengthResponse{Language: language, Length: length})
}

// handleEnvironments implements GET /environments, ported from the teacher's
// internal/api.Server.HandleGetEnvironments.
func (s *Server) handleEnvironments(c echo.Context) error {
	policies := s.dispatcher.Policies()
	envs := make([]environmentResponse, 0, len(policies))
	for lang, p := range policies {
		envs = append(envs, environmentResponse{
			Language:      lang,
			Image:         p.Image,
			Compiled:      p.Compiled,
			FileExtension: p.FileExtension,
		})
	}
	return c.JSON(http.StatusOK, envs)
}
