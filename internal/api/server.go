// Package api exposes shape/width derivation over HTTP, so graph-level
// tooling can run dataflow compatibility checks against a long-lived
// generator process instead of shelling out per node.
package api

import (
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/ArthurEly/finn-old/internal/logger"
	"github.com/ArthurEly/finn-old/internal/threshold"
)

type Server struct {
	log logger.Logger
}

func NewServer(log logger.Logger) *Server {
	return &Server{log: log}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.POST("/v1/derive", s.handleDerive)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDerive(c *echo.Context) error {
	var attrs threshold.Attrs
	if err := json.NewDecoder(c.Request().Body).Decode(&attrs); err != nil {
		return writeBadRequest(c, fmt.Sprintf("decode operator: %v", err))
	}
	attrs.Normalize()
	if err := attrs.Validate(); err != nil {
		return writeError(c, http.StatusBadRequest, errType(err), err.Error())
	}

	resp := DeriveResponse{
		ID:       "drv_" + uuid.NewString(),
		Object:   "operator.derivation",
		Operator: attrs,
		Derived:  attrs.Derive(),
	}
	s.log.Debug("derived operator", "id", resp.ID, "tmem", resp.Derived.Tmem)
	return c.JSON(http.StatusOK, resp)
}

func errType(err error) string {
	switch {
	case errors.Is(err, threshold.ErrMissingAttribute):
		return "missing_attribute_error"
	case errors.Is(err, threshold.ErrConfig):
		return "config_error"
	default:
		return "validation_error"
	}
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": ResponseError{Type: errType, Message: msg},
	})
}
