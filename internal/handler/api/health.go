package api

import (
	"github.com/labstack/echo/v4"

	"DashPull/internal/domain/models"
	xhttp "DashPull/pkg/http"
)

// HealthHandler reports liveness plus the configured chat backend.
type HealthHandler struct {
	version string
	backend func() string
}

func NewHealthHandler(version string, backend func() string) *HealthHandler {
	return &HealthHandler{version: version, backend: backend}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
}

func (h *HealthHandler) Health(c echo.Context) error {
	backend := "none"
	if h.backend != nil {
		backend = h.backend()
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status":     "ok",
		"version":    h.version,
		"chat":       backend,
		"dashboards": models.Dashboards,
	})
}
