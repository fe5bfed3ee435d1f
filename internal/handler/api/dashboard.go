package api

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"DashPull/internal/domain/models"
	"DashPull/internal/services/chart"
	"DashPull/internal/usecase"
	xhttp "DashPull/pkg/http"
	xlogger "DashPull/pkg/logger"
)

// DashboardHandler serves the dashboard views, their ECharts options and a
// standalone HTML page per dashboard.
type DashboardHandler struct {
	logger  *xlogger.Logger
	churn   *usecase.ChurnUseCase
	fmcg    *usecase.FMCGUseCase
	omnirag *usecase.OmniragUseCase
}

func NewDashboardHandler(logger *xlogger.Logger, churn *usecase.ChurnUseCase, fmcg *usecase.FMCGUseCase, omnirag *usecase.OmniragUseCase) *DashboardHandler {
	return &DashboardHandler{logger: logger, churn: churn, fmcg: fmcg, omnirag: omnirag}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/dashboards")
	g.GET("", h.List)
	g.GET("/:name", h.View)
	g.GET("/:name/echarts", h.ECharts)
	e.GET("/dashboards/:name", h.Page)
}

func (h *DashboardHandler) List(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.Dashboards)
}

func (h *DashboardHandler) View(c echo.Context) error {
	v, verr := h.build(c)
	if verr != nil {
		return h.fail(c, verr)
	}
	// Degraded views are still a 200: the page renders placeholders.
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return xhttp.SuccessResponse(c, v)
}

func (h *DashboardHandler) ECharts(c echo.Context) error {
	v, verr := h.build(c)
	if verr != nil {
		return h.fail(c, verr)
	}
	options, err := chart.EChartsOptions(v.Figures)
	if err != nil {
		h.logger.Error("echarts options", xlogger.String("dashboard", v.Dashboard), xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"dashboard": v.Dashboard,
		"status":    v.Status,
		"notice":    v.Notice,
		"charts":    options,
	})
}

func (h *DashboardHandler) Page(c echo.Context) error {
	v, verr := h.build(c)
	if verr != nil {
		return h.fail(c, verr)
	}
	var buf bytes.Buffer
	if err := chart.RenderPage(&buf, "DashPull · "+v.Dashboard, v.Figures); err != nil {
		h.logger.Error("render page", xlogger.String("dashboard", v.Dashboard), xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// build binds the request of the named dashboard and runs its use case.
// The second value is either validation details or an *AppError.
func (h *DashboardHandler) build(c echo.Context) (*usecase.View, interface{}) {
	ctx := c.Request().Context()
	switch name := c.Param("name"); name {
	case models.DashboardChurn:
		req := &models.ChurnRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return nil, verr
		}
		return h.churn.View(ctx, *req), nil
	case models.DashboardFMCG:
		req := &models.FMCGRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return nil, verr
		}
		return h.fmcg.View(ctx, *req), nil
	case models.DashboardOmnirag:
		req := &models.OmniragRequest{}
		if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
			return nil, verr
		}
		return h.omnirag.View(ctx, *req), nil
	default:
		return nil, xhttp.NotFoundErrorf("%s: %s", models.ErrUnknownDashboard, name).
			WithParam("options", models.Dashboards)
	}
}

func (h *DashboardHandler) fail(c echo.Context, verr interface{}) error {
	if appErr, ok := verr.(*xhttp.AppError); ok {
		return xhttp.AppErrorResponse(c, appErr)
	}
	return xhttp.BadRequestResponse(c, verr)
}
