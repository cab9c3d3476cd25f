package api

import (
	"database/sql"
	"errors"

	models "BuildPulse/internal/domain/models"
	"BuildPulse/internal/service/ratelimit"
	"BuildPulse/internal/usecase"
	xhttp "BuildPulse/pkg/http"
	xlogger "BuildPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// InsightsEchoHandler exposes the analytics surface over Echo.
type InsightsEchoHandler struct {
	logger   *xlogger.Logger
	insights *usecase.InsightService
	company  *usecase.CompanyInsightsUseCase
	rl       *ratelimit.Limiter
	rlCap    float64
	rlRefill float64
}

func NewInsightsEchoHandler(logger *xlogger.Logger, insights *usecase.InsightService, company *usecase.CompanyInsightsUseCase) *InsightsEchoHandler {
	return &InsightsEchoHandler{
		logger:   logger,
		insights: insights,
		company:  company,
		rl:       ratelimit.New(),
		rlCap:    10,
		rlRefill: 5,
	}
}

// SetRateLimit overrides the default per-client token bucket parameters.
func (h *InsightsEchoHandler) SetRateLimit(capacity, refillPerSec float64) {
	if capacity > 0 && refillPerSec > 0 {
		h.rlCap = capacity
		h.rlRefill = refillPerSec
	}
}

func (h *InsightsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/insights", h.CompanyInsights)
	g.GET("/projects/:id/overrun", h.ProjectOverrun)
	g.GET("/finance/cashflow", h.CashFlow)
	g.GET("/safety/risk", h.SafetyRisk)
	g.GET("/vendors/:id/performance", h.VendorPerformance)
	g.GET("/equipment/:id/failure", h.EquipmentFailure)
	g.GET("/anomalies", h.Anomalies)
	g.POST("/bids/win-probability", h.BidWinProbability)
	g.POST("/change-orders/impact", h.ChangeOrderImpact)
}

func (h *InsightsEchoHandler) allow(c echo.Context, endpoint string) error {
	if !h.rl.Allow(c.RealIP()+":"+endpoint, h.rlCap, h.rlRefill) {
		h.logger.Warn("rate limited",
			xlogger.String("endpoint", endpoint),
			xlogger.String("remote", c.RealIP()))
		return xhttp.TooManyRequestsError("too many requests")
	}
	return nil
}

func (h *InsightsEchoHandler) CompanyInsights(c echo.Context) error {
	if err := h.allow(c, "insights"); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	res, err := h.company.GetCompanyInsights(c.Request().Context())
	if err != nil {
		h.logger.Error("company insights error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) ProjectOverrun(c echo.Context) error {
	req := &models.OverrunRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := h.allow(c, "overrun"); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	res, err := h.insights.ProjectOverrun(c.Request().Context(), req.ProjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundError("project not found"))
		}
		h.logger.Error("overrun usecase error",
			xlogger.String("project_id", req.ProjectID),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) CashFlow(c echo.Context) error {
	req := &models.CashFlowRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := h.allow(c, "cashflow"); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	periods, err := h.insights.CashFlowForecast(c.Request().Context())
	if err != nil {
		h.logger.Error("cashflow usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if req.Periods < len(periods) {
		periods = periods[:req.Periods]
	}
	return xhttp.ListResponse(c, periods, int64(len(periods)))
}

func (h *InsightsEchoHandler) SafetyRisk(c echo.Context) error {
	if err := h.allow(c, "safety"); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	res, err := h.insights.SafetyRisk(c.Request().Context())
	if err != nil {
		h.logger.Error("safety usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) VendorPerformance(c echo.Context) error {
	req := &models.VendorScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := h.allow(c, "vendor"); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	res, err := h.insights.VendorPerformance(c.Request().Context(), req.VendorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundError("vendor not found"))
		}
		h.logger.Error("vendor usecase error",
			xlogger.String("vendor_id", req.VendorID),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) EquipmentFailure(c echo.Context) error {
	req := &models.EquipmentFailureRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := h.allow(c, "equipment"); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	res, err := h.insights.EquipmentFailure(c.Request().Context(), req.EquipmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundError("equipment not found"))
		}
		h.logger.Error("equipment usecase error",
			xlogger.String("equipment_id", req.EquipmentID),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *InsightsEchoHandler) Anomalies(c echo.Context) error {
	req := &models.AnomaliesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := h.allow(c, "anomalies"); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	alerts, err := h.insights.Anomalies(c.Request().Context(), req.Severity, req.Category)
	if err != nil {
		h.logger.Error("anomalies usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, alerts, int64(len(alerts)))
}

func (h *InsightsEchoHandler) BidWinProbability(c echo.Context) error {
	req := &models.BidWinProbabilityInput{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := h.allow(c, "bidwin"); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, h.insights.BidWinProbability(*req))
}

func (h *InsightsEchoHandler) ChangeOrderImpact(c echo.Context) error {
	req := &models.ChangeOrderImpactInput{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if err := h.allow(c, "changeorder"); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, h.insights.ChangeOrderImpact(*req))
}
