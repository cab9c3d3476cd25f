package api

import (
	"net/http"

	domrepo "BuildPulse/internal/domain/repository"
	xhttp "BuildPulse/pkg/http"

	"github.com/labstack/echo/v4"
)

// Routes composes the HTTP surface: REST insights, the alerts websocket,
// and health probes.
type Routes struct {
	insights *InsightsEchoHandler
	alertsWS *AlertsWSHandler
	store    domrepo.SnapshotStore
}

func NewRoutes(insights *InsightsEchoHandler, alertsWS *AlertsWSHandler, store domrepo.SnapshotStore) *Routes {
	return &Routes{insights: insights, alertsWS: alertsWS, store: store}
}

func (r *Routes) RegisterRoutes(e *echo.Echo) {
	r.insights.RegisterRoutes(e)
	r.alertsWS.RegisterRoutes(e)

	e.GET("/healthz", r.Liveness)
	e.GET("/readyz", r.Readiness)
}

func (r *Routes) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (r *Routes) Readiness(c echo.Context) error {
	if err := r.store.Health(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

var _ xhttp.Handler = (*Routes)(nil)
