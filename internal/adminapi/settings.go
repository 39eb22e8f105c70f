package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/glueckskekse/kasse/internal/webserver"
	"github.com/glueckskekse/kasse/pkg/metrics"
)

func registerSettingsRoutes(s *webserver.Server) {
	s.AdminGET("/settings", getSettings)
	s.AdminPUT("/settings", putSettings)
	s.AdminGET("/stats/today", todayStats)
}

func getSettings(c echo.Context) error {
	view, err := webserver.GetApp(c).Settings().View()
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, view)
}

func putSettings(c echo.Context) error {
	var values map[string]interface{}
	if err := c.Bind(&values); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse settings", nil)
	}
	if err := webserver.GetApp(c).Settings().Save(values); err != nil {
		return failErr(c, err)
	}
	return getSettings(c)
}

// todayStats sums the recorded till metrics since local midnight.
func todayStats(c echo.Context) error {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	sum := func(metric string) (float64, error) {
		points, err := metrics.Select(metric, midnight.Unix(), now.Unix()+1)
		if err != nil {
			return 0, err
		}
		var total float64
		for _, p := range points {
			total += p.Value
		}
		return total, nil
	}

	checkouts, err := sum(metrics.MetricCheckouts)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "METRICS_ERROR", "Failed to read metrics", err.Error())
	}
	revenue, err := sum(metrics.MetricRevenueCents)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "METRICS_ERROR", "Failed to read metrics", err.Error())
	}

	return ok(c, map[string]interface{}{
		"checkouts":     int64(checkouts),
		"revenue_cents": int64(revenue),
	})
}
