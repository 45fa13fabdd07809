package handlers

import (
	"net/http"

	"itrack_admin/db"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the local database answers
// GET /healthz
func HealthHandler(c echo.Context) error {
	status := map[string]string{"status": "ok", "database": "ok"}

	sqlDB, err := db.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		return c.JSON(http.StatusServiceUnavailable, status)
	}
	return c.JSON(http.StatusOK, status)
}
