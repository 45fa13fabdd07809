package handlers

import (
	"net/http"
	"strconv"
	"time"

	"itrack_admin/db"
	"itrack_admin/services"

	"github.com/labstack/echo/v4"
)

// GetAuditLogsHandler returns filtered and paginated audit logs as JSON
// GET /audit-logs
func GetAuditLogsHandler(c echo.Context) error {
	// Parse pagination
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.QueryParam("limit"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	// Parse filters
	filters := services.AuditLogFilters{
		ActorID:      c.QueryParam("actor_id"),
		ResourceType: c.QueryParam("resource_type"),
		Action:       c.QueryParam("action"),
		SearchQuery:  c.QueryParam("search"),
	}

	if dateFrom := c.QueryParam("date_from"); dateFrom != "" {
		if t, err := time.Parse("2006-01-02", dateFrom); err == nil {
			filters.DateFrom = t
		}
	}
	if dateTo := c.QueryParam("date_to"); dateTo != "" {
		if t, err := time.Parse("2006-01-02", dateTo); err == nil {
			filters.DateTo = t.Add(24*time.Hour - time.Second) // End of day
		}
	}

	logs, total, err := services.GetAuditLogs(db.DB, filters, page, pageSize)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch audit logs")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":  logs,
		"total": total,
		"page":  page,
		"limit": pageSize,
	})
}
