package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"itrack_admin/db"
	"itrack_admin/middleware"
	"itrack_admin/models"
	"itrack_admin/services"
	"itrack_admin/services/regions"
	"itrack_admin/templates/pages"
	"itrack_admin/templates/partials"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const regionListScreen = "regions"

// parseListParams reads page, limit, search and status from the query or form
func parseListParams(c echo.Context) models.RegionListParams {
	page, _ := strconv.Atoi(c.FormValue("page"))
	limit, _ := strconv.Atoi(c.FormValue("limit"))
	params := models.RegionListParams{
		Page:   page,
		Limit:  limit,
		Search: c.FormValue("search"),
		Status: c.FormValue("status"),
	}
	regions.NormalizeListParams(&params)
	return params
}

// loadRegionList fetches one page for the list screen. The bool result is
// false when a newer fetch of the same screen superseded this one.
func loadRegionList(c echo.Context, params models.RegionListParams) (pages.RegionListView, bool) {
	view := pages.RegionListView{
		Page:      params.Page,
		Limit:     params.Limit,
		Search:    params.Search,
		Status:    params.Status,
		CSRFToken: middleware.GetCSRFToken(c),
		Companies: map[string]string{},
	}

	ctx, done := regionListFetches.Begin(c.Request().Context(), middleware.CredentialKey(c)+":"+regionListScreen)
	defer done()

	md := masterDataFor(c)
	page, err := regions.ListRegions(ctx, md, params)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return view, false
		}
		logrus.WithError(err).Warn("Failed to load regions")
		view.Error = regions.ErrorMessage(regions.OpLoad, err)
		return view, true
	}
	view.Regions = page.Regions
	view.Total = page.Total

	companies, err := md.ListCompanies(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return view, false
		}
		// Names fall back to ids
		logrus.WithError(err).Warn("Failed to load companies for region list")
	}
	for _, company := range companies {
		view.Companies[company.ID.String()] = company.Name
	}
	return view, true
}

// RegionsPageHandler renders the region list page
// GET /regions
func RegionsPageHandler(c echo.Context) error {
	view, ok := loadRegionList(c, parseListParams(c))
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}

	if wantsJSON(c) {
		return regionListJSON(c, view)
	}
	return render(c, http.StatusOK, pages.Layout("Regions", partials.RegionsScreen(view)))
}

// GetRegionsHTMX returns the region table as an HTMX partial
// GET /htmx/regions
func GetRegionsHTMX(c echo.Context) error {
	view, ok := loadRegionList(c, parseListParams(c))
	if !ok {
		// Superseded by a newer fetch: nothing to render, nothing to report
		return c.NoContent(http.StatusNoContent)
	}

	if wantsJSON(c) {
		return regionListJSON(c, view)
	}
	return render(c, http.StatusOK, partials.RegionList(view))
}

func regionListJSON(c echo.Context, view pages.RegionListView) error {
	if view.Error != "" {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": view.Error})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":  view.Regions,
		"total": view.Total,
		"page":  view.Page,
		"limit": view.Limit,
	})
}

// DeleteRegionConfirmHandler shows the delete confirmation for a region
// GET /regions/:id/delete
func DeleteRegionConfirmHandler(c echo.Context) error {
	region, err := masterDataFor(c).GetRegion(c.Request().Context(), c.Param("id"))
	if err != nil {
		return middleware.ErrorToast(c, regions.StatusFor(err), regions.ErrorMessage(regions.OpLoad, err))
	}
	return render(c, http.StatusOK, partials.DeleteConfirm(region))
}

// DeleteRegionHandler deletes a region in the Master Data Service
// DELETE /regions/:id
func DeleteRegionHandler(c echo.Context) error {
	regionID := c.Param("id")

	if err := regions.DeleteRegion(c.Request().Context(), masterDataFor(c), regionID); err != nil {
		logrus.WithError(err).WithField("region_id", regionID).Warn("Failed to delete region")
		return middleware.ErrorToast(c, regions.StatusFor(err), regions.ErrorMessage(regions.OpDelete, err))
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
		Action:       models.AuditActionDelete,
		ResourceType: services.AuditResourceRegion,
		ResourceID:   regionID,
		Description:  "Region deleted",
	})

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, map[string]string{"message": regions.MsgDeleted})
	}
	middleware.SetToast(c, middleware.ToastSuccess, regions.MsgDeleted)
	// Empty body: HTMX swaps the row away
	return c.String(http.StatusOK, "")
}

// ExportRegionsHandler writes the current filtered page to a spreadsheet
// POST /regions/export
func ExportRegionsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	params := parseListParams(c)
	md := masterDataFor(c)

	page, err := regions.ListRegions(ctx, md, params)
	if err != nil {
		return middleware.ErrorToast(c, regions.StatusFor(err), regions.ErrorMessage(regions.OpLoad, err))
	}

	companies, err := md.ListCompanies(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Failed to load companies for region export")
	}

	buf, err := regions.ExportRegions(page.Regions, companies)
	if err != nil {
		logrus.WithError(err).Error("Failed to build region export")
		return middleware.ErrorToast(c, http.StatusInternalServerError, "Failed to export regions. Please try again.")
	}

	actorID := ""
	if actor := middleware.GetActor(c); actor != nil {
		actorID = actor.ID
	}

	stored, err := services.StoreRegionExport(ctx, db.DB, buf.Bytes(), len(page.Regions), actorID)
	if err != nil {
		logrus.WithError(err).Error("Failed to store region export")
		return middleware.ErrorToast(c, http.StatusInternalServerError, "Failed to export regions. Please try again.")
	}

	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
		Action:       models.AuditActionExport,
		ResourceType: services.AuditResourceRegion,
		ResourceID:   stored.Key,
		Description:  "Regions exported",
		NewValues: map[string]interface{}{
			"count":  len(page.Regions),
			"page":   params.Page,
			"search": params.Search,
			"status": params.Status,
		},
	})

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, map[string]interface{}{"url": stored.URL, "count": len(page.Regions)})
	}
	middleware.SetToast(c, middleware.ToastSuccess, "Export ready")
	return render(c, http.StatusOK, partials.ExportLink(stored.URL, len(page.Regions)))
}

// DownloadExportHandler streams a recorded export workbook from storage
// GET /regions/exports/:file
func DownloadExportHandler(c echo.Context) error {
	export, err := services.FindRegionExport(db.DB, c.Param("file"))
	if err != nil {
		if errors.Is(err, services.ErrExportNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Export not found")
		}
		logrus.WithError(err).Error("Failed to look up region export")
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load export")
	}

	reader, contentType, err := services.Storage.Get(c.Request().Context(), export.Key)
	if err != nil {
		logrus.WithError(err).WithField("key", export.Key).Warn("Recorded export is missing from storage")
		return echo.NewHTTPError(http.StatusNotFound, "Export is no longer available")
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.FileName))
	return c.Stream(http.StatusOK, contentType, reader)
}

// GetRegionHistoryHandler returns the recorded changes of a region
// GET /regions/:id/history
func GetRegionHistoryHandler(c echo.Context) error {
	logs, err := services.GetResourceAuditHistory(db.DB, services.AuditResourceRegion, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch history")
	}

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, logs)
	}
	return render(c, http.StatusOK, partials.RegionHistory(logs))
}
