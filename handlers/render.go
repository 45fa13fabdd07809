package handlers

import (
	"net/http"
	"strings"

	"itrack_admin/middleware"
	"itrack_admin/services/masterdata"
	"itrack_admin/services/regions"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

var (
	masterDataClient *masterdata.Client
	// regionListFetches lets only the newest list fetch of a screen run
	regionListFetches = regions.NewLatestOnly()
)

// SetMasterDataClient installs the client every handler calls the Master Data Service with
func SetMasterDataClient(client *masterdata.Client) {
	masterDataClient = client
}

// masterDataFor returns the client acting with the credential of the request
func masterDataFor(c echo.Context) *masterdata.Client {
	return masterDataClient.WithToken(middleware.GetAPIToken(c))
}

// render writes an HTML component with the given status
func render(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// wantsJSON reports whether the caller is an API client rather than the HTMX page
func wantsJSON(c echo.Context) bool {
	if middleware.IsHTMX(c) {
		return false
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

// redirect sends the browser elsewhere: HX-Redirect for HTMX, 303 otherwise
func redirect(c echo.Context, location string) error {
	if middleware.IsHTMX(c) {
		c.Response().Header().Set("HX-Redirect", location)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, location)
}
