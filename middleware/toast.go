package middleware

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"

	FlashToastCookie = "flash_toast"
)

// SetToast sets the HX-Trigger response header to show a toast notification
// on the client via HTMX. If an HX-Trigger header already exists, the toast
// payload is merged into the existing JSON object.
// It also sets a flash cookie so toasts survive regular (non-HTMX) redirects.
func SetToast(c echo.Context, toastType string, message string) {
	payload := map[string]string{"message": message, "type": toastType}
	header := c.Response().Header()

	trigger := map[string]any{}
	if existing := header.Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &trigger); err != nil {
			logrus.WithError(err).Warn("toast: existing HX-Trigger is not valid JSON, overwriting")
			trigger = map[string]any{}
		}
	}
	trigger["showToast"] = payload

	data, err := json.Marshal(trigger)
	if err != nil {
		logrus.WithError(err).Error("toast: failed to marshal HX-Trigger JSON")
		return
	}
	header.Set("HX-Trigger", string(data))

	// HX-Trigger is lost across a plain 302, the cookie is not
	cookieVal, err := json.Marshal(payload)
	if err == nil {
		c.SetCookie(&http.Cookie{
			Name:     FlashToastCookie,
			Value:    url.QueryEscape(string(cookieVal)),
			Path:     "/",
			MaxAge:   10,
			HttpOnly: false, // JS needs to read it
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// ErrorToast sets an error toast and prevents HTMX from swapping the error text into the DOM.
// Non-HTMX callers get a JSON error body instead.
func ErrorToast(c echo.Context, statusCode int, message string) error {
	if !IsHTMX(c) {
		return c.JSON(statusCode, map[string]string{"error": message})
	}
	SetToast(c, ToastError, message)
	c.Response().Header().Set("HX-Reswap", "none")
	return c.String(statusCode, message)
}

// IsHTMX reports whether the request was issued by HTMX
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
