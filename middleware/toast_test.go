package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetToast(t *testing.T) {
	e := echo.New()

	t.Run("MergesExistingTrigger", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
		c.Response().Header().Set("HX-Trigger", `{"regionsChanged":true}`)

		SetToast(c, ToastSuccess, "Region created successfully")

		var trigger map[string]any
		require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &trigger))
		assert.Equal(t, true, trigger["regionsChanged"])
		toast := trigger["showToast"].(map[string]any)
		assert.Equal(t, "Region created successfully", toast["message"])
		assert.Equal(t, ToastSuccess, toast["type"])

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, FlashToastCookie, cookies[0].Name)
		assert.Equal(t, 10, cookies[0].MaxAge)
	})

	t.Run("OverwritesInvalidTrigger", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
		c.Response().Header().Set("HX-Trigger", "regionsChanged")

		SetToast(c, ToastInfo, "hello")

		var trigger map[string]any
		require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &trigger))
		assert.Len(t, trigger, 1)
	})
}

func TestErrorToast(t *testing.T) {
	e := echo.New()

	t.Run("HTMX", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, ErrorToast(c, http.StatusConflict, "Region already exists. Please use a different name."))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
		assert.Contains(t, rec.Header().Get("HX-Trigger"), "Region already exists")
	})

	t.Run("JSON", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

		require.NoError(t, ErrorToast(c, http.StatusNotFound, "Region not found. It may have already been deleted."))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Header().Get("HX-Trigger"))

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Region not found. It may have already been deleted.", body["error"])
	})
}
