package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetCSRFToken(t *testing.T) {
	e := echo.New()

	t.Run("TokenExists", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		expectedToken := "test-csrf-token"
		c.Set("csrf", expectedToken)

		token := GetCSRFToken(c)
		assert.Equal(t, expectedToken, token)
	})

	t.Run("TokenMissing", func(t *testing.T) {
		c := e.NewContext(nil, nil)

		token := GetCSRFToken(c)
		assert.Equal(t, "", token)
	})

	t.Run("TokenInvalidType", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("csrf", 123) // Not a string

		token := GetCSRFToken(c)
		assert.Equal(t, "", token)
	})
}

func TestCSRFMiddleware(t *testing.T) {
	e := echo.New()
	handler := CSRF(false)(func(c echo.Context) error {
		return c.String(http.StatusOK, GetCSRFToken(c))
	})

	t.Run("SafeMethodIssuesToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/regions/new", nil), rec)

		assert.NoError(t, handler(c))
		assert.NotEmpty(t, rec.Body.String())
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "_csrf=")
	})

	t.Run("UnsafeMethodWithoutToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/regions/drafts/x/save", nil), rec)

		assert.Error(t, handler(c))
	})
}
