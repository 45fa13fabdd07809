package middleware

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const ContextKeyNonce = "csp_nonce"

// GenerateNonce creates a random nonce string
func GenerateNonce() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// CSPNonce generates a nonce for each request, hands it to templ through the
// request context and sends a Content-Security-Policy allowing only that nonce
// for inline scripts.
func CSPNonce() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nonce, err := GenerateNonce()
			if err != nil {
				logrus.WithError(err).Error("Failed to generate CSP nonce")
				nonce = "fallback-nonce-value"
			}

			c.Set(ContextKeyNonce, nonce)
			c.SetRequest(c.Request().WithContext(templ.WithNonce(c.Request().Context(), nonce)))

			// 'unsafe-eval' is needed by hx-on attributes
			csp := fmt.Sprintf("default-src 'self'; script-src 'self' 'nonce-%s' 'unsafe-eval' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'; frame-ancestors 'none'", nonce)
			c.Response().Header().Set("Content-Security-Policy", csp)

			return next(c)
		}
	}
}

// GetNonce retrieves the nonce of the request
func GetNonce(c echo.Context) string {
	if val, ok := c.Get(ContextKeyNonce).(string); ok {
		return val
	}
	return ""
}
