package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func runLoadAPIToken(t *testing.T, fallback string, prepare func(req *http.Request)) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/regions", nil)
	if prepare != nil {
		prepare(req)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	handler := LoadAPIToken(fallback)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	require.True(t, called, "a missing credential must not block the request")
	return c
}

func TestLoadAPIToken(t *testing.T) {
	t.Run("CookieWins", func(t *testing.T) {
		c := runLoadAPIToken(t, "fallback", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "from-cookie"})
			req.Header.Set(echo.HeaderAuthorization, "Bearer from-header")
		})
		assert.Equal(t, "from-cookie", GetAPIToken(c))
	})

	t.Run("BearerHeader", func(t *testing.T) {
		c := runLoadAPIToken(t, "fallback", func(req *http.Request) {
			req.Header.Set(echo.HeaderAuthorization, "bearer from-header")
		})
		assert.Equal(t, "from-header", GetAPIToken(c))
	})

	t.Run("NonBearerHeaderIgnored", func(t *testing.T) {
		c := runLoadAPIToken(t, "", func(req *http.Request) {
			req.Header.Set(echo.HeaderAuthorization, "Basic dXNlcjpwYXNz")
		})
		assert.Empty(t, GetAPIToken(c))
	})

	t.Run("Fallback", func(t *testing.T) {
		c := runLoadAPIToken(t, "configured", nil)
		assert.Equal(t, "configured", GetAPIToken(c))
	})

	t.Run("Anonymous", func(t *testing.T) {
		c := runLoadAPIToken(t, "", nil)
		assert.Empty(t, GetAPIToken(c))
		assert.Nil(t, GetActor(c))
	})

	t.Run("ActorFromJWT", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"sub": "42", "name": "Asha Rao"})
		c := runLoadAPIToken(t, "", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
		})
		actor := GetActor(c)
		require.NotNil(t, actor)
		assert.Equal(t, "42", actor.ID)
		assert.Equal(t, "Asha Rao", actor.Name)
	})

	t.Run("OpaqueTokenHasNoActor", func(t *testing.T) {
		c := runLoadAPIToken(t, "opaque-token", nil)
		assert.Equal(t, "opaque-token", GetAPIToken(c))
		assert.Nil(t, GetActor(c))
	})
}

func TestParseActor(t *testing.T) {
	t.Run("EmailFallback", func(t *testing.T) {
		exp := time.Now().Add(-time.Hour).Truncate(time.Second)
		token := signedToken(t, jwt.MapClaims{"sub": "7", "email": "ops@itrack.example", "exp": exp.Unix()})

		actor, err := ParseActor(token)
		require.NoError(t, err)
		assert.Equal(t, "7", actor.ID)
		assert.Equal(t, "ops@itrack.example", actor.Name)
		assert.True(t, actor.ExpiresAt.Equal(exp))
		assert.True(t, actor.Expired(time.Now()))
	})

	t.Run("NoExpiry", func(t *testing.T) {
		actor, err := ParseActor(signedToken(t, jwt.MapClaims{"sub": "7"}))
		require.NoError(t, err)
		assert.False(t, actor.Expired(time.Now()))
	})

	t.Run("NotAJWT", func(t *testing.T) {
		_, err := ParseActor("not-a-jwt")
		assert.Error(t, err)
	})
}
