package middleware

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	// TokenCookieName is the cookie holding the Master Data Service credential
	TokenCookieName = "itrack_token"
	// ContextKeyAPIToken is the context key for the credential of the request
	ContextKeyAPIToken = "api_token"
	// ContextKeyActor is the context key for the identity named by the credential
	ContextKeyActor = "actor"
)

// Actor is who the credential says is acting. The claims are read but not
// verified here; the Master Data Service is the one that checks the signature.
type Actor struct {
	ID        string
	Name      string
	ExpiresAt time.Time
}

// Expired reports whether the credential carries an expiry in the past
func (a *Actor) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && now.After(a.ExpiresAt)
}

// LoadAPIToken reads the credential from the itrack_token cookie, then from an
// Authorization: Bearer header, then falls back to the configured token.
// A missing credential is not rejected: outgoing calls are simply sent without one.
func LoadAPIToken(fallback string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				token = fallback
			}

			if token != "" {
				c.Set(ContextKeyAPIToken, token)
				if actor, err := ParseActor(token); err == nil {
					if actor.Expired(time.Now()) {
						logrus.WithField("actor_id", actor.ID).Warn("Request credential has expired")
					}
					c.Set(ContextKeyActor, actor)
				}
			}

			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// ParseActor extracts the actor claims of a JWT credential without verifying it.
// Opaque (non-JWT) credentials return an error.
func ParseActor(token string) (*Actor, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	actor := &Actor{}
	if sub, err := claims.GetSubject(); err == nil {
		actor.ID = sub
	}
	if name, ok := claims["name"].(string); ok {
		actor.Name = name
	}
	if actor.Name == "" {
		if email, ok := claims["email"].(string); ok {
			actor.Name = email
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		actor.ExpiresAt = exp.Time
	}
	return actor, nil
}

// GetAPIToken retrieves the credential of the request
func GetAPIToken(c echo.Context) string {
	token, _ := c.Get(ContextKeyAPIToken).(string)
	return token
}

// GetActor retrieves the actor of the request, or nil for anonymous or opaque credentials
func GetActor(c echo.Context) *Actor {
	actor, ok := c.Get(ContextKeyActor).(*Actor)
	if !ok {
		return nil
	}
	return actor
}
