package middleware

import (
	"itrack_admin/services"

	"github.com/labstack/echo/v4"
)

const ContextKeyAuditContext = "audit_context"

// AuditContext is middleware that extracts actor info for audit logging.
// It must run after LoadAPIToken.
func AuditContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := services.AuditContext{
				IPAddress: c.RealIP(),
				UserAgent: c.Request().UserAgent(),
			}

			if actor := GetActor(c); actor != nil {
				ctx.ActorID = actor.ID
				ctx.ActorName = actor.Name
			}

			c.Set(ContextKeyAuditContext, ctx)
			return next(c)
		}
	}
}

// GetAuditContext retrieves the audit context from the request
func GetAuditContext(c echo.Context) services.AuditContext {
	if ctx, ok := c.Get(ContextKeyAuditContext).(services.AuditContext); ok {
		return ctx
	}
	return services.AuditContext{}
}
