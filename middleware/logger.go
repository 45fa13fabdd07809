package middleware

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one structured line per request through logrus
func RequestLogger(logger *logrus.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/healthz" || path == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"remote_ip":  v.RemoteIP,
			})
			if v.RequestID != "" {
				entry = entry.WithField("request_id", v.RequestID)
			}
			if actor := GetActor(c); actor != nil {
				entry = entry.WithField("actor_id", actor.ID)
			}

			switch {
			case v.Error != nil:
				entry.WithError(v.Error).Error("request failed")
			case v.Status >= 500:
				entry.Error("request failed")
			case v.Status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request")
			}
			return nil
		},
	})
}
