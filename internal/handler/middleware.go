package handler

import (
	"net/http"

	"github.com/Astemirdum/readinglist-service/pkg/auth"
	"github.com/Astemirdum/readinglist-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

// sessionMW puts the authenticated user into the request context.
// Requests without a valid session cookie are redirected to the login page.
func sessionMW(tokens *auth.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(auth.SessionCookie)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}
			claims, err := tokens.Parse(cookie.Value)
			if err != nil {
				return c.Redirect(http.StatusFound, "/login")
			}

			req := c.Request()
			ctx := auth.SetUserContext(req.Context(), claims.UserID, claims.Username)
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}

func newRateLimiterMW(rps rate.Limit) echo.MiddlewareFunc {
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rps))
}

func requestLoggerConfig() middleware.RequestLoggerConfig {
	cfg := logger.Log{LogLevel: zapcore.DebugLevel, Sink: ""}
	log := logger.NewLogger(cfg, "echo")
	c := middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		HandleError:  true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := zapcore.InfoLevel
			if v.Error != nil {
				level = zapcore.ErrorLevel
			}
			log.Log(level, "request",
				zap.String("URI", v.URI),
				zap.String("Method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}
	return c
}
