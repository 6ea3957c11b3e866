package httpapi

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/AntonStoeckl/library-circulation-go/library/features/desk"
)

const (
	HeaderMemberID  = "X-Member-ID"
	HeaderSessionID = "X-Session-ID"

	contextKeySession = "session"
	logMsgHTTPRequest = "http"
)

// RegisterMiddlewares installs panic recovery, request ids and request logging.
func RegisterMiddlewares(e *echo.Echo, logger *slog.Logger) {
	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(requestLogger(logger))
}

// requestLogger logs one line per request after the error handler wrote the response.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"path", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"req_id", v.RequestID,
				"ip", v.RemoteIP,
				"ua", v.UserAgent,
			}

			if v.Error != nil && v.Status >= 500 {
				logger.ErrorContext(c.Request().Context(), logMsgHTTPRequest, append(attrs, "error", v.Error.Error())...)
				return nil
			}

			logger.InfoContext(c.Request().Context(), logMsgHTTPRequest, attrs...)

			return nil
		},
	})
}

// requireSession rejects requests without a valid member id.
func requireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			memberID, err := uuid.Parse(c.Request().Header.Get(HeaderMemberID))
			if err != nil {
				return ErrMissingSession
			}

			sessionID := c.Request().Header.Get(HeaderSessionID)
			if sessionID == "" {
				sessionID = memberID.String()
			}

			c.Set(contextKeySession, desk.Session{MemberID: memberID, SessionID: sessionID})

			return next(c)
		}
	}
}

func sessionFrom(c echo.Context) desk.Session {
	session, _ := c.Get(contextKeySession).(desk.Session)
	return session
}
