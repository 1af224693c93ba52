package http

import (
	"log/slog"
	"strings"
	"time"

	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const principalKey = "principal"

type tokenParser interface {
	Parse(token string) (user.Principal, error)
}

// authenticate resolves the bearer token into a Principal stored on the echo
// context.
func authenticate(tokens tokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return errs.NewUnauthenticatedError("missing bearer token")
			}

			principal, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				return err
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// requireRole rejects authenticated callers of any other role.
func requireRole(role user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := principalFrom(c)
			if err != nil {
				return err
			}
			if principal.Role != role {
				return errs.NewAccessDeniedError(principal.String(), c.Request().Method+" "+c.Path())
			}
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) (user.Principal, error) {
	principal, ok := c.Get(principalKey).(user.Principal)
	if !ok {
		return user.Principal{}, errs.NewUnauthenticatedError("no principal on request")
	}
	return principal, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.Round(time.Microsecond).String(),
			}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "request", append(attrs, "error", v.Error.Error())...)
				return nil
			}
			logger.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	})
}
