package api

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/medidesk/console/authz"
	"github.com/medidesk/console/config"
	internalErrs "github.com/medidesk/console/errors"
	"github.com/medidesk/console/sessions"
)

type MiddlewareOpts struct {
	Skipper middleware.Skipper
}

// NewSessionMiddleware attaches the session identified by the session cookie to the request context
func NewSessionMiddleware(store sessions.Store, cfg *config.Config, logger *zap.SugaredLogger, opts MiddlewareOpts) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if opts.Skipper != nil && opts.Skipper(c) {
				return next(c)
			}

			cookie, err := c.Cookie(cfg.SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			session, err := store.Get(ctx, cookie.Value)
			if errors.Is(err, sessions.ErrSessionNotFound) {
				logger.Debugw("session cookie refers to an unknown session", "sessionId", cookie.Value)
				clearSessionCookie(c, cfg)
				return next(c)
			} else if err != nil {
				return internalErrs.InternalServerError.Wrap(err)
			}

			c.SetRequest(c.Request().WithContext(sessions.WithSession(ctx, session)))
			return next(c)
		}
	}
}

// NewGuardMiddleware redirects requests the guard denies
func NewGuardMiddleware(guard authz.Guard, opts MiddlewareOpts) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if opts.Skipper != nil && opts.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			decision, err := guard.Authorize(req.Context(), authz.Request{
				Path:    req.URL.Path,
				Method:  req.Method,
				Session: sessions.FromContext(req.Context()),
			})
			if err != nil {
				return internalErrs.InternalServerError.Wrap(err)
			}
			if !decision.Allowed {
				return redirect(c, decision.Redirect)
			}

			return next(c)
		}
	}
}
