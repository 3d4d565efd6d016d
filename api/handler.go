package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/medidesk/console/auth"
	"github.com/medidesk/console/config"
	internalErrs "github.com/medidesk/console/errors"
	"github.com/medidesk/console/patients"
	"github.com/medidesk/console/remote"
	"github.com/medidesk/console/sessions"
)

type Handler struct {
	auth     *auth.Service
	client   remote.Client
	patients *patients.Registry
	sessions sessions.Store
	config   *config.Config
	logger   *zap.SugaredLogger
}

type Params struct {
	fx.In

	Auth     *auth.Service
	Client   remote.Client
	Patients *patients.Registry
	Sessions sessions.Store
	Config   *config.Config
	Logger   *zap.SugaredLogger
}

func NewHandler(p Params) *Handler {
	return &Handler{
		auth:     p.Auth,
		client:   p.Client,
		patients: p.Patients,
		sessions: p.Sessions,
		config:   p.Config,
		logger:   p.Logger,
	}
}

func (h *Handler) currentSession(c echo.Context) (*sessions.Session, error) {
	session := sessions.FromContext(c.Request().Context())
	if !session.IsEstablished() {
		return nil, internalErrs.Unauthorized
	}
	return session, nil
}

func (h *Handler) saveSession(c echo.Context, session *sessions.Session) error {
	if err := h.sessions.Save(c.Request().Context(), session); err != nil {
		return internalErrs.InternalServerError.Wrap(err)
	}
	return nil
}

// startSession replaces the session of the request with the given one
func (h *Handler) startSession(c echo.Context, session *sessions.Session) {
	if previous := sessions.FromContext(c.Request().Context()); previous != nil && previous.Id != session.Id {
		if err := h.sessions.Delete(c.Request().Context(), previous.Id); err != nil {
			h.logger.Warnw("unable to delete previous session", "sessionId", previous.Id, zap.Error(err))
		}
		h.patients.Remove(previous.Id)
	}

	c.SetCookie(&http.Cookie{
		Name:     h.config.SessionCookie,
		Value:    session.Id,
		Path:     "/",
		Expires:  session.ExpirationTime,
		HttpOnly: true,
		Secure:   h.config.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context, cfg *config.Config) {
	c.SetCookie(&http.Cookie{
		Name:     cfg.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func redirect(c echo.Context, location string) error {
	return c.Redirect(http.StatusSeeOther, location)
}
