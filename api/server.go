package api

import (
	"embed"

	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/medidesk/console/authz"
	"github.com/medidesk/console/config"
	"github.com/medidesk/console/errors"
	"github.com/medidesk/console/sessions"
)

//go:embed static
var staticFiles embed.FS

func NewServer(handler *Handler, healthCheck *HealthCheck, guard authz.Guard, store sessions.Store, renderer *Renderer, cfg *config.Config, logger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = errors.CustomHTTPErrorHandler

	// Skip sessions and authorization for the readiness probe and static assets
	skipper := RouteSkipper([]string{"/ready", "/static/*"})

	e.Use(middleware.Recover())
	e.Use(echozap.ZapLogger(logger))
	e.Use(NewSessionMiddleware(store, cfg, logger.Sugar(), MiddlewareOpts{Skipper: skipper}))
	e.Use(NewGuardMiddleware(guard, MiddlewareOpts{Skipper: skipper}))

	e.GET("/ready", healthCheck.Ready)
	e.StaticFS("/static", echo.MustSubFS(staticFiles, "static"))

	RegisterHandlers(e, handler)

	return e, nil
}

func RegisterHandlers(e *echo.Echo, h *Handler) {
	e.GET("/", h.Index)
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.GET("/register", h.RegisterPage)
	e.POST("/register", h.Register)
	e.POST("/logout", h.Logout)

	d := e.Group("/dashboard")
	d.GET("", h.Dashboard)
	d.POST("/search", h.Search)
	d.POST("/category", h.SelectCategory)
	d.POST("/patients/:patientId/select", h.SelectPatient)
	d.POST("/panel/close", h.ClosePanel)
	d.POST("/refresh", h.Refresh)
	d.POST("/notifications/dismiss", h.DismissNotification)
	d.GET("/export.xlsx", h.Export)
}
