package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/medidesk/console/auth"
	"github.com/medidesk/console/authz"
	"github.com/medidesk/console/config"
	"github.com/medidesk/console/logger"
	"github.com/medidesk/console/patients"
	"github.com/medidesk/console/remote"
	"github.com/medidesk/console/sessions"
)

// Dependencies returns the graph shared by the web console and the command line tools
func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			logger.NewProductionLogger,
			logger.Suggar,
			config.NewConfig,
			remote.NewConfig,
			remote.NewClient,
			NewPatientSource,
			NewPatientsRegistry,
			sessions.NewConfig,
			sessions.NewStore,
			auth.NewService,
			authz.NewGuard,
			NewRenderer,
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
	}
}

func NewPatientSource(client remote.Client) patients.Source {
	return client
}

func NewPatientsRegistry(source patients.Source, logger *zap.SugaredLogger) (*patients.Registry, error) {
	return patients.NewRegistry(patients.DefaultRegistrySize, source, logger)
}

func Start(e *echo.Echo, cfg *config.Config, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Infow("starting http server", "address", cfg.HttpAddress)
				if err := e.Start(cfg.HttpAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Errorw("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()
			return e.Shutdown(ctx)
		},
	})
}

// SetReady marks the console ready once the session store is started. The store is
// a dependency so its lifecycle hooks run first.
func SetReady(healthCheck *HealthCheck, _ sessions.Store, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			healthCheck.SetReady(true)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			healthCheck.SetReady(false)
			return nil
		},
	})
}

func MainLoop() {
	options := append(Dependencies(),
		fx.Invoke(SetReady),
		fx.Invoke(Start),
	)
	fx.New(options...).Run()
}
