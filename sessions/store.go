package sessions

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/medidesk/console/store"
)

// NewStore builds the backend selected by the configuration and ties its connections to
// the application lifecycle
func NewStore(cfg *Config, logger *zap.SugaredLogger, lifecycle fx.Lifecycle) (Store, error) {
	logger.Infow("using session store", "backend", cfg.Backend)

	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(cfg.MemorySize)
	case BackendRedis:
		client := NewRedisClient(cfg)
		lifecycle.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			},
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		return NewRedisStore(client, cfg.RedisPrefix), nil
	case BackendMongo:
		storeConfig, err := store.NewConfig()
		if err != nil {
			return nil, err
		}
		client, err := store.NewLifecycleClient(storeConfig, lifecycle)
		if err != nil {
			return nil, err
		}
		db, err := store.NewDatabase(client, storeConfig)
		if err != nil {
			return nil, err
		}
		mongoStore := NewMongoStore(db)
		lifecycle.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return mongoStore.Initialize(ctx)
			},
		})
		return mongoStore, nil
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.Backend)
	}
}
