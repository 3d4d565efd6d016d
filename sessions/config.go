package sessions

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Backend    string        `envconfig:"MEDIDESK_SESSION_STORE" default:"memory"`
	Lifetime   time.Duration `envconfig:"MEDIDESK_SESSION_LIFETIME" default:"12h"`
	MemorySize int           `envconfig:"MEDIDESK_SESSION_MEMORY_SIZE" default:"10000"`

	RedisAddress  string `envconfig:"MEDIDESK_REDIS_ADDRESS" default:"localhost:6379"`
	RedisPassword string `envconfig:"MEDIDESK_REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"MEDIDESK_REDIS_DB" default:"0"`
	RedisPrefix   string `envconfig:"MEDIDESK_REDIS_KEY_PREFIX" default:"medidesk:session:"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
