package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HttpAddress     string        `envconfig:"MEDIDESK_HTTP_ADDRESS" default:":8080" required:"true"`
	ShutdownTimeout time.Duration `envconfig:"MEDIDESK_HTTP_SHUTDOWN_TIMEOUT" default:"20s"`
	SessionCookie   string        `envconfig:"MEDIDESK_SESSION_COOKIE" default:"medidesk_session"`
	SecureCookie    bool          `envconfig:"MEDIDESK_SESSION_COOKIE_SECURE"`
}

func New() *Config {
	return &Config{}
}

func (c *Config) LoadFromEnv() error {
	return envconfig.Process("", c)
}

func NewConfig() (*Config, error) {
	cfg := New()
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
