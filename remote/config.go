package remote

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

const DefaultBaseUrl = "http://localhost:3005/api"

type Config struct {
	BaseUrl           string        `envconfig:"MEDIDESK_API_BASE_URL" default:"http://localhost:3005/api"`
	Timeout           time.Duration `envconfig:"MEDIDESK_API_TIMEOUT" default:"30s"`
	ValidateResponses bool          `envconfig:"MEDIDESK_API_VALIDATE_RESPONSES" default:"true"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
