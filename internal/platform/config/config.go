package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"rickmorty/pkg/validation"
)

// DefaultUpstreamURL is the public Rick and Morty API.
const DefaultUpstreamURL = "https://rickandmortyapi.com/api"

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"ADDR" envDefault:":8080" validate:"required"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	OTelEndpoint    string        `env:"OTEL_ENDPOINT" validate:"omitempty,url"`

	Upstream Upstream
}

// Upstream configures the character API the gateway fronts.
type Upstream struct {
	BaseURL string        `env:"RICKANDMORTY_API_URL" envDefault:"https://rickandmortyapi.com/api" validate:"required,http_url"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s" validate:"gt=0"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the gateway cannot start with.
func (c Server) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
