package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the alumnet client.
//
// Fields:
//   - ServerURL: base URL of the alumni backend, e.g. http://127.0.0.1:5000.
//   - AuthToken: session token sent in the x-auth-token header.
//   - RequestTimeout: upper bound for one backend round trip.
//   - MaxInFlight: backend calls a refresh may issue at once.
//   - StaleGuard: drop responses older than the newest request per slot.
//   - KeepStaleFilters: keep filtered views when their collection is refetched.
//   - LogFormat: "json" (production) or "console" (development).
//   - Breaker*: circuit breaker around backend round trips.
type Config struct {
	ServerURL        string        `validate:"required,url"`
	AuthToken        string        `validate:"-"`
	RequestTimeout   time.Duration `validate:"gt=0"`
	MaxInFlight      int           `validate:"min=1,max=64"`
	StaleGuard       bool
	KeepStaleFilters bool
	LogFormat        string `validate:"oneof=json console"`

	BreakerTimeout          time.Duration `validate:"gt=0"`
	BreakerMinRequests      uint32        `validate:"min=1"`
	BreakerFailureThreshold float64       `validate:"gt=0,lte=1"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 10 * time.Second
	c.MaxInFlight = 4
	c.LogFormat = "json"
	c.BreakerTimeout = 30 * time.Second
	c.BreakerMinRequests = 5
	c.BreakerFailureThreshold = 0.8
}

// Load builds a Config from defaults, then the file named by -c/-config
// (JSON or YAML), then flags in args. Later sources take precedence.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
