package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/alumnet/internal/flagx"
	"github.com/dmitrijs2005/alumnet/internal/timex"
)

// FileConfig is the on-disk shape of the configuration. Absent keys leave
// the current value alone, hence the pointers.
type FileConfig struct {
	ServerURL        *string         `json:"server_url" yaml:"server_url"`
	AuthToken        *string         `json:"auth_token" yaml:"auth_token"`
	RequestTimeout   *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	MaxInFlight      *int            `json:"max_in_flight" yaml:"max_in_flight"`
	StaleGuard       *bool           `json:"stale_guard" yaml:"stale_guard"`
	KeepStaleFilters *bool           `json:"keep_stale_filters" yaml:"keep_stale_filters"`
	LogFormat        *string         `json:"log_format" yaml:"log_format"`
	Breaker          *struct {
		Timeout          *timex.Duration `json:"timeout" yaml:"timeout"`
		MinRequests      *uint32         `json:"min_requests" yaml:"min_requests"`
		FailureThreshold *float64        `json:"failure_threshold" yaml:"failure_threshold"`
	} `json:"breaker" yaml:"breaker"`
}

// parseFile overlays cfg with the file named by -c/-config. The format
// follows the extension: .yaml/.yml is YAML, anything else JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	set(&cfg.ServerURL, fc.ServerURL)
	set(&cfg.AuthToken, fc.AuthToken)
	set(&cfg.MaxInFlight, fc.MaxInFlight)
	set(&cfg.StaleGuard, fc.StaleGuard)
	set(&cfg.KeepStaleFilters, fc.KeepStaleFilters)
	set(&cfg.LogFormat, fc.LogFormat)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if b := fc.Breaker; b != nil {
		if b.Timeout != nil {
			cfg.BreakerTimeout = b.Timeout.Duration
		}
		set(&cfg.BreakerMinRequests, b.MinRequests)
		set(&cfg.BreakerFailureThreshold, b.FailureThreshold)
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
