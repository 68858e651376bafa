package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/alumnet/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string          backend base URL
//	-t duration        request timeout, e.g. 5s
//	-token string      session token
//	-max-in-flight int concurrent backend calls during refresh
//	-stale-guard       drop out-of-date responses
//	-keep-filters      keep filtered views across refetches
//	-log-format string json or console
//
// Flags not listed here are ignored, see flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args,
		[]string{"-a", "-t", "-token", "-max-in-flight", "-log-format"},
		"-stale-guard", "-keep-filters",
	)

	fs := flag.NewFlagSet("alumnet", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.AuthToken, "token", cfg.AuthToken, "session token")
	fs.IntVar(&cfg.MaxInFlight, "max-in-flight", cfg.MaxInFlight, "concurrent backend calls during refresh")
	fs.BoolVar(&cfg.StaleGuard, "stale-guard", cfg.StaleGuard, "drop out-of-date responses")
	fs.BoolVar(&cfg.KeepStaleFilters, "keep-filters", cfg.KeepStaleFilters, "keep filtered views across refetches")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "json or console")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
