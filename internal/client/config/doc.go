// Package config loads runtime configuration for the alumnet client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional file selected with -c or -config. Files ending in .yaml or
//     .yml are read as YAML, everything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Durations use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds:
//
//	server_url: http://127.0.0.1:5000
//	request_timeout: 5s
//	max_in_flight: 4
//	stale_guard: true
//	breaker:
//	  timeout: 30s
//	  min_requests: 5
//	  failure_threshold: 0.8
//
// The package does not read environment variables.
package config
