package client

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/alumnet/internal/logging"
	"github.com/sony/gobreaker"
)

// BreakerSettings configures the circuit breaker around backend round trips.
type BreakerSettings struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerSettings trips after 80% failures over at least 5 requests
// and probes again after 30s.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:             "alumnet-backend",
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

func newBreaker(s BreakerSettings, logger logging.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= s.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn(context.Background(), "circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			return !tripsBreaker(err)
		},
	})
}

// tripsBreaker counts network failures and 5xx answers. Client-side
// cancellation, 4xx and undecodable 2xx answers mean the server is up.
func tripsBreaker(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var re *ResponseError
	if errors.As(err, &re) {
		return re.StatusCode >= 500
	}
	var de *DecodeError
	return !errors.As(err, &de)
}
