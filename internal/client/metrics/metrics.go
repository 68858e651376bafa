// Package metrics holds the Prometheus instruments of the alumnet client.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for dispatch and commands. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	// Actions applied by the store, by action name
	ActionsApplied *prometheus.CounterVec

	// Results dropped by the stale-response guard, by slot
	ActionsDiscarded *prometheus.CounterVec

	// Command latency including the backend round trip
	CommandDuration *prometheus.HistogramVec

	// Command outcomes: "ok", "failed", "invalid"
	CommandOutcome *prometheus.CounterVec

	// Fire-and-forget sends that failed, by channel
	SideChannelFailures *prometheus.CounterVec
}

// New registers all client metrics on reg. Pass prometheus.NewRegistry() in
// tests to keep instances independent.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ActionsApplied: f.NewCounterVec(prometheus.CounterOpts{
			Name: "alumnet_client_actions_applied_total",
			Help: "Total actions applied to the client state by action",
		}, []string{"action"}),

		ActionsDiscarded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "alumnet_client_actions_discarded_total",
			Help: "Total stale results discarded by slot",
		}, []string{"slot"}),

		CommandDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "alumnet_client_command_duration_seconds",
			Help:    "Duration of client commands by command",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"command"}),

		CommandOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "alumnet_client_command_outcomes_total",
			Help: "Total client command outcomes by command and outcome",
		}, []string{"command", "outcome"}),

		SideChannelFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "alumnet_client_side_channel_failures_total",
			Help: "Total failed fire-and-forget sends by channel",
		}, []string{"channel"}),
	}
}

// IncApplied counts an action the store applied.
func (m *Metrics) IncApplied(action string) {
	if m != nil {
		m.ActionsApplied.WithLabelValues(action).Inc()
	}
}

// IncDiscarded counts a result the stale-response guard dropped for slot.
func (m *Metrics) IncDiscarded(slot string) {
	if m != nil {
		m.ActionsDiscarded.WithLabelValues(slot).Inc()
	}
}

// ObserveCommand records how long one command run took and how it ended.
func (m *Metrics) ObserveCommand(command, outcome string, d time.Duration) {
	if m != nil {
		m.CommandDuration.WithLabelValues(command).Observe(d.Seconds())
		m.CommandOutcome.WithLabelValues(command, outcome).Inc()
	}
}

// IncSideChannelFailure counts a failed email or SMS send.
func (m *Metrics) IncSideChannelFailure(channel string) {
	if m != nil {
		m.SideChannelFailures.WithLabelValues(channel).Inc()
	}
}
