package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/config"
	"github.com/dmitrijs2005/alumnet/internal/client/metrics"
	"github.com/dmitrijs2005/alumnet/internal/client/services"
	"github.com/dmitrijs2005/alumnet/internal/client/state"
	"github.com/dmitrijs2005/alumnet/internal/client/store"
	"github.com/dmitrijs2005/alumnet/internal/logging"
)

// App is one mounted client: its store lives from NewApp until Close.
type App struct {
	config        *config.Config
	store         *store.Store
	directory     services.DirectoryService
	notifications services.NotificationService
	messaging     services.MessagingService
	registry      *prometheus.Registry
	logger        logging.Logger
	token         string
	scanner       *bufio.Scanner
	out           io.Writer
}

// NewApp builds the HTTP client, store and services described by c.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	breaker := client.DefaultBreakerSettings()
	breaker.Timeout = c.BreakerTimeout
	breaker.MinRequests = c.BreakerMinRequests
	breaker.FailureThreshold = c.BreakerFailureThreshold

	apiClient, err := client.NewHTTPClient(c.ServerURL,
		client.WithToken(c.AuthToken),
		client.WithTimeout(c.RequestTimeout),
		client.WithBreaker(breaker),
		client.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return newApp(c, apiClient, logger, reg, m, bufio.NewScanner(os.Stdin), os.Stdout), nil
}

func newApp(c *config.Config, apiClient client.Client, logger logging.Logger,
	reg *prometheus.Registry, m *metrics.Metrics, scanner *bufio.Scanner, out io.Writer,
) *App {
	st := store.New(
		store.WithReducer(state.Reducer{KeepStaleFilters: c.KeepStaleFilters}),
		store.WithStaleGuard(c.StaleGuard),
		store.WithLogger(logger),
		store.WithMetrics(m),
	)
	svc := services.New(apiClient, st,
		services.WithLogger(logger),
		services.WithMetrics(m),
		services.WithToken(c.AuthToken),
		services.WithMaxInFlight(c.MaxInFlight),
	)

	return &App{
		config:        c,
		store:         st,
		directory:     svc,
		notifications: svc,
		messaging:     svc,
		registry:      reg,
		logger:        logger,
		token:         c.AuthToken,
		scanner:       scanner,
		out:           out,
	}
}

// Run blocks in the REPL and unmounts the App when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close unmounts the store. Commands still in flight are ignored.
func (a *App) Close() {
	a.store.Close()
}
