// Package services contains the command layer of the alumnet client. Each
// command validates its input, calls the backend through client.Client and
// turns the outcome into exactly one state action. Commands never return
// errors: failures end up in the snapshot's domain errors.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/metrics"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/client/state"
	"github.com/dmitrijs2005/alumnet/internal/logging"
)

const defaultMaxInFlight = 4

const (
	outcomeOK      = "ok"
	outcomeFailed  = "failed"
	outcomeInvalid = "invalid"
)

// Dispatcher is the part of the store commands depend on.
type Dispatcher interface {
	Begin(slot state.Slot) uint64
	Dispatch(ctx context.Context, a state.Action) bool
}

// Service implements DirectoryService, NotificationService and
// MessagingService. It is safe for concurrent use.
type Service struct {
	client      client.Client
	store       Dispatcher
	validate    *validator.Validate
	logger      logging.Logger
	metrics     *metrics.Metrics
	token       string
	maxInFlight int
	now         func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for command outcomes.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMetrics records command durations and outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithToken gives FetchMyNotifications a way to learn the user id before
// the own profile is loaded.
func WithToken(token string) Option {
	return func(s *Service) { s.token = token }
}

// WithMaxInFlight bounds the backend calls Refresh issues at once.
func WithMaxInFlight(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxInFlight = n
		}
	}
}

// New builds a Service that calls c and reports every outcome to d.
func New(c client.Client, d Dispatcher, opts ...Option) *Service {
	s := &Service{
		client:      c,
		store:       d,
		validate:    validator.New(),
		logger:      logging.Discard(),
		maxInFlight: defaultMaxInFlight,
		now:         time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// command describes one backend-backed command run.
type command struct {
	name   string
	slot   state.Slot
	domain state.Domain
}

// run executes call and dispatches its outcome. input, when non-nil, is
// validated first; invalid input is recorded without contacting the backend.
func run[T any](ctx context.Context, s *Service, cmd command, input any,
	call func(ctx context.Context) (T, error),
	success func(meta state.Meta, v T) state.Action,
) {
	start := s.now()
	log := s.logger.With("command", cmd.name)

	if input != nil {
		if err := s.check(input); err != nil {
			log.Warn(ctx, "invalid input", "error", err)
			s.store.Dispatch(ctx, state.Failed{Slot: cmd.slot, Domain: cmd.domain, Failure: FailureFrom(err)})
			s.metrics.ObserveCommand(cmd.name, outcomeInvalid, s.now().Sub(start))
			return
		}
	}

	if _, ok := logging.RequestIDFrom(ctx); !ok {
		ctx = logging.ContextWithRequestID(ctx, uuid.NewString())
	}
	meta := state.Meta{Seq: s.store.Begin(cmd.slot)}
	v, err := call(ctx)
	if err != nil {
		log.Error(ctx, "command failed", "error", err)
		s.store.Dispatch(ctx, state.Failed{Meta: meta, Slot: cmd.slot, Domain: cmd.domain, Failure: FailureFrom(err)})
		s.metrics.ObserveCommand(cmd.name, outcomeFailed, s.now().Sub(start))
		return
	}

	s.store.Dispatch(ctx, success(meta, v))
	log.Debug(ctx, "command done", "seq", meta.Seq)
	s.metrics.ObserveCommand(cmd.name, outcomeOK, s.now().Sub(start))
}

type idInput struct {
	ID string `validate:"required"`
}

type formInput struct {
	Form models.Form `validate:"required,min=1"`
}

func (s *Service) check(input any) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	return &ValidationError{Field: strings.ToLower(ve[0].Field()), Tag: ve[0].Tag()}
}

func trimID(id string) idInput {
	return idInput{ID: strings.TrimSpace(id)}
}
