package services

import (
	"context"

	"github.com/dmitrijs2005/alumnet/internal/client/models"
)

// MessagingService sends best-effort notifications. Failures are logged and
// counted but never reach the state.
type MessagingService interface {
	SendEmail(ctx context.Context, form models.Form)
	SendSMS(ctx context.Context, form models.Form)
}

var _ MessagingService = (*Service)(nil)

// SendEmail asks the backend to email the recipients in form. State is not touched.
func (s *Service) SendEmail(ctx context.Context, form models.Form) {
	s.fireAndForget(ctx, "email", form, s.client.SendEmail)
}

// SendSMS asks the backend to text the recipients in form. State is not touched.
func (s *Service) SendSMS(ctx context.Context, form models.Form) {
	s.fireAndForget(ctx, "sms", form, s.client.SendSMS)
}

func (s *Service) fireAndForget(ctx context.Context, channel string, form models.Form,
	send func(context.Context, models.Form) error,
) {
	start := s.now()
	name := "send_" + channel
	log := s.logger.With("command", name)

	if err := s.check(formInput{Form: form}); err != nil {
		log.Warn(ctx, "invalid input", "error", err)
		s.metrics.ObserveCommand(name, outcomeInvalid, s.now().Sub(start))
		return
	}
	if err := send(ctx, form); err != nil {
		log.Error(ctx, channel+" sending error", "error", err)
		s.metrics.IncSideChannelFailure(channel)
		s.metrics.ObserveCommand(name, outcomeFailed, s.now().Sub(start))
		return
	}
	log.Info(ctx, channel+" sent")
	s.metrics.ObserveCommand(name, outcomeOK, s.now().Sub(start))
}
