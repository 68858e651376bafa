package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/alumnet/internal/client/auth"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/client/state"
	"github.com/dmitrijs2005/alumnet/internal/common"
)

// NotificationService drives the friend-request workflow. Every successful
// call replaces the three notification lists with the server's snapshot;
// the client never moves entries between lists itself.
type NotificationService interface {
	FetchNotifications(ctx context.Context, userID string)
	FetchMyNotifications(ctx context.Context, session *models.User)
	SendOrAcceptRequest(ctx context.Context, form models.Form)
}

var _ NotificationService = (*Service)(nil)

var notificationsCmd = command{"fetch_notifications", state.SlotNotifications, state.DomainDirectory}

// FetchNotifications replaces the notification lists with the snapshot of userID.
func (s *Service) FetchNotifications(ctx context.Context, userID string) {
	in := trimID(userID)
	run(ctx, s, notificationsCmd, in,
		func(ctx context.Context) (*models.Notifications, error) { return s.client.GetNotifications(ctx, in.ID) },
		func(m state.Meta, n *models.Notifications) state.Action {
			return state.NotificationsLoaded{Meta: m, Origin: state.OriginFetch, Notifications: *n}
		})
}

// FetchMyNotifications loads the notifications of the signed-in user. The id
// comes from session when it is loaded, otherwise from the session token.
func (s *Service) FetchMyNotifications(ctx context.Context, session *models.User) {
	id, err := s.myID(session)
	if err != nil {
		s.logger.Warn(ctx, "no user id for notifications", "error", err)
		s.store.Dispatch(ctx, state.Failed{
			Slot:    state.SlotNotifications,
			Domain:  state.DomainDirectory,
			Failure: models.Failure{Kind: models.FailureValidation, Message: err.Error()},
		})
		return
	}
	s.FetchNotifications(ctx, id)
}

func (s *Service) myID(session *models.User) (string, error) {
	if session != nil && session.ID != "" {
		return session.ID, nil
	}
	if s.token == "" {
		return "", common.ErrNoSession
	}
	id, err := auth.UserIDFromToken(s.token, s.now())
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrNoSession, err)
	}
	return id, nil
}

// SendOrAcceptRequest forwards form unchanged. Whether it sends a new
// request or accepts a pending one is decided by the server from the form.
func (s *Service) SendOrAcceptRequest(ctx context.Context, form models.Form) {
	run(ctx, s, command{"send_request", state.SlotNotifications, state.DomainDirectory}, formInput{Form: form},
		func(ctx context.Context) (*models.Notifications, error) { return s.client.SendRequest(ctx, form) },
		func(m state.Meta, n *models.Notifications) state.Action {
			return state.NotificationsLoaded{Meta: m, Origin: state.OriginRequest, Notifications: *n}
		})
}
