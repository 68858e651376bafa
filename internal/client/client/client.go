package client

import (
	"context"

	"github.com/dmitrijs2005/alumnet/internal/client/models"
)

// Client is the Transport Adapter: one method per backend operation, each
// returning the decoded payload or a typed failure.
type Client interface {
	GetProfile(ctx context.Context, id string) (*models.User, error)
	GetAuthUsers(ctx context.Context) ([]models.User, error)
	GetMyProfile(ctx context.Context) (*models.User, error)
	GetAlumni(ctx context.Context, collegeID string) ([]models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	GetColleges(ctx context.Context) ([]models.College, error)
	UpdateProfile(ctx context.Context, fields models.Form) (*models.User, error)
	AuthenticateUser(ctx context.Context, userID string) (*models.User, error)
	SendEmail(ctx context.Context, form models.Form) error
	SendSMS(ctx context.Context, form models.Form) error
	GetNotifications(ctx context.Context, userID string) (*models.Notifications, error)
	SendRequest(ctx context.Context, form models.Form) (*models.Notifications, error)
}
