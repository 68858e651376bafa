package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/alumnet/internal/client/models"
)

// fakeClient implements client.Client. Results are configured per method
// and every call is recorded by name.
type fakeClient struct {
	mu    sync.Mutex
	calls []string
	args  map[string]any

	Profile       *models.User
	MyProfile     *models.User
	AuthResult    *models.User
	Updated       *models.User
	Users         []models.User
	AuthUsers     []models.User
	Alumni        []models.User
	Colleges      []models.College
	Notifications *models.Notifications

	Err     error
	SendErr error
}

func (f *fakeClient) record(name string, arg any) error {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = make(map[string]any)
	}
	f.args[name] = arg
	err := f.Err
	f.mu.Unlock()
	return err
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Arg(name string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.args[name]
}

func (f *fakeClient) GetProfile(_ context.Context, id string) (*models.User, error) {
	if err := f.record("GetProfile", id); err != nil {
		return nil, err
	}
	return f.Profile, nil
}

func (f *fakeClient) GetAuthUsers(context.Context) ([]models.User, error) {
	if err := f.record("GetAuthUsers", nil); err != nil {
		return nil, err
	}
	return f.AuthUsers, nil
}

func (f *fakeClient) GetMyProfile(context.Context) (*models.User, error) {
	if err := f.record("GetMyProfile", nil); err != nil {
		return nil, err
	}
	return f.MyProfile, nil
}

func (f *fakeClient) GetAlumni(_ context.Context, collegeID string) ([]models.User, error) {
	if err := f.record("GetAlumni", collegeID); err != nil {
		return nil, err
	}
	return f.Alumni, nil
}

func (f *fakeClient) GetUsers(context.Context) ([]models.User, error) {
	if err := f.record("GetUsers", nil); err != nil {
		return nil, err
	}
	return f.Users, nil
}

func (f *fakeClient) GetColleges(context.Context) ([]models.College, error) {
	if err := f.record("GetColleges", nil); err != nil {
		return nil, err
	}
	return f.Colleges, nil
}

func (f *fakeClient) UpdateProfile(_ context.Context, fields models.Form) (*models.User, error) {
	if err := f.record("UpdateProfile", fields); err != nil {
		return nil, err
	}
	return f.Updated, nil
}

func (f *fakeClient) AuthenticateUser(_ context.Context, userID string) (*models.User, error) {
	if err := f.record("AuthenticateUser", userID); err != nil {
		return nil, err
	}
	return f.AuthResult, nil
}

func (f *fakeClient) SendEmail(_ context.Context, form models.Form) error {
	_ = f.record("SendEmail", form)
	return f.SendErr
}

func (f *fakeClient) SendSMS(_ context.Context, form models.Form) error {
	_ = f.record("SendSMS", form)
	return f.SendErr
}

func (f *fakeClient) GetNotifications(_ context.Context, userID string) (*models.Notifications, error) {
	if err := f.record("GetNotifications", userID); err != nil {
		return nil, err
	}
	return f.Notifications, nil
}

func (f *fakeClient) SendRequest(_ context.Context, form models.Form) (*models.Notifications, error) {
	if err := f.record("SendRequest", form); err != nil {
		return nil, err
	}
	return f.Notifications, nil
}
