package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/client/state"
)

// DirectoryService covers profiles, the college directory and local
// selection and filtering.
type DirectoryService interface {
	FetchProfile(ctx context.Context, id string)
	FetchAuthUsers(ctx context.Context)
	FetchMyProfile(ctx context.Context)
	FetchColleges(ctx context.Context)
	FetchUsersForCollege(ctx context.Context)
	FetchAlumniForCollege(ctx context.Context, collegeID string)
	UpdateProfile(ctx context.Context, fields models.Form)
	Authenticate(ctx context.Context, userID string)
	Refresh(ctx context.Context)

	SetCurrentCollegeID(ctx context.Context, id string)
	SetCurrentAlumnusID(ctx context.Context, id string)
	FilterColleges(ctx context.Context, text string)
	FilterAlumni(ctx context.Context, text string)
	ClearCollegeFilter(ctx context.Context)
	ClearAlumniFilter(ctx context.Context)
}

var _ DirectoryService = (*Service)(nil)

// FetchProfile loads the profile of user id into the profile slot.
func (s *Service) FetchProfile(ctx context.Context, id string) {
	in := trimID(id)
	run(ctx, s, command{"fetch_profile", state.SlotProfile, state.DomainDirectory}, in,
		func(ctx context.Context) (*models.User, error) { return s.client.GetProfile(ctx, in.ID) },
		func(m state.Meta, u *models.User) state.Action { return state.ProfileLoaded{Meta: m, User: *u} })
}

// FetchAuthUsers loads the authenticated users into the users collection.
func (s *Service) FetchAuthUsers(ctx context.Context) {
	run(ctx, s, command{"fetch_auth_users", state.SlotUsers, state.DomainDirectory}, nil,
		s.client.GetAuthUsers,
		func(m state.Meta, u []models.User) state.Action { return state.UsersLoaded{Meta: m, Users: u} })
}

// FetchMyProfile loads the signed-in user into the session.
func (s *Service) FetchMyProfile(ctx context.Context) {
	run(ctx, s, command{"fetch_my_profile", state.SlotSession, state.DomainDirectory}, nil,
		s.client.GetMyProfile,
		func(m state.Meta, u *models.User) state.Action { return state.SessionLoaded{Meta: m, User: *u} })
}

// FetchColleges replaces the college directory.
func (s *Service) FetchColleges(ctx context.Context) {
	run(ctx, s, command{"fetch_colleges", state.SlotColleges, state.DomainCollege}, nil,
		s.client.GetColleges,
		func(m state.Meta, c []models.College) state.Action { return state.CollegesLoaded{Meta: m, Colleges: c} })
}

// FetchUsersForCollege loads the registered users into the users collection.
func (s *Service) FetchUsersForCollege(ctx context.Context) {
	run(ctx, s, command{"fetch_users", state.SlotUsers, state.DomainDirectory}, nil,
		s.client.GetUsers,
		func(m state.Meta, u []models.User) state.Action { return state.UsersLoaded{Meta: m, Users: u} })
}

// FetchAlumniForCollege replaces the alumni list with the alumni of collegeID.
func (s *Service) FetchAlumniForCollege(ctx context.Context, collegeID string) {
	in := trimID(collegeID)
	run(ctx, s, command{"fetch_alumni", state.SlotAlumni, state.DomainDirectory}, in,
		func(ctx context.Context) ([]models.User, error) { return s.client.GetAlumni(ctx, in.ID) },
		func(m state.Meta, u []models.User) state.Action {
			return state.AlumniLoaded{Meta: m, CollegeID: in.ID, Alumni: u}
		})
}

// UpdateProfile sends fields as is and stores the server's representation
// of the session user.
func (s *Service) UpdateProfile(ctx context.Context, fields models.Form) {
	run(ctx, s, command{"update_profile", state.SlotSession, state.DomainCollege}, formInput{Form: fields},
		func(ctx context.Context) (*models.User, error) { return s.client.UpdateProfile(ctx, fields) },
		func(m state.Meta, u *models.User) state.Action { return state.ProfileUpdated{Meta: m, User: *u} })
}

// Authenticate marks userID as a verified alumnus of the session user's college.
func (s *Service) Authenticate(ctx context.Context, userID string) {
	in := trimID(userID)
	run(ctx, s, command{"authenticate", state.SlotAuthResult, state.DomainCollege}, in,
		func(ctx context.Context) (*models.User, error) { return s.client.AuthenticateUser(ctx, in.ID) },
		func(m state.Meta, u *models.User) state.Action { return state.UserAuthenticated{Meta: m, User: *u} })
}

// Refresh loads the own profile, the colleges and the registered users
// concurrently. Each load completes on its own; a failing one does not stop
// the others.
func (s *Service) Refresh(ctx context.Context) {
	var g errgroup.Group
	g.SetLimit(s.maxInFlight)

	loads := []func(context.Context){
		s.FetchMyProfile,
		s.FetchColleges,
		s.FetchUsersForCollege,
	}
	for _, load := range loads {
		load := load
		g.Go(func() error {
			load(ctx)
			return nil
		})
	}
	_ = g.Wait()
}

// SetCurrentCollegeID selects a college. The id is not checked against the directory.
func (s *Service) SetCurrentCollegeID(ctx context.Context, id string) {
	s.local(ctx, state.CollegeSelected{ID: id})
}

// SetCurrentAlumnusID selects an alumnus.
func (s *Service) SetCurrentAlumnusID(ctx context.Context, id string) {
	s.local(ctx, state.AlumnusSelected{ID: id})
}

// FilterColleges narrows the colleges by name or location. Blank text clears the filter.
func (s *Service) FilterColleges(ctx context.Context, text string) {
	s.local(ctx, state.CollegesFiltered{Text: text})
}

// FilterAlumni narrows the alumni by name or email. Blank text clears the filter.
func (s *Service) FilterAlumni(ctx context.Context, text string) {
	s.local(ctx, state.AlumniFiltered{Text: text})
}

// ClearCollegeFilter shows the full college directory again.
func (s *Service) ClearCollegeFilter(ctx context.Context) {
	s.local(ctx, state.CollegeFilterCleared{})
}

// ClearAlumniFilter shows the full alumni list again.
func (s *Service) ClearAlumniFilter(ctx context.Context) {
	s.local(ctx, state.AlumniFilterCleared{})
}

func (s *Service) local(ctx context.Context, a state.Action) {
	s.store.Dispatch(ctx, a)
}
