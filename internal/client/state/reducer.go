package state

import "github.com/dmitrijs2005/alumnet/internal/client/models"

// Reducer computes the next snapshot. The zero value invalidates a filtered
// view whenever the collection under it is replaced.
type Reducer struct {
	// KeepStaleFilters leaves FilteredColleges and FilteredAlumni in place
	// when Colleges or Alumni are refetched.
	KeepStaleFilters bool
}

// Apply is Reducer{}.Apply.
func Apply(s State, a Action) State {
	return Reducer{}.Apply(s, a)
}

// Apply returns the snapshot that follows s under a. It performs no I/O and
// never modifies data reachable from s. Unknown actions return s unchanged.
func (r Reducer) Apply(s State, a Action) State {
	switch a := a.(type) {
	case SessionLoaded:
		s.Session = userPtr(a.User)
		s.Errors = s.Errors.with(DomainDirectory, nil)
	case ProfileLoaded:
		s.Profile = userPtr(a.User)
		s.Errors = s.Errors.with(DomainDirectory, nil)
	case ProfileUpdated:
		s.Session = userPtr(a.User)
		s.Errors = s.Errors.with(DomainCollege, nil)
	case UsersLoaded:
		s.Users = cloneSlice(a.Users)
		s.Errors = s.Errors.with(DomainDirectory, nil)
	case AlumniLoaded:
		s.Alumni = cloneSlice(a.Alumni)
		if !r.KeepStaleFilters {
			s.FilteredAlumni = nil
		}
		s.Errors = s.Errors.with(DomainDirectory, nil)
	case CollegesLoaded:
		s.Colleges = cloneSlice(a.Colleges)
		if !r.KeepStaleFilters {
			s.FilteredColleges = nil
		}
		s.Errors = s.Errors.with(DomainCollege, nil)
	case UserAuthenticated:
		s.AuthResult = userPtr(a.User)
		s.Errors = s.Errors.with(DomainCollege, nil)
	case NotificationsLoaded:
		s.Notifications = a.Notifications.Clone()
		s.Errors = s.Errors.with(DomainDirectory, nil)
	case Failed:
		f := a.Failure
		s.Errors = s.Errors.with(a.Domain, &f)

	case CollegeSelected:
		s.CurrentCollegeID = a.ID
	case AlumnusSelected:
		s.CurrentAlumnusID = a.ID
	case CollegesFiltered:
		s.FilteredColleges = FilterColleges(s.Colleges, a.Text)
	case AlumniFiltered:
		s.FilteredAlumni = FilterAlumni(s.Alumni, a.Text)
	case CollegeFilterCleared:
		s.FilteredColleges = nil
	case AlumniFilterCleared:
		s.FilteredAlumni = nil
	}
	return s
}

func userPtr(u models.User) *models.User {
	return &u
}

func cloneSlice[T any](in []T) []T {
	return append(make([]T, 0, len(in)), in...)
}
