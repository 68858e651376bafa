package state

import "github.com/dmitrijs2005/alumnet/internal/client/models"

// Action is the closed set of transitions Apply understands. Only types
// declared in this package implement it.
type Action interface {
	isAction()
}

// Meta is embedded by actions that carry a backend result. Seq is the ticket
// taken by the command before it called the backend; zero means unsequenced.
type Meta struct {
	Seq uint64
}

func (m Meta) Sequence() uint64 { return m.Seq }

// Result is implemented by every action produced from a backend response.
type Result interface {
	Action
	Sequence() uint64
	Target() Slot
}

// NotificationOrigin tells which command produced a notification snapshot.
type NotificationOrigin string

const (
	OriginFetch   NotificationOrigin = "fetch"
	OriginRequest NotificationOrigin = "request"
)

type (
	// SessionLoaded carries the signed-in user's own profile.
	SessionLoaded struct {
		Meta
		User models.User
	}
	// ProfileLoaded carries a profile fetched by id.
	ProfileLoaded struct {
		Meta
		User models.User
	}
	// ProfileUpdated carries the server's view of the session user after an update.
	ProfileUpdated struct {
		Meta
		User models.User
	}
	// UsersLoaded replaces the users list, registered or authenticated.
	UsersLoaded struct {
		Meta
		Users []models.User
	}
	// AlumniLoaded replaces the alumni list with those of CollegeID.
	AlumniLoaded struct {
		Meta
		CollegeID string
		Alumni    []models.User
	}
	// CollegesLoaded replaces the college directory.
	CollegesLoaded struct {
		Meta
		Colleges []models.College
	}
	// UserAuthenticated carries the user the college just verified.
	UserAuthenticated struct {
		Meta
		User models.User
	}
	// NotificationsLoaded replaces all three notification lists. Origin is
	// informational and only logged.
	NotificationsLoaded struct {
		Meta
		Origin        NotificationOrigin
		Notifications models.Notifications
	}
	// Failed records a backend or validation failure for Domain. Slot names
	// the data the command would have replaced; that data is left untouched.
	Failed struct {
		Meta
		Slot    Slot
		Domain  Domain
		Failure models.Failure
	}
)

// CollegeSelected sets the current college id.
type CollegeSelected struct{ ID string }

// AlumnusSelected sets the current alumnus id.
type AlumnusSelected struct{ ID string }

// CollegesFiltered narrows the colleges view; blank Text clears it.
type CollegesFiltered struct{ Text string }

// AlumniFiltered narrows the alumni view; blank Text clears it.
type AlumniFiltered struct{ Text string }

// CollegeFilterCleared drops the college filter.
type CollegeFilterCleared struct{}

// AlumniFilterCleared drops the alumni filter.
type AlumniFilterCleared struct{}

func (SessionLoaded) isAction() {}
func (ProfileLoaded) isAction() {}
func (ProfileUpdated) isAction() {}
func (UsersLoaded) isAction() {}
func (AlumniLoaded) isAction() {}
func (CollegesLoaded) isAction() {}
func (UserAuthenticated) isAction() {}
func (NotificationsLoaded) isAction() {}
func (Failed) isAction() {}
func (CollegeSelected) isAction() {}
func (AlumnusSelected) isAction() {}
func (CollegesFiltered) isAction() {}
func (AlumniFiltered) isAction() {}
func (CollegeFilterCleared) isAction() {}
func (AlumniFilterCleared) isAction() {}

func (SessionLoaded) Target() Slot { return SlotSession }
func (ProfileLoaded) Target() Slot { return SlotProfile }
func (ProfileUpdated) Target() Slot { return SlotSession }
func (UsersLoaded) Target() Slot { return SlotUsers }
func (AlumniLoaded) Target() Slot { return SlotAlumni }
func (CollegesLoaded) Target() Slot { return SlotColleges }
func (UserAuthenticated) Target() Slot { return SlotAuthResult }
func (NotificationsLoaded) Target() Slot { return SlotNotifications }
func (f Failed) Target() Slot { return f.Slot }

// Name returns a short label for logs and metrics.
func Name(a Action) string {
	switch a.(type) {
	case SessionLoaded:
		return "session_loaded"
	case ProfileLoaded:
		return "profile_loaded"
	case ProfileUpdated:
		return "profile_updated"
	case UsersLoaded:
		return "users_loaded"
	case AlumniLoaded:
		return "alumni_loaded"
	case CollegesLoaded:
		return "colleges_loaded"
	case UserAuthenticated:
		return "user_authenticated"
	case NotificationsLoaded:
		return "notifications_loaded"
	case Failed:
		return "failed"
	case CollegeSelected:
		return "college_selected"
	case AlumnusSelected:
		return "alumnus_selected"
	case CollegesFiltered:
		return "colleges_filtered"
	case AlumniFiltered:
		return "alumni_filtered"
	case CollegeFilterCleared:
		return "college_filter_cleared"
	case AlumniFilterCleared:
		return "alumni_filter_cleared"
	}
	return "unknown"
}

// Attrs returns the key-value pairs used to log a.
func Attrs(a Action) []any {
	attrs := []any{"action", Name(a)}
	if r, ok := a.(Result); ok && r.Sequence() != 0 {
		attrs = append(attrs, "seq", r.Sequence())
	}
	switch v := a.(type) {
	case AlumniLoaded:
		attrs = append(attrs, "college_id", v.CollegeID, "count", len(v.Alumni))
	case NotificationsLoaded:
		attrs = append(attrs, "origin", string(v.Origin))
	case Failed:
		attrs = append(attrs, "slot", v.Slot.String(), "domain", string(v.Domain), "kind", string(v.Failure.Kind))
	}
	return attrs
}
