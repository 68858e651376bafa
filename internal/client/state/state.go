// Package state holds the snapshot of the alumnet client and the pure
// transition function that produces the next snapshot from an Action.
//
// Snapshots are values. Transitions never modify slices or records of the
// previous snapshot, so a snapshot handed to a reader stays valid after
// later dispatches. Readers must treat slices as read-only.
package state

import "github.com/dmitrijs2005/alumnet/internal/client/models"

// Slot names a wholesale-replaceable part of the state fed by the backend.
type Slot int

const (
	SlotSession Slot = iota + 1
	SlotProfile
	SlotUsers
	SlotAlumni
	SlotColleges
	SlotAuthResult
	SlotNotifications
)

var slotNames = map[Slot]string{
	SlotSession:       "session",
	SlotProfile:       "profile",
	SlotUsers:         "users",
	SlotAlumni:        "alumni",
	SlotColleges:      "colleges",
	SlotAuthResult:    "auth_result",
	SlotNotifications: "notifications",
}

func (s Slot) String() string {
	if n, ok := slotNames[s]; ok {
		return n
	}
	return "unknown"
}

// Domain scopes recorded failures.
type Domain string

const (
	DomainDirectory Domain = "directory"
	DomainCollege   Domain = "college"
)

// Errors keeps the last failure per domain; nil means no outstanding error.
type Errors struct {
	Directory *models.Failure
	College   *models.Failure
}

// For returns the failure recorded for d.
func (e Errors) For(d Domain) *models.Failure {
	switch d {
	case DomainDirectory:
		return e.Directory
	case DomainCollege:
		return e.College
	}
	return nil
}

func (e Errors) with(d Domain, f *models.Failure) Errors {
	switch d {
	case DomainDirectory:
		e.Directory = f
	case DomainCollege:
		e.College = f
	}
	return e
}

// State is one immutable snapshot.
type State struct {
	// Session is the signed-in user's own profile.
	Session *models.User
	// Profile is the last profile fetched by id.
	Profile    *models.User
	AuthResult *models.User

	Users    []models.User
	Alumni   []models.User
	Colleges []models.College

	CurrentCollegeID string
	CurrentAlumnusID string

	// Filtered views: nil means no filter is active, an empty non-nil
	// slice means the filter matched nothing.
	FilteredColleges []models.College
	FilteredAlumni   []models.User

	Notifications models.Notifications

	Errors Errors
}

// Initial is the snapshot at mount time.
func Initial() State {
	return State{
		Users:         []models.User{},
		Alumni:        []models.User{},
		Colleges:      []models.College{},
		Notifications: models.EmptyNotifications(),
	}
}

// VisibleColleges is what a list view shows: the filtered view when a
// filter is active, the whole collection otherwise.
func (s State) VisibleColleges() []models.College {
	if s.FilteredColleges != nil {
		return s.FilteredColleges
	}
	return s.Colleges
}

// VisibleAlumni is the alumni counterpart of VisibleColleges.
func (s State) VisibleAlumni() []models.User {
	if s.FilteredAlumni != nil {
		return s.FilteredAlumni
	}
	return s.Alumni
}
