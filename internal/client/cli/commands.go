package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/alumnet/internal/client/auth"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/client/state"
)

func oneArg(args []string) (string, error) {
	if len(args) != 1 {
		return "", errUsage
	}
	return args[0], nil
}

func noArgs(args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	return nil
}

// formArgs turns name=value arguments into a form. Without arguments the
// fields are read interactively, one per line.
func (a *App) formArgs(args []string) (models.Form, error) {
	if len(args) == 0 {
		lines, err := GetPairs(a.scanner, a.out)
		if err != nil {
			return nil, err
		}
		args = lines
	}
	return models.FormFromPairs(args)
}

func (a *App) Colleges(ctx context.Context, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	a.directory.FetchColleges(ctx)
	s := a.store.Snapshot()
	printColleges(a.out, s)
	printError(a.out, s, state.DomainCollege)
	return nil
}

func (a *App) Users(ctx context.Context, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	a.directory.FetchUsersForCollege(ctx)
	a.printUsers()
	return nil
}

func (a *App) AuthUsers(ctx context.Context, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	a.directory.FetchAuthUsers(ctx)
	a.printUsers()
	return nil
}

func (a *App) printUsers() {
	s := a.store.Snapshot()
	printUserList(a.out, "Users", s.Users)
	printError(a.out, s, state.DomainDirectory)
}

// Alumni loads the alumni of a college; without an id it uses the selected
// college.
func (a *App) Alumni(ctx context.Context, args []string) error {
	id := a.store.Snapshot().CurrentCollegeID
	if len(args) > 0 {
		var err error
		if id, err = oneArg(args); err != nil {
			return err
		}
	}
	if id == "" {
		return errUsage
	}
	a.directory.FetchAlumniForCollege(ctx, id)
	s := a.store.Snapshot()
	printUserList(a.out, "Alumni", s.VisibleAlumni())
	printError(a.out, s, state.DomainDirectory)
	return nil
}

func (a *App) Profile(ctx context.Context, args []string) error {
	id, err := oneArg(args)
	if err != nil {
		return err
	}
	a.directory.FetchProfile(ctx, id)
	s := a.store.Snapshot()
	printUser(a.out, "Profile", s.Profile)
	printError(a.out, s, state.DomainDirectory)
	return nil
}

func (a *App) Me(ctx context.Context, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	a.directory.FetchMyProfile(ctx)
	s := a.store.Snapshot()
	printUser(a.out, "Session", s.Session)
	printError(a.out, s, state.DomainDirectory)
	return nil
}

func (a *App) SelectCollege(ctx context.Context, args []string) error {
	id, err := oneArg(args)
	if err != nil {
		return err
	}
	a.directory.SetCurrentCollegeID(ctx, id)
	fmt.Fprintln(a.out, "Current college:", id)
	return nil
}

func (a *App) SelectAlumnus(ctx context.Context, args []string) error {
	id, err := oneArg(args)
	if err != nil {
		return err
	}
	a.directory.SetCurrentAlumnusID(ctx, id)
	fmt.Fprintln(a.out, "Current alumnus:", id)
	return nil
}

func (a *App) FilterColleges(ctx context.Context, args []string) error {
	a.directory.FilterColleges(ctx, strings.Join(args, " "))
	printColleges(a.out, a.store.Snapshot())
	return nil
}

func (a *App) FilterAlumni(ctx context.Context, args []string) error {
	a.directory.FilterAlumni(ctx, strings.Join(args, " "))
	printUserList(a.out, "Alumni", a.store.Snapshot().VisibleAlumni())
	return nil
}

func (a *App) ClearColleges(ctx context.Context, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	a.directory.ClearCollegeFilter(ctx)
	printColleges(a.out, a.store.Snapshot())
	return nil
}

func (a *App) ClearAlumni(ctx context.Context, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	a.directory.ClearAlumniFilter(ctx)
	printUserList(a.out, "Alumni", a.store.Snapshot().VisibleAlumni())
	return nil
}

func (a *App) Update(ctx context.Context, args []string) error {
	form, err := a.formArgs(args)
	if err != nil {
		return err
	}
	a.directory.UpdateProfile(ctx, form)
	s := a.store.Snapshot()
	printUser(a.out, "Session", s.Session)
	printError(a.out, s, state.DomainCollege)
	return nil
}

func (a *App) Authenticate(ctx context.Context, args []string) error {
	id, err := oneArg(args)
	if err != nil {
		return err
	}
	a.directory.Authenticate(ctx, id)
	s := a.store.Snapshot()
	printUser(a.out, "Authenticated", s.AuthResult)
	printError(a.out, s, state.DomainCollege)
	return nil
}

func (a *App) Email(ctx context.Context, args []string) error {
	form, err := a.formArgs(args)
	if err != nil {
		return err
	}
	a.messaging.SendEmail(ctx, form)
	fmt.Fprintln(a.out, "Email queued")
	return nil
}

func (a *App) SMS(ctx context.Context, args []string) error {
	form, err := a.formArgs(args)
	if err != nil {
		return err
	}
	a.messaging.SendSMS(ctx, form)
	fmt.Fprintln(a.out, "SMS queued")
	return nil
}

// Notifications loads the lists of the given user, or of the signed-in user
// without an argument.
func (a *App) Notifications(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		a.notifications.FetchMyNotifications(ctx, a.store.Snapshot().Session)
	case 1:
		a.notifications.FetchNotifications(ctx, args[0])
	default:
		return errUsage
	}
	s := a.store.Snapshot()
	printNotifications(a.out, s.Notifications)
	printError(a.out, s, state.DomainDirectory)
	return nil
}

func (a *App) Request(ctx context.Context, args []string) error {
	form, err := a.formArgs(args)
	if err != nil {
		return err
	}
	a.notifications.SendOrAcceptRequest(ctx, form)
	s := a.store.Snapshot()
	printNotifications(a.out, s.Notifications)
	printError(a.out, s, state.DomainDirectory)
	return nil
}

// Connection reports where the signed-in user and another user stand in the
// request workflow, according to the last loaded lists.
func (a *App) Connection(ctx context.Context, args []string) error {
	other, err := oneArg(args)
	if err != nil {
		return err
	}
	s := a.store.Snapshot()
	if s.Session == nil {
		fmt.Fprintln(a.out, "Load your profile first (me)")
		return nil
	}
	fmt.Fprintf(a.out, "%s / %s: %s\n", s.Session.ID, other, s.Notifications.StatusOf(s.Session.ID, other))
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	printSnapshot(a.out, a.store.Snapshot())
	return nil
}

func (a *App) Refresh(ctx context.Context, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	a.directory.Refresh(ctx)
	printSnapshot(a.out, a.store.Snapshot())
	return nil
}

// Stats prints the client counters and command latencies gathered so far.
func (a *App) Stats(ctx context.Context, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	families, err := a.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			name := mf.GetName() + "{" + strings.Join(labels, ",") + "}"
			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines, fmt.Sprintf("%s count=%d sum=%.3fs", name, h.GetSampleCount(), h.GetSampleSum()))
			}
		}
	}
	sort.Strings(lines)
	if len(lines) == 0 {
		fmt.Fprintln(a.out, "No activity yet")
	}
	for _, l := range lines {
		fmt.Fprintln(a.out, l)
	}
	return nil
}

func (a *App) WhoAmI(ctx context.Context, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	if a.token == "" {
		fmt.Fprintln(a.out, "No session token")
		return nil
	}
	claims, err := auth.ParseClaims(a.token)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "User id:", claims.User.ID)
	if claims.ExpiresAt != nil {
		label := "valid until"
		if claims.Expired(time.Now()) {
			label = "expired at"
		}
		fmt.Fprintln(a.out, "Token", label, claims.ExpiresAt.Time.Format(time.RFC3339))
	}
	return nil
}
