package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/client/state"
)

func printColleges(w io.Writer, s state.State) {
	title := "Colleges"
	if s.FilteredColleges != nil {
		title = fmt.Sprintf("Colleges (filtered, %d of %d)", len(s.FilteredColleges), len(s.Colleges))
	}
	fmt.Fprintln(w, title+":")
	list := s.VisibleColleges()
	if len(list) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, c := range list {
		mark := " "
		if c.ID == s.CurrentCollegeID {
			mark = "*"
		}
		fmt.Fprintf(w, " %s%s\n", mark, c)
	}
}

func printUserList(w io.Writer, title string, users []models.User) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(users))
	for _, u := range users {
		fmt.Fprintf(w, "  %s\n", u)
	}
}

func printUser(w io.Writer, title string, u *models.User) {
	if u == nil {
		fmt.Fprintf(w, "%s: (not loaded)\n", title)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", title, u)
	for _, f := range []struct{ name, value string }{
		{"phone", u.Phone},
		{"college", u.College},
		{"branch", u.Branch},
		{"batch", u.Batch},
		{"company", u.Company},
		{"designation", u.Designation},
	} {
		if f.value != "" {
			fmt.Fprintf(w, "  %-12s %s\n", f.name+":", f.value)
		}
	}
}

func printNotifications(w io.Writer, n models.Notifications) {
	lists := []struct {
		title string
		items []models.Connection
	}{
		{"Friends", n.Friends},
		{"Awaiting your decision", n.Accept},
		{"Sent requests", n.Request},
	}
	for _, l := range lists {
		fmt.Fprintf(w, "%s (%d):\n", l.title, len(l.items))
		for _, c := range l.items {
			fmt.Fprintf(w, "  %s\n", c)
		}
	}
}

func printError(w io.Writer, s state.State, d state.Domain) {
	if f := s.Errors.For(d); f != nil {
		fmt.Fprintf(w, "Error (%s): %s\n", d, f.Message)
	}
}

func printSnapshot(w io.Writer, s state.State) {
	printUser(w, "Session", s.Session)
	printColleges(w, s)
	printUserList(w, "Users", s.Users)
	printUserList(w, "Alumni", s.VisibleAlumni())
	if s.CurrentAlumnusID != "" {
		fmt.Fprintln(w, "Current alumnus:", s.CurrentAlumnusID)
	}
	printNotifications(w, s.Notifications)
	printError(w, s, state.DomainDirectory)
	printError(w, s, state.DomainCollege)
}
