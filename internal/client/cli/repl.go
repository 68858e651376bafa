package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// errUsage is returned by handlers when the arguments do not fit the command.
var errUsage = errors.New("usage")

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Colleges(ctx context.Context, args []string) error
	Users(ctx context.Context, args []string) error
	AuthUsers(ctx context.Context, args []string) error
	Alumni(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Me(ctx context.Context, args []string) error
	SelectCollege(ctx context.Context, args []string) error
	SelectAlumnus(ctx context.Context, args []string) error
	FilterColleges(ctx context.Context, args []string) error
	FilterAlumni(ctx context.Context, args []string) error
	ClearColleges(ctx context.Context, args []string) error
	ClearAlumni(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Authenticate(ctx context.Context, args []string) error
	Email(ctx context.Context, args []string) error
	SMS(ctx context.Context, args []string) error
	Notifications(ctx context.Context, args []string) error
	Request(ctx context.Context, args []string) error
	Connection(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Refresh(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
}

type handler struct {
	usage string
	run   func(execIface, context.Context, []string) error
}

var commands = map[string]handler{
	"colleges":        {"colleges", execIface.Colleges},
	"users":           {"users", execIface.Users},
	"authusers":       {"authusers", execIface.AuthUsers},
	"alumni":          {"alumni <college-id>", execIface.Alumni},
	"profile":         {"profile <user-id>", execIface.Profile},
	"me":              {"me", execIface.Me},
	"select-college":  {"select-college <college-id>", execIface.SelectCollege},
	"select-alumnus":  {"select-alumnus <user-id>", execIface.SelectAlumnus},
	"filter-colleges": {"filter-colleges <text>", execIface.FilterColleges},
	"filter-alumni":   {"filter-alumni <text>", execIface.FilterAlumni},
	"clear-colleges":  {"clear-colleges", execIface.ClearColleges},
	"clear-alumni":    {"clear-alumni", execIface.ClearAlumni},
	"update":          {"update name=value...", execIface.Update},
	"authenticate":    {"authenticate <user-id>", execIface.Authenticate},
	"email":           {"email name=value...", execIface.Email},
	"sms":             {"sms name=value...", execIface.SMS},
	"notifications":   {"notifications [user-id]", execIface.Notifications},
	"request":         {"request name=value...", execIface.Request},
	"connection":      {"connection <user-id>", execIface.Connection},
	"show":            {"show", execIface.Show},
	"refresh":         {"refresh", execIface.Refresh},
	"stats":           {"stats", execIface.Stats},
	"whoami":          {"whoami", execIface.WhoAmI},
}

const helpText = `Available commands:
  directory:     colleges, users, authusers, alumni <college-id>, profile <user-id>, me, refresh
  selection:     select-college <id>, select-alumnus <id>
  filters:       filter-colleges <text>, filter-alumni <text>, clear-colleges, clear-alumni
  profile:       update name=value..., authenticate <user-id>
  messages:      email name=value..., sms name=value...
  connections:   notifications [user-id], request name=value..., connection <user-id>
  other:         show, stats, whoami, help, exit`

// runREPL starts a simple read–eval–print loop for the alumnet CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command and the rest as its arguments, and dispatches to methods on 'a'.
// Unknown commands are reported back to the user. The loop exits on scanner
// EOF or when the user types "exit" or "quit".
//
// Handler errors other than errUsage are printed and the loop goes on;
// backend failures never reach here, they are recorded in the snapshot.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("alumnet %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		h, ok := commands[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if err := h.run(a, ctx, args); err != nil {
			if errors.Is(err, errUsage) {
				printlnFn("Usage:", h.usage)
			} else {
				printlnFn("Error:", err)
			}
		}
	}
}
