package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/alumnet/internal/client/config"
)

func (a *App) getStatus() string {
	s := a.store.Snapshot()
	name := "guest"
	if s.Session != nil {
		name = s.Session.Name
	}
	if s.Errors.Directory != nil || s.Errors.College != nil {
		name += " !"
	}
	return fmt.Sprintf("(%s)", name)
}

// Root prints the banner and runs the REPL on stdin until exit or EOF.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to alumnet CLI (type 'help' for commands)")
	if a.token != "" {
		a.directory.FetchMyProfile(ctx)
	}
	runREPL(ctx, a, a.getStatus, a.scanner)
}

// PromptToken asks for the session token when none is configured and stdin
// is an interactive terminal.
func PromptToken(c *config.Config, w io.Writer) error {
	if c.AuthToken != "" || !isTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	token, err := GetToken(w)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	c.AuthToken = token
	return nil
}
