package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tasklane/internal/backend/googletasks"
	"tasklane/internal/config"
	"tasklane/internal/exitcode"
	"tasklane/internal/session"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd authorizes the Google Tasks import source.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with Google for import" }
func (c *LoginCmd) Usage() string     { return "tasklane login [common flags]" }
func (c *LoginCmd) NeedsStore() bool  { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	if !cfg.HasOAuthClient() {
		printOAuthSetup(cfg, errOut)
		return exitcode.AuthError
	}

	if cfg.HasToken() && googletasks.TokenValid(ctx, cfg) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	if err := googletasks.Authorize(ctx, cfg, errOut); err != nil {
		if errors.Is(err, googletasks.ErrNoOAuthClient) {
			printOAuthSetup(cfg, errOut)
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.AuthError
	}

	return done(cfg, out)
}

func printOAuthSetup(cfg *config.Config, errOut io.Writer) {
	fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n\n", cfg.Dir)
	fmt.Fprint(errOut, `To import from Google Tasks, you need OAuth credentials:

1. Go to https://console.cloud.google.com/apis/credentials
2. Create a project (or select an existing one)
3. Enable the Google Tasks API:
   https://console.cloud.google.com/apis/library/tasks.googleapis.com
4. Create an OAuth client ID of type 'Desktop app' and download the JSON
5. Save it as:
`)
	fmt.Fprintf(errOut, "   %s\n\nThen run 'tasklane login' again.\n", cfg.OAuthClientPath())
}
