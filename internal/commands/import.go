package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklane/internal/config"
	"tasklane/internal/exitcode"
	"tasklane/internal/model"
	"tasklane/internal/session"
)

// ListSource supplies lists to import.
type ListSource interface {
	FetchLists(ctx context.Context) ([]model.ImportedList, error)
}

// ImportSourceFactory opens the source the import command reads from.
// The binary sets it to the Google Tasks client.
var ImportSourceFactory func(ctx context.Context, cfg *config.Config) (ListSource, error)

func init() {
	Register(&ImportCmd{})
}

// ImportCmd implements the import command.
type ImportCmd struct{}

func (c *ImportCmd) Name() string      { return "import" }
func (c *ImportCmd) Aliases() []string { return nil }
func (c *ImportCmd) Synopsis() string  { return "Import lists and tasks from Google Tasks" }
func (c *ImportCmd) Usage() string     { return "tasklane import" }
func (c *ImportCmd) NeedsStore() bool  { return true }

func (c *ImportCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ImportCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	if ImportSourceFactory == nil {
		fmt.Fprintln(errOut, "error: no import source configured")
		return exitcode.AuthError
	}

	src, err := ImportSourceFactory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}

	lists, err := src.FetchLists(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	ids, err := sess.Coordinator.ImportTaskLists(ctx, lists)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		total := 0
		for _, l := range lists {
			total += len(l.Tasks)
		}
		fmt.Fprintf(out, "imported %d lists, %d tasks\n", len(ids), total)
	}
	return exitcode.Success
}
