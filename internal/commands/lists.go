package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklane/internal/config"
	"tasklane/internal/exitcode"
	"tasklane/internal/output"
	"tasklane/internal/readmodel"
	"tasklane/internal/session"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "List task lists with their counters" }
func (c *ListsCmd) Usage() string     { return "tasklane lists" }
func (c *ListsCmd) NeedsStore() bool  { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	lists := readmodel.TaskLists(sess.State())
	if len(lists) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no lists found")
		}
		return exitcode.Success
	}

	output.FormatLists(out, lists)
	return exitcode.Success
}
