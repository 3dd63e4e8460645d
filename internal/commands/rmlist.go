package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklane/internal/config"
	"tasklane/internal/exitcode"
	"tasklane/internal/session"
)

func init() {
	Register(&RmListCmd{})
}

// RmListCmd implements the rmlist command.
type RmListCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *RmListCmd) SetForce(force bool) {
	c.force = force
}

func (c *RmListCmd) Name() string      { return "rmlist" }
func (c *RmListCmd) Aliases() []string { return nil }
func (c *RmListCmd) Synopsis() string  { return "Delete a list and its tasks" }
func (c *RmListCmd) Usage() string     { return "tasklane rmlist [--force] <list-name>" }
func (c *RmListCmd) NeedsStore() bool  { return true }

func (c *RmListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *RmListCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	name, ok := listNameArg(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	list, err := viewList(sess, name)
	if err != nil {
		return fail(errOut, err)
	}

	if list.Primary {
		fmt.Fprintln(errOut, "error: cannot delete primary list")
		return exitcode.UserError
	}

	// Trashed tasks go with the list; only active ones need --force.
	if !c.force && len(viewTasks(sess.State())) > 0 {
		fmt.Fprintln(errOut, "error: list not empty (use --force)")
		return exitcode.UserError
	}

	if err := sess.Coordinator.DeleteTaskList(ctx, list.ID); err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}
