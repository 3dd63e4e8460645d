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
	Register(&DoneCmd{})
	Register(&UndoneCmd{})
	Register(&ReopenCompletedCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *DoneCmd) SetListName(name string) {
	c.listName = name
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark tasks completed" }
func (c *DoneCmd) Usage() string     { return "tasklane done [--list <list-name>] <ref...>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	return runComplete(ctx, cfg, sess, c.listName, true, args, out, errOut)
}

// UndoneCmd implements the undone command.
type UndoneCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *UndoneCmd) SetListName(name string) {
	c.listName = name
}

func (c *UndoneCmd) Name() string      { return "undone" }
func (c *UndoneCmd) Aliases() []string { return []string{"reopen"} }
func (c *UndoneCmd) Synopsis() string  { return "Mark tasks not completed" }
func (c *UndoneCmd) Usage() string     { return "tasklane undone [--list <list-name>] <ref...>" }
func (c *UndoneCmd) NeedsStore() bool  { return true }

func (c *UndoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *UndoneCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	return runComplete(ctx, cfg, sess, c.listName, false, args, out, errOut)
}

// runComplete is the shared implementation for done and undone.
// One ref is a single-task edit; several refs become a selection.
func runComplete(ctx context.Context, cfg *config.Config, sess *session.Session, listName string, complete bool, args []string, out, errOut io.Writer) int {
	tasks, err := pickViewTasks(sess, listName, args)
	if err != nil {
		return fail(errOut, err)
	}

	co := sess.Coordinator
	switch {
	case len(tasks) == 1 && complete:
		err = co.CompleteTask(ctx, tasks[0].ID)
	case len(tasks) == 1:
		err = co.DecompleteTask(ctx, tasks[0].ID)
	case complete:
		selectTasks(sess, tasks)
		err = co.CompleteSelectedTasks(ctx)
	default:
		selectTasks(sess, tasks)
		err = co.DecompleteSelectedTasks(ctx)
	}
	if err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}

// ReopenCompletedCmd implements the reopen-completed command.
type ReopenCompletedCmd struct {
	listName string
}

func (c *ReopenCompletedCmd) Name() string      { return "reopen-completed" }
func (c *ReopenCompletedCmd) Aliases() []string { return nil }
func (c *ReopenCompletedCmd) Synopsis() string  { return "Mark every completed task not completed" }
func (c *ReopenCompletedCmd) Usage() string {
	return "tasklane reopen-completed [--list <list-name>]"
}
func (c *ReopenCompletedCmd) NeedsStore() bool { return true }

func (c *ReopenCompletedCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *ReopenCompletedCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if _, err := viewList(sess, c.listName); err != nil {
		return fail(errOut, err)
	}
	if err := sess.Coordinator.DecompleteCompletedTasks(ctx); err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}
