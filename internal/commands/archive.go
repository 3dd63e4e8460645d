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
	Register(&ArchiveCmd{})
	Register(&UnarchiveCmd{})
	Register(&EmptyTrashCmd{})
}

// ArchiveCmd implements the archive command.
type ArchiveCmd struct {
	listName  string
	completed bool
}

// SetListName sets the list name (for testing).
func (c *ArchiveCmd) SetListName(name string) {
	c.listName = name
}

// SetCompleted sets the completed flag (for testing).
func (c *ArchiveCmd) SetCompleted(completed bool) {
	c.completed = completed
}

func (c *ArchiveCmd) Name() string      { return "archive" }
func (c *ArchiveCmd) Aliases() []string { return nil }
func (c *ArchiveCmd) Synopsis() string  { return "Move tasks to the trash" }
func (c *ArchiveCmd) Usage() string {
	return "tasklane archive [--list <list-name>] (--completed | <ref...>)"
}
func (c *ArchiveCmd) NeedsStore() bool { return true }

func (c *ArchiveCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.completed, "completed", false, "")
}

func (c *ArchiveCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	co := sess.Coordinator

	if c.completed {
		if len(args) > 0 {
			fmt.Fprintln(errOut, "error: cannot use both --completed and task references")
			return exitcode.UserError
		}
		if _, err := viewList(sess, c.listName); err != nil {
			return fail(errOut, err)
		}
		if err := co.ArchiveCompletedTasks(ctx); err != nil {
			return fail(errOut, err)
		}
		return done(cfg, out)
	}

	tasks, err := pickViewTasks(sess, c.listName, args)
	if err != nil {
		return fail(errOut, err)
	}
	if len(tasks) == 1 {
		err = co.ArchiveTask(ctx, tasks[0].ID)
	} else {
		selectTasks(sess, tasks)
		err = co.ArchiveSelectedTasks(ctx)
	}
	if err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}

// UnarchiveCmd implements the unarchive command.
// Refs number the tasks shown by the trash command.
type UnarchiveCmd struct{}

func (c *UnarchiveCmd) Name() string      { return "unarchive" }
func (c *UnarchiveCmd) Aliases() []string { return nil }
func (c *UnarchiveCmd) Synopsis() string  { return "Take a task out of the trash into its old list" }
func (c *UnarchiveCmd) Usage() string     { return "tasklane unarchive <trash-ref>" }
func (c *UnarchiveCmd) NeedsStore() bool  { return true }

func (c *UnarchiveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UnarchiveCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	if _, err := ParseTaskRef(args); err != nil {
		return fail(errOut, err)
	}
	tasks, err := pickTrashTasks(sess, args)
	if err != nil {
		return fail(errOut, err)
	}
	if err := sess.Coordinator.UnarchiveTask(ctx, tasks[0].ID); err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}

// EmptyTrashCmd implements the empty-trash command.
type EmptyTrashCmd struct{}

func (c *EmptyTrashCmd) Name() string      { return "empty-trash" }
func (c *EmptyTrashCmd) Aliases() []string { return nil }
func (c *EmptyTrashCmd) Synopsis() string  { return "Delete every archived task" }
func (c *EmptyTrashCmd) Usage() string     { return "tasklane empty-trash" }
func (c *EmptyTrashCmd) NeedsStore() bool  { return true }

func (c *EmptyTrashCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EmptyTrashCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	if err := sess.Coordinator.EmptyTrash(ctx); err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}
