package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklane/internal/config"
	"tasklane/internal/coordinator"
	"tasklane/internal/exitcode"
	"tasklane/internal/session"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	listName  string
	completed bool
	trash     bool
}

// SetListName sets the list name (for testing).
func (c *RmCmd) SetListName(name string) {
	c.listName = name
}

// SetCompleted sets the completed flag (for testing).
func (c *RmCmd) SetCompleted(completed bool) {
	c.completed = completed
}

// SetTrash sets the trash flag (for testing).
func (c *RmCmd) SetTrash(trash bool) {
	c.trash = trash
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return nil }
func (c *RmCmd) Synopsis() string  { return "Delete tasks" }
func (c *RmCmd) Usage() string {
	return "tasklane rm [--list <list-name>] [--trash] (--completed | <ref...>)"
}
func (c *RmCmd) NeedsStore() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.completed, "completed", false, "")
	fs.BoolVar(&c.trash, "trash", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	co := sess.Coordinator

	if c.completed {
		if len(args) > 0 || c.trash {
			fmt.Fprintln(errOut, "error: --completed takes no task references and cannot be used with --trash")
			return exitcode.UserError
		}
		if _, err := viewList(sess, c.listName); err != nil {
			return fail(errOut, err)
		}
		if err := co.DeleteCompletedTasks(ctx); err != nil {
			return fail(errOut, err)
		}
		return done(cfg, out)
	}

	if c.trash && c.listName != "" {
		fmt.Fprintln(errOut, "error: cannot use both --list and --trash")
		return exitcode.UserError
	}

	var err error
	if c.trash {
		tasks, perr := pickTrashTasks(sess, args)
		if perr != nil {
			return fail(errOut, perr)
		}
		selectTasks(sess, tasks)
		err = co.DeleteSelectedTasks(ctx, coordinator.DeleteSelectedTasksOptions{FromTrash: true})
	} else {
		tasks, perr := pickViewTasks(sess, c.listName, args)
		if perr != nil {
			return fail(errOut, perr)
		}
		if len(tasks) == 1 {
			err = co.DeleteTask(ctx, tasks[0].ID)
		} else {
			selectTasks(sess, tasks)
			err = co.DeleteSelectedTasks(ctx, coordinator.DeleteSelectedTasksOptions{})
		}
	}
	if err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}
