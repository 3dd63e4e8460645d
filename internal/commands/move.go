package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklane/internal/config"
	"tasklane/internal/coordinator"
	"tasklane/internal/exitcode"
	"tasklane/internal/model"
	"tasklane/internal/session"
)

func init() {
	Register(&MvCmd{})
	Register(&RestoreCmd{})
}

// MvCmd implements the mv command.
type MvCmd struct {
	listName string
	to       string
}

// SetListName sets the source list name (for testing).
func (c *MvCmd) SetListName(name string) {
	c.listName = name
}

// SetTo sets the destination list name (for testing).
func (c *MvCmd) SetTo(name string) {
	c.to = name
}

func (c *MvCmd) Name() string      { return "mv" }
func (c *MvCmd) Aliases() []string { return []string{"move"} }
func (c *MvCmd) Synopsis() string  { return "Move tasks to another list" }
func (c *MvCmd) Usage() string {
	return "tasklane mv [--list <list-name>] --to <list-name> <ref...>"
}
func (c *MvCmd) NeedsStore() bool { return true }

func (c *MvCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.StringVar(&c.to, "to", "", "")
}

func (c *MvCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	dest, code, ok := resolveDestination(sess, c.to, errOut)
	if !ok {
		return code
	}

	tasks, err := pickViewTasks(sess, c.listName, args)
	if err != nil {
		return fail(errOut, err)
	}
	return runMove(ctx, cfg, sess, tasks, dest.ID, false, out, errOut)
}

// RestoreCmd implements the restore command.
// Refs number the tasks shown by the trash command.
type RestoreCmd struct {
	to string
}

// SetTo sets the destination list name (for testing).
func (c *RestoreCmd) SetTo(name string) {
	c.to = name
}

func (c *RestoreCmd) Name() string      { return "restore" }
func (c *RestoreCmd) Aliases() []string { return nil }
func (c *RestoreCmd) Synopsis() string  { return "Move tasks out of the trash into a list" }
func (c *RestoreCmd) Usage() string     { return "tasklane restore --to <list-name> <trash-ref...>" }
func (c *RestoreCmd) NeedsStore() bool  { return true }

func (c *RestoreCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.to, "to", "", "")
}

func (c *RestoreCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	dest, code, ok := resolveDestination(sess, c.to, errOut)
	if !ok {
		return code
	}

	tasks, err := pickTrashTasks(sess, args)
	if err != nil {
		return fail(errOut, err)
	}
	return runMove(ctx, cfg, sess, tasks, dest.ID, true, out, errOut)
}

func resolveDestination(sess *session.Session, name string, errOut io.Writer) (model.TaskList, int, bool) {
	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(errOut, "error: destination list required (use --to)")
		return model.TaskList{}, exitcode.UserError, false
	}
	dest, err := findList(sess.State(), name)
	if err != nil {
		return model.TaskList{}, fail(errOut, err), false
	}
	return dest, exitcode.Success, true
}

// runMove moves one task directly or several through the selection.
func runMove(ctx context.Context, cfg *config.Config, sess *session.Session, tasks []model.Task, destID string, fromTrash bool, out, errOut io.Writer) int {
	var err error
	if len(tasks) == 1 {
		err = sess.Coordinator.MoveTask(ctx, coordinator.MoveTaskInput{
			TaskID:    tasks[0].ID,
			ListID:    destID,
			FromTrash: fromTrash,
		})
	} else {
		selectTasks(sess, tasks)
		err = sess.Coordinator.MoveSelectedTasks(ctx, coordinator.MoveSelectedTasksInput{
			ListID:    destID,
			FromTrash: fromTrash,
		})
	}
	if err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}
