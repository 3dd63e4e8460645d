package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklane/internal/config"
	"tasklane/internal/exitcode"
	"tasklane/internal/output"
	"tasklane/internal/readmodel"
	"tasklane/internal/session"
)

func init() {
	Register(&ListCmd{})
	Register(&TrashCmd{})
}

// ListCmd implements the list command.
// Handles both `tasklane` (no args) and `tasklane list <list-name>`.
type ListCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *ListCmd) SetListName(name string) {
	c.listName = name
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "tasklane list [--list <list-name>] [<list-name>]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	name := c.listName
	if len(args) > 0 {
		if name != "" {
			fmt.Fprintln(errOut, "error: cannot use both --list and a list name")
			return exitcode.UserError
		}
		name = strings.Join(args, " ")
		if strings.TrimSpace(name) == "" {
			fmt.Fprintln(errOut, "error: list name required")
			return exitcode.UserError
		}
	}

	list, err := viewList(sess, name)
	if err != nil {
		return fail(errOut, err)
	}

	tasks := viewTasks(sess.State())
	output.FormatListHeader(out, list)
	for i, task := range tasks {
		output.FormatTask(out, i+1, task)
	}
	if len(tasks) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}

// TrashCmd implements the trash command.
type TrashCmd struct{}

func (c *TrashCmd) Name() string      { return "trash" }
func (c *TrashCmd) Aliases() []string { return nil }
func (c *TrashCmd) Synopsis() string  { return "List archived tasks" }
func (c *TrashCmd) Usage() string     { return "tasklane trash" }
func (c *TrashCmd) NeedsStore() bool  { return true }

func (c *TrashCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TrashCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	tasks := readmodel.TrashTasks(sess.State())
	for i, task := range tasks {
		output.FormatTask(out, i+1, task)
	}
	if len(tasks) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "trash is empty")
	}
	return exitcode.Success
}
