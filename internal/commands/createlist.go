package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklane/internal/config"
	"tasklane/internal/coordinator"
	"tasklane/internal/exitcode"
	"tasklane/internal/session"
)

func init() {
	Register(&CreateListCmd{})
	Register(&RenameListCmd{})
	Register(&PrimaryCmd{})
}

// listNameArg joins args into a list name.
func listNameArg(args []string, errOut io.Writer) (string, bool) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return "", false
	}
	return name, true
}

// CreateListCmd implements the createlist command.
type CreateListCmd struct {
	primary bool
}

// SetPrimary sets the primary flag (for testing).
func (c *CreateListCmd) SetPrimary(primary bool) {
	c.primary = primary
}

func (c *CreateListCmd) Name() string      { return "createlist" }
func (c *CreateListCmd) Aliases() []string { return []string{"addlist"} }
func (c *CreateListCmd) Synopsis() string  { return "Create a new list" }
func (c *CreateListCmd) Usage() string {
	return "tasklane createlist [--primary=false] <list-name>"
}
func (c *CreateListCmd) NeedsStore() bool { return true }

func (c *CreateListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.primary, "primary", true, "")
}

func (c *CreateListCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	name, ok := listNameArg(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	_, err := findList(sess.State(), name)
	if err == nil || errors.Is(err, ErrAmbiguousList) {
		fmt.Fprintf(errOut, "error: list already exists: %s\n", name)
		return exitcode.UserError
	}

	primary := c.primary
	_, err = sess.Coordinator.CreateTaskList(ctx, coordinator.CreateTaskListInput{Name: name, Primary: &primary})
	if err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}

// RenameListCmd implements the renamelist command.
type RenameListCmd struct {
	to string
}

// SetTo sets the new name (for testing).
func (c *RenameListCmd) SetTo(name string) {
	c.to = name
}

func (c *RenameListCmd) Name() string      { return "renamelist" }
func (c *RenameListCmd) Aliases() []string { return nil }
func (c *RenameListCmd) Synopsis() string  { return "Rename a list" }
func (c *RenameListCmd) Usage() string     { return "tasklane renamelist --to <new-name> <list-name>" }
func (c *RenameListCmd) NeedsStore() bool  { return true }

func (c *RenameListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.to, "to", "", "")
}

func (c *RenameListCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	newName := strings.TrimSpace(c.to)
	if newName == "" {
		fmt.Fprintln(errOut, "error: new name required (use --to)")
		return exitcode.UserError
	}
	name, ok := listNameArg(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	s := sess.State()
	list, err := findList(s, name)
	if err != nil {
		return fail(errOut, err)
	}
	if other, err := findList(s, newName); err == nil && other.ID != list.ID {
		fmt.Fprintf(errOut, "error: list already exists: %s\n", newName)
		return exitcode.UserError
	}

	err = sess.Coordinator.EditTaskList(ctx, coordinator.EditTaskListInput{ListID: list.ID, Name: &newName})
	if err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}

// PrimaryCmd implements the primary command.
type PrimaryCmd struct{}

func (c *PrimaryCmd) Name() string      { return "primary" }
func (c *PrimaryCmd) Aliases() []string { return nil }
func (c *PrimaryCmd) Synopsis() string  { return "Make a list the primary list" }
func (c *PrimaryCmd) Usage() string     { return "tasklane primary <list-name>" }
func (c *PrimaryCmd) NeedsStore() bool  { return true }

func (c *PrimaryCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PrimaryCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	name, ok := listNameArg(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	list, err := findList(sess.State(), name)
	if err != nil {
		return fail(errOut, err)
	}
	if err := sess.Coordinator.SetPrimaryTaskList(ctx, list.ID); err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}
