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
	"tasklane/internal/session"
)

func init() {
	Register(&AddCmd{})
	Register(&EditCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	listName string
	notes    string
}

// SetListName sets the list name (for testing).
func (c *AddCmd) SetListName(name string) {
	c.listName = name
}

// SetNotes sets the task notes (for testing).
func (c *AddCmd) SetNotes(notes string) {
	c.notes = notes
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "tasklane add [--list <list-name>] [--notes <text>] <title...>"
}
func (c *AddCmd) NeedsStore() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.StringVar(&c.notes, "notes", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	if _, err := viewList(sess, c.listName); err != nil {
		return fail(errOut, err)
	}

	if _, err := sess.Coordinator.CreateTask(ctx, coordinator.CreateTaskInput{Title: title, Notes: c.notes}); err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}

// optionalString is a string flag that records whether it was given.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}

func (o *optionalString) ptr() *string {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// EditCmd implements the edit command.
type EditCmd struct {
	listName string
	title    optionalString
	notes    optionalString
}

// SetListName sets the list name (for testing).
func (c *EditCmd) SetListName(name string) {
	c.listName = name
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(title string) {
	_ = c.title.Set(title)
}

// SetNotes sets the new notes (for testing).
func (c *EditCmd) SetNotes(notes string) {
	_ = c.notes.Set(notes)
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task's title or notes" }
func (c *EditCmd) Usage() string {
	return "tasklane edit [--list <list-name>] [--title <text>] [--notes <text>] <ref>"
}
func (c *EditCmd) NeedsStore() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	c.title, c.notes = optionalString{}, optionalString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.notes, "notes", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	if !c.title.set && !c.notes.set {
		fmt.Fprintln(errOut, "error: nothing to edit (use --title or --notes)")
		return exitcode.UserError
	}
	if c.title.set && strings.TrimSpace(c.title.value) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	if _, err := ParseTaskRef(args); err != nil {
		return fail(errOut, err)
	}
	tasks, err := pickViewTasks(sess, c.listName, args)
	if err != nil {
		return fail(errOut, err)
	}

	err = sess.Coordinator.EditTask(ctx, coordinator.EditTaskInput{
		TaskID: tasks[0].ID,
		Title:  c.title.ptr(),
		Notes:  c.notes.ptr(),
	})
	if err != nil {
		return fail(errOut, err)
	}
	return done(cfg, out)
}
