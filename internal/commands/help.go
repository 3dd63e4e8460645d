package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/gosuri/uitable"

	"tasklane/internal/config"
	"tasklane/internal/exitcode"
	"tasklane/internal/session"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasklane help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	WriteHelp(out, DefaultRegistry)
	return exitcode.Success
}

// WriteHelp prints usage for every command in reg.
func WriteHelp(w io.Writer, reg *Registry) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklane                      List open tasks in the primary list")

	t := uitable.New()
	t.Separator = "  "
	t.Wrap = false
	for _, cmd := range reg.All() {
		usage := cmd.Usage()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			usage += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		t.AddRow("  "+usage, cmd.Synopsis())
	}
	fmt.Fprintln(w, t.String())

	fmt.Fprint(w, commonFlags)
}

const commonFlags = `
Common flags:
  --config <dir>   Override config directory
  --user <id>      Act as this user
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Refs are the numbers printed by list (or trash for restore and unarchive).
`
