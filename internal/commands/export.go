package commands

import (
	"context"
	"flag"
	"io"

	"gopkg.in/yaml.v3"

	"tasklane/internal/config"
	"tasklane/internal/exitcode"
	"tasklane/internal/model"
	"tasklane/internal/readmodel"
	"tasklane/internal/session"
)

func init() {
	Register(&ExportCmd{})
}

// exportDoc is the YAML document written by export.
type exportDoc struct {
	User  string       `yaml:"user"`
	Lists []exportList `yaml:"lists"`
	Trash []model.Task `yaml:"trash,omitempty"`
}

type exportList struct {
	model.TaskList `yaml:",inline"`
	Tasks          []model.Task `yaml:"tasks,omitempty"`
}

// ExportCmd implements the export command.
type ExportCmd struct{}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Write every list and task as YAML" }
func (c *ExportCmd) Usage() string     { return "tasklane export" }
func (c *ExportCmd) NeedsStore() bool  { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	s := sess.State()

	doc := exportDoc{User: sess.UserID, Trash: readmodel.TrashTasks(s)}
	for _, l := range readmodel.TaskLists(s) {
		doc.Lists = append(doc.Lists, exportList{TaskList: l, Tasks: s.Tasks[l.ID]})
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fail(errOut, err)
	}
	if err := enc.Close(); err != nil {
		return fail(errOut, err)
	}
	return exitcode.Success
}
