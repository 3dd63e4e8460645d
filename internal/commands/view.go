package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"tasklane/internal/config"
	"tasklane/internal/coordinator"
	"tasklane/internal/exitcode"
	"tasklane/internal/model"
	"tasklane/internal/readmodel"
	"tasklane/internal/session"
)

var (
	// ErrListNotFound indicates no list has the given name.
	ErrListNotFound = errors.New("list not found")

	// ErrAmbiguousList indicates several lists share the given name.
	ErrAmbiguousList = errors.New("ambiguous list name")

	// ErrNoPrimaryList indicates the user has no primary list to default to.
	ErrNoPrimaryList = errors.New("no primary list (run: tasklane createlist <name>)")
)

// findList finds a list by name (case-insensitive, trimmed).
func findList(s readmodel.State, name string) (model.TaskList, error) {
	name = strings.TrimSpace(name)
	nameLower := strings.ToLower(name)

	var matches []model.TaskList
	for _, l := range readmodel.TaskLists(s) {
		if strings.ToLower(strings.TrimSpace(l.Name)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return model.TaskList{}, fmt.Errorf("%w: %s", ErrListNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return model.TaskList{}, fmt.Errorf("%w: %s", ErrAmbiguousList, name)
	}
}

// viewList makes the named list, or the primary list when name is empty,
// the viewed list of sess.
func viewList(sess *session.Session, name string) (model.TaskList, error) {
	s := sess.State()

	var list model.TaskList
	if name == "" {
		l, ok := readmodel.PrimaryTaskList(s)
		if !ok {
			return model.TaskList{}, ErrNoPrimaryList
		}
		list = l
	} else {
		l, err := findList(s, name)
		if err != nil {
			return model.TaskList{}, err
		}
		list = l
	}

	sess.Selection.SelectTaskList(list.ID)
	return list, nil
}

// viewTasks returns the viewed list's tasks in display order: open tasks
// first, then completed ones. Task numbers index this slice.
func viewTasks(s readmodel.State) []model.Task {
	open := readmodel.IncompletedTasks(s)
	done := readmodel.CompletedTasks(s)
	tasks := make([]model.Task, 0, len(open)+len(done))
	tasks = append(tasks, open...)
	return append(tasks, done...)
}

// pickTasks returns the tasks at the given 1-based numbers.
func pickTasks(tasks []model.Task, refs []int) ([]model.Task, error) {
	picked := make([]model.Task, 0, len(refs))
	for _, ref := range refs {
		if ref > len(tasks) {
			return nil, userErrorf("task number out of range: %d", ref)
		}
		picked = append(picked, tasks[ref-1])
	}
	return picked, nil
}

// pickViewTasks views the named list and resolves refs against it.
func pickViewTasks(sess *session.Session, listName string, args []string) ([]model.Task, error) {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		return nil, err
	}
	if _, err := viewList(sess, listName); err != nil {
		return nil, err
	}
	return pickTasks(viewTasks(sess.State()), refs)
}

// pickTrashTasks resolves refs against the trash.
func pickTrashTasks(sess *session.Session, args []string) ([]model.Task, error) {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		return nil, err
	}
	return pickTasks(readmodel.TrashTasks(sess.State()), refs)
}

// selectTasks replaces the selection with tasks.
func selectTasks(sess *session.Session, tasks []model.Task) {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	sess.Selection.SelectAll(ids)
}

// fail prints err and returns the matching exit code.
func fail(errOut io.Writer, err error) int {
	var uerr *userError
	switch {
	case errors.As(err, &uerr),
		errors.Is(err, ErrTaskRefRequired),
		errors.Is(err, ErrListNotFound),
		errors.Is(err, ErrAmbiguousList),
		errors.Is(err, ErrNoPrimaryList),
		errors.Is(err, coordinator.ErrPrecondition):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

// done reports success.
func done(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
