package readmodel

import (
	"tasklane/internal/model"
)

// SelectedTasksOptions controls where SelectedTasks looks.
type SelectedTasksOptions struct {
	// FromTrash resolves the selection against the trash instead of the
	// viewed list.
	FromTrash bool
}

// Tasks returns the non-archived tasks of the viewed list.
func Tasks(s State) []model.Task {
	if s.Selection.ListID == "" {
		return nil
	}
	return s.Snapshot.Tasks[s.Selection.ListID]
}

// TrashTasks returns the archived tasks.
func TrashTasks(s State) []model.Task {
	return s.TrashTasks
}

// SelectedTasks returns the selected tasks of the viewed list (or the trash),
// in display order. Selected IDs that no longer resolve are skipped.
func SelectedTasks(s State, opts SelectedTasksOptions) []model.Task {
	source := Tasks(s)
	if opts.FromTrash {
		source = TrashTasks(s)
	}
	return filterTasks(source, func(t model.Task) bool {
		return s.Selection.Selected(t.ID)
	})
}

// SelectedTaskIDs returns the raw selection, including IDs that may be stale.
func SelectedTaskIDs(s State) []string {
	return s.Selection.IDs()
}

// CompletedTasks returns the complete tasks of the viewed list.
func CompletedTasks(s State) []model.Task {
	return filterTasks(Tasks(s), func(t model.Task) bool { return t.Complete })
}

// IncompletedTasks returns the incomplete tasks of the viewed list.
func IncompletedTasks(s State) []model.Task {
	return filterTasks(Tasks(s), func(t model.Task) bool { return !t.Complete })
}

// FindTask looks a task up in the viewed list, or in the trash when fromTrash
// is set.
func FindTask(s State, taskID string, fromTrash bool) (model.Task, bool) {
	source := Tasks(s)
	if fromTrash {
		source = TrashTasks(s)
	}
	for _, t := range source {
		if t.ID == taskID {
			return t, true
		}
	}
	return model.Task{}, false
}

// TaskLists returns every list of the user.
func TaskLists(s State) []model.TaskList {
	return s.Snapshot.TaskLists
}

// TaskList looks a list up by ID.
func TaskList(s State, listID string) (model.TaskList, bool) {
	for _, l := range s.Snapshot.TaskLists {
		if l.ID == listID {
			return l, true
		}
	}
	return model.TaskList{}, false
}

// SelectedTaskList returns the viewed list.
func SelectedTaskList(s State) (model.TaskList, bool) {
	if s.Selection.ListID == "" {
		return model.TaskList{}, false
	}
	return TaskList(s, s.Selection.ListID)
}

// PrimaryTaskList returns the user's primary list.
func PrimaryTaskList(s State) (model.TaskList, bool) {
	for _, l := range s.Snapshot.TaskLists {
		if l.Primary {
			return l, true
		}
	}
	return model.TaskList{}, false
}

// PrimaryTaskLists returns every list flagged primary. More than one means
// the at-most-one invariant was broken by a concurrent writer.
func PrimaryTaskLists(s State) []model.TaskList {
	var out []model.TaskList
	for _, l := range s.Snapshot.TaskLists {
		if l.Primary {
			out = append(out, l)
		}
	}
	return out
}

func filterTasks(tasks []model.Task, keep func(model.Task) bool) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
