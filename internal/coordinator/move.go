package coordinator

import (
	"context"

	"tasklane/internal/actionstate"
	"tasklane/internal/docstore"
	"tasklane/internal/model"
	"tasklane/internal/readmodel"
)

// MoveTaskInput moves one task to ListID.
type MoveTaskInput struct {
	TaskID string
	ListID string

	// FromTrash takes the task from the trash. No source list is
	// decremented.
	FromTrash bool
}

// MoveTask moves one task of the viewed list, or of the trash, to another
// list. The task must be present in the read model.
func (c *Coordinator) MoveTask(ctx context.Context, in MoveTaskInput) error {
	s := c.state()
	if err := checkMove(s, in.ListID, in.FromTrash); err != nil {
		return err
	}

	t, ok := readmodel.FindTask(s, in.TaskID, in.FromTrash)
	if !ok {
		return preconditionf("no task %s", in.TaskID)
	}

	m := moveMutation([]model.Task{t}, sourceList(s, in.FromTrash), in.ListID)
	return c.commit(ctx, actionstate.MoveTask, m)
}

// MoveSelectedTasksInput moves the selection to ListID.
type MoveSelectedTasksInput struct {
	ListID    string
	FromTrash bool
}

// MoveSelectedTasks moves every selected task of the viewed list, or of the
// trash, to another list. Selected ids that no longer resolve are skipped.
func (c *Coordinator) MoveSelectedTasks(ctx context.Context, in MoveSelectedTasksInput) error {
	s := c.state()
	if err := checkMove(s, in.ListID, in.FromTrash); err != nil {
		return err
	}

	tasks := readmodel.SelectedTasks(s, readmodel.SelectedTasksOptions{FromTrash: in.FromTrash})
	m := moveMutation(tasks, sourceList(s, in.FromTrash), in.ListID)
	return c.commit(ctx, actionstate.MoveSelectedTasks, m)
}

func checkMove(s readmodel.State, dest string, fromTrash bool) error {
	if dest == "" {
		return preconditionf("no destination task list")
	}
	if !fromTrash && s.Selection.ListID == "" {
		return preconditionf("cannot move tasks without a selected task list")
	}
	return nil
}

// sourceList is the list whose counters a move decrements, or "" for none.
func sourceList(s readmodel.State, fromTrash bool) string {
	if fromTrash {
		return ""
	}
	return s.Selection.ListID
}

// moveMutation reassigns tasks to dest and shifts their counts from source
// to dest, bucketed by each task's complete flag. Moving a task into the list
// it is already in folds to no counter change.
func moveMutation(tasks []model.Task, source, dest string) *Mutation {
	m := NewMutation()
	for _, t := range tasks {
		m.Set(docstore.TaskRef(t.ID), docstore.Fields{
			docstore.FieldListID:   dest,
			docstore.FieldArchived: false,
		})

		field := docstore.FieldNumberOfIncompleteTasks
		if t.Complete {
			field = docstore.FieldNumberOfCompleteTasks
		}
		m.Add(docstore.TaskListRef(dest), field, 1)
		if source != "" {
			m.Add(docstore.TaskListRef(source), field, -1)
		}
	}
	return m
}
