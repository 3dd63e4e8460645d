package coordinator

import (
	"context"

	"tasklane/internal/actionstate"
	"tasklane/internal/docstore"
	"tasklane/internal/model"
	"tasklane/internal/readmodel"
)

// CreateTaskInput describes a new task in the viewed list.
type CreateTaskInput struct {
	Title string
	Notes string
}

// CreateTask adds an incomplete task to the viewed list and counts it in
// the list's incomplete counter. It returns the new task id.
func (c *Coordinator) CreateTask(ctx context.Context, in CreateTaskInput) (string, error) {
	s := c.state()
	listID := s.Selection.ListID
	if listID == "" {
		return "", preconditionf("cannot create a task without a selected task list")
	}
	if err := c.requireUser(); err != nil {
		return "", err
	}

	id := c.newID()
	m := NewMutation()
	m.Create(docstore.TaskRef(id), docstore.Fields{
		docstore.FieldListID:    listID,
		docstore.FieldUserID:    c.userID,
		docstore.FieldTitle:     in.Title,
		docstore.FieldNotes:     in.Notes,
		docstore.FieldComplete:  false,
		docstore.FieldArchived:  false,
		docstore.FieldCreatedAt: c.now(),
	})
	m.Add(docstore.TaskListRef(listID), docstore.FieldNumberOfIncompleteTasks, 1)

	if err := c.commit(ctx, actionstate.CreateTask, m); err != nil {
		return "", err
	}
	return id, nil
}

// EditTaskInput is a partial task edit. Nil fields are left unchanged.
type EditTaskInput struct {
	TaskID   string
	Title    *string
	Notes    *string
	Complete *bool
}

// EditTask writes the set fields of in to the task.
func (c *Coordinator) EditTask(ctx context.Context, in EditTaskInput) error {
	fields := docstore.Fields{}
	if in.Title != nil {
		fields[docstore.FieldTitle] = *in.Title
	}
	if in.Notes != nil {
		fields[docstore.FieldNotes] = *in.Notes
	}
	if in.Complete != nil {
		fields[docstore.FieldComplete] = *in.Complete
	}
	if len(fields) == 0 {
		return preconditionf("nothing to edit")
	}
	return c.update(ctx, actionstate.EditTask, docstore.TaskRef(in.TaskID), fields)
}

// CompleteTask marks one task complete.
func (c *Coordinator) CompleteTask(ctx context.Context, taskID string) error {
	return c.update(ctx, actionstate.CompleteTask, docstore.TaskRef(taskID), docstore.Fields{docstore.FieldComplete: true})
}

// DecompleteTask marks one task incomplete.
func (c *Coordinator) DecompleteTask(ctx context.Context, taskID string) error {
	return c.update(ctx, actionstate.DecompleteTask, docstore.TaskRef(taskID), docstore.Fields{docstore.FieldComplete: false})
}

// CompleteSelectedTasks marks every selected task of the viewed list complete.
func (c *Coordinator) CompleteSelectedTasks(ctx context.Context) error {
	tasks := readmodel.SelectedTasks(c.state(), readmodel.SelectedTasksOptions{})
	return c.commit(ctx, actionstate.CompleteSelectedTasks, setEach(tasks, docstore.FieldComplete, true))
}

// DecompleteSelectedTasks marks every selected task of the viewed list incomplete.
func (c *Coordinator) DecompleteSelectedTasks(ctx context.Context) error {
	tasks := readmodel.SelectedTasks(c.state(), readmodel.SelectedTasksOptions{})
	return c.commit(ctx, actionstate.DecompleteSelectedTasks, setEach(tasks, docstore.FieldComplete, false))
}

// DecompleteCompletedTasks reopens every complete task of the viewed list.
func (c *Coordinator) DecompleteCompletedTasks(ctx context.Context) error {
	tasks := readmodel.CompletedTasks(c.state())
	return c.commit(ctx, actionstate.DecompleteCompletedTasks, setEach(tasks, docstore.FieldComplete, false))
}

// Archiving moves tasks to the trash. List counters are not adjusted.

// ArchiveTask moves one task to the trash.
func (c *Coordinator) ArchiveTask(ctx context.Context, taskID string) error {
	return c.update(ctx, actionstate.ArchiveTask, docstore.TaskRef(taskID), docstore.Fields{docstore.FieldArchived: true})
}

// UnarchiveTask takes one task out of the trash, back into the list it was
// archived from.
func (c *Coordinator) UnarchiveTask(ctx context.Context, taskID string) error {
	return c.update(ctx, actionstate.UnarchiveTask, docstore.TaskRef(taskID), docstore.Fields{docstore.FieldArchived: false})
}

// ArchiveSelectedTasks moves every selected task of the viewed list to the trash.
func (c *Coordinator) ArchiveSelectedTasks(ctx context.Context) error {
	tasks := readmodel.SelectedTasks(c.state(), readmodel.SelectedTasksOptions{})
	return c.commit(ctx, actionstate.ArchiveSelectedTasks, setEach(tasks, docstore.FieldArchived, true))
}

// ArchiveCompletedTasks moves every complete task of the viewed list to the trash.
func (c *Coordinator) ArchiveCompletedTasks(ctx context.Context) error {
	tasks := readmodel.CompletedTasks(c.state())
	return c.commit(ctx, actionstate.ArchiveCompletedTasks, setEach(tasks, docstore.FieldArchived, true))
}

// DeleteTask removes one task.
func (c *Coordinator) DeleteTask(ctx context.Context, taskID string) error {
	m := NewMutation()
	m.Delete(docstore.TaskRef(taskID))
	return c.commit(ctx, actionstate.DeleteTask, m)
}

// DeleteSelectedTasksOptions controls where DeleteSelectedTasks looks.
type DeleteSelectedTasksOptions struct {
	FromTrash bool
}

// DeleteSelectedTasks removes every selected task of the viewed list, or of
// the trash.
func (c *Coordinator) DeleteSelectedTasks(ctx context.Context, opts DeleteSelectedTasksOptions) error {
	tasks := readmodel.SelectedTasks(c.state(), readmodel.SelectedTasksOptions{FromTrash: opts.FromTrash})
	return c.commit(ctx, actionstate.DeleteSelectedTasks, deleteEach(tasks))
}

// DeleteCompletedTasks removes every complete task of the viewed list.
func (c *Coordinator) DeleteCompletedTasks(ctx context.Context) error {
	tasks := readmodel.CompletedTasks(c.state())
	return c.commit(ctx, actionstate.DeleteCompletedTasks, deleteEach(tasks))
}

// EmptyTrash removes every archived task.
func (c *Coordinator) EmptyTrash(ctx context.Context) error {
	tasks := readmodel.TrashTasks(c.state())
	return c.commit(ctx, actionstate.EmptyTrash, deleteEach(tasks))
}

func setEach(tasks []model.Task, field string, value any) *Mutation {
	m := NewMutation()
	for _, t := range tasks {
		m.Set(docstore.TaskRef(t.ID), docstore.Fields{field: value})
	}
	return m
}

func deleteEach(tasks []model.Task) *Mutation {
	m := NewMutation()
	for _, t := range tasks {
		m.Delete(docstore.TaskRef(t.ID))
	}
	return m
}
