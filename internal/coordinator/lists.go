package coordinator

import (
	"context"
	"time"

	"tasklane/internal/actionstate"
	"tasklane/internal/docstore"
	"tasklane/internal/model"
	"tasklane/internal/readmodel"
)

// CreateTaskListInput describes a new task list.
type CreateTaskListInput struct {
	Name string

	// Primary makes the new list the user's primary list. Nil means true.
	Primary *bool
}

// CreateTaskList adds an empty list and returns its id. A primary list
// takes the flag from the user's current primary list in the same batch.
func (c *Coordinator) CreateTaskList(ctx context.Context, in CreateTaskListInput) (string, error) {
	if err := c.requireUser(); err != nil {
		return "", err
	}
	if in.Name == "" {
		return "", preconditionf("task list name is empty")
	}
	primary := in.Primary == nil || *in.Primary

	s := c.state()
	id := c.newID()
	m := NewMutation()
	m.Create(docstore.TaskListRef(id), docstore.Fields{
		docstore.FieldUserID:                  c.userID,
		docstore.FieldName:                    in.Name,
		docstore.FieldPrimary:                 primary,
		docstore.FieldNumberOfCompleteTasks:   0,
		docstore.FieldNumberOfIncompleteTasks: 0,
		docstore.FieldCreatedAt:               c.now(),
	})
	if primary {
		clearPrimary(m, s, id)
	}

	if err := c.commit(ctx, actionstate.CreateTaskList, m); err != nil {
		return "", err
	}
	return id, nil
}

// EditTaskListInput is a partial list edit.
type EditTaskListInput struct {
	ListID string
	Name   *string

	// Primary promotes the list. Lists are never demoted directly; another
	// list is promoted instead.
	Primary bool
}

// EditTaskList renames a list and optionally makes it primary.
func (c *Coordinator) EditTaskList(ctx context.Context, in EditTaskListInput) error {
	s := c.state()
	if _, ok := readmodel.TaskList(s, in.ListID); !ok {
		return preconditionf("no task list %s", in.ListID)
	}

	fields := docstore.Fields{}
	if in.Name != nil {
		if *in.Name == "" {
			return preconditionf("task list name is empty")
		}
		fields[docstore.FieldName] = *in.Name
	}
	if in.Primary {
		fields[docstore.FieldPrimary] = true
	}
	if len(fields) == 0 {
		return preconditionf("nothing to edit")
	}

	m := NewMutation()
	m.Set(docstore.TaskListRef(in.ListID), fields)
	if in.Primary {
		clearPrimary(m, s, in.ListID)
	}
	return c.commit(ctx, actionstate.EditTaskList, m)
}

// SetPrimaryTaskList makes listID the user's only primary list.
func (c *Coordinator) SetPrimaryTaskList(ctx context.Context, listID string) error {
	s := c.state()
	if _, ok := readmodel.TaskList(s, listID); !ok {
		return preconditionf("no task list %s", listID)
	}

	m := NewMutation()
	m.Set(docstore.TaskListRef(listID), docstore.Fields{docstore.FieldPrimary: true})
	clearPrimary(m, s, listID)
	return c.commit(ctx, actionstate.SetPrimaryTaskList, m)
}

// clearPrimary demotes every primary list other than keep.
func clearPrimary(m *Mutation, s readmodel.State, keep string) {
	for _, l := range readmodel.PrimaryTaskLists(s) {
		if l.ID == keep {
			continue
		}
		m.Set(docstore.TaskListRef(l.ID), docstore.Fields{docstore.FieldPrimary: false})
	}
}

// DeleteTaskList removes a list together with every task of it the read
// model knows about, including trashed ones.
func (c *Coordinator) DeleteTaskList(ctx context.Context, listID string) error {
	s := c.state()
	if _, ok := readmodel.TaskList(s, listID); !ok {
		return preconditionf("no task list %s", listID)
	}

	m := NewMutation()
	for _, t := range s.Tasks[listID] {
		m.Delete(docstore.TaskRef(t.ID))
	}
	for _, t := range readmodel.TrashTasks(s) {
		if t.ListID == listID {
			m.Delete(docstore.TaskRef(t.ID))
		}
	}
	m.Delete(docstore.TaskListRef(listID))
	return c.commit(ctx, actionstate.DeleteTaskList, m)
}

// ImportTaskLists writes lists read from an external source as new lists,
// with counters computed from their tasks, in one batch. An imported list is
// made primary only when the user has no primary list yet. It returns the
// ids of the created lists in input order.
func (c *Coordinator) ImportTaskLists(ctx context.Context, lists []model.ImportedList) ([]string, error) {
	if err := c.requireUser(); err != nil {
		return nil, err
	}

	s := c.state()
	_, hasPrimary := readmodel.PrimaryTaskList(s)
	primaryIdx := -1
	if !hasPrimary {
		primaryIdx = pickPrimary(lists)
	}

	now := c.now()
	seq := 0
	next := func() time.Time {
		seq++
		return now.Add(time.Duration(seq))
	}

	m := NewMutation()
	ids := make([]string, 0, len(lists))
	for i, in := range lists {
		listID := c.newID()
		ids = append(ids, listID)

		complete := 0
		for _, t := range in.Tasks {
			if t.Complete {
				complete++
			}
		}
		m.Create(docstore.TaskListRef(listID), docstore.Fields{
			docstore.FieldUserID:                  c.userID,
			docstore.FieldName:                    in.Name,
			docstore.FieldPrimary:                 i == primaryIdx,
			docstore.FieldNumberOfCompleteTasks:   complete,
			docstore.FieldNumberOfIncompleteTasks: len(in.Tasks) - complete,
			docstore.FieldCreatedAt:               next(),
		})

		for _, t := range in.Tasks {
			m.Create(docstore.TaskRef(c.newID()), docstore.Fields{
				docstore.FieldListID:    listID,
				docstore.FieldUserID:    c.userID,
				docstore.FieldTitle:     t.Title,
				docstore.FieldNotes:     t.Notes,
				docstore.FieldComplete:  t.Complete,
				docstore.FieldArchived:  false,
				docstore.FieldCreatedAt: next(),
			})
		}
	}

	if err := c.commit(ctx, actionstate.ImportTaskLists, m); err != nil {
		return nil, err
	}
	return ids, nil
}

// pickPrimary returns the first list flagged primary, else the first list,
// else -1.
func pickPrimary(lists []model.ImportedList) int {
	for i, l := range lists {
		if l.Primary {
			return i
		}
	}
	if len(lists) > 0 {
		return 0
	}
	return -1
}
