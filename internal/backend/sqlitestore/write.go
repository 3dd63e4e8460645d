package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tasklane/internal/docstore"
	"tasklane/internal/model"
)

// Update implements docstore.Store as a single-write batch.
func (s *Store) Update(ctx context.Context, ref docstore.Ref, fields docstore.Fields) error {
	b := s.Batch()
	b.Update(ref, fields)
	return b.Commit(ctx)
}

// Batch implements docstore.Store.
func (s *Store) Batch() docstore.Batch {
	return &batch{store: s}
}

type batch struct {
	docstore.Ops
	store *Store
}

// Commit applies the recorded writes in one transaction.
func (b *batch) Commit(ctx context.Context) error {
	ops := b.List()
	if len(ops) == 0 {
		return nil
	}

	tx, err := b.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("commit: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := docstore.Apply(&sqlTx{ctx: ctx, tx: tx}, ops); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// sqlTx adapts a *sql.Tx to docstore.Tx.
type sqlTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *sqlTx) Task(id string) (model.Task, bool, error) {
	task, err := getTask(t.ctx, t.tx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return model.Task{}, false, nil
	}
	if err != nil {
		return model.Task{}, false, err
	}
	return task, true, nil
}

func (t *sqlTx) TaskList(id string) (model.TaskList, bool, error) {
	l, err := getTaskList(t.ctx, t.tx, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return model.TaskList{}, false, nil
	}
	if err != nil {
		return model.TaskList{}, false, err
	}
	return l, true, nil
}

func (t *sqlTx) PutTask(task model.Task) error {
	_, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			list_id = excluded.list_id,
			user_id = excluded.user_id,
			title = excluded.title,
			notes = excluded.notes,
			complete = excluded.complete,
			archived = excluded.archived,
			created_at = excluded.created_at
	`,
		task.ID,
		task.ListID,
		task.UserID,
		task.Title,
		task.Notes,
		task.Complete,
		task.Archived,
		toUnix(task.CreatedAt),
	)
	return err
}

func (t *sqlTx) PutTaskList(l model.TaskList) error {
	_, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO task_lists (`+taskListColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			name = excluded.name,
			is_primary = excluded.is_primary,
			number_of_complete_tasks = excluded.number_of_complete_tasks,
			number_of_incomplete_tasks = excluded.number_of_incomplete_tasks,
			created_at = excluded.created_at
	`,
		l.ID,
		l.UserID,
		l.Name,
		l.Primary,
		l.NumberOfCompleteTasks,
		l.NumberOfIncompleteTasks,
		toUnix(l.CreatedAt),
	)
	return err
}

func (t *sqlTx) DeleteTask(id string) error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return err
}

func (t *sqlTx) DeleteTaskList(id string) error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM task_lists WHERE id = ?`, id)
	return err
}
