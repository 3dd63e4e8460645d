package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tasklane/internal/docstore"
	"tasklane/internal/model"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

const taskColumns = `id, list_id, user_id, title, notes, complete, archived, created_at`

const taskListColumns = `id, user_id, name, is_primary, number_of_complete_tasks, number_of_incomplete_tasks, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var t model.Task
	var createdAt int64
	if err := row.Scan(&t.ID, &t.ListID, &t.UserID, &t.Title, &t.Notes, &t.Complete, &t.Archived, &createdAt); err != nil {
		return model.Task{}, err
	}
	t.CreatedAt = fromUnix(createdAt)
	return t, nil
}

func scanTaskList(row rowScanner) (model.TaskList, error) {
	var l model.TaskList
	var createdAt int64
	if err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.Primary, &l.NumberOfCompleteTasks, &l.NumberOfIncompleteTasks, &createdAt); err != nil {
		return model.TaskList{}, err
	}
	l.CreatedAt = fromUnix(createdAt)
	return l, nil
}

func getTask(ctx context.Context, q queryer, id string) (model.Task, error) {
	t, err := scanTask(q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, docstore.ErrNotFound
	}
	return t, err
}

func getTaskList(ctx context.Context, q queryer, id string) (model.TaskList, error) {
	l, err := scanTaskList(q.QueryRowContext(ctx, `SELECT `+taskListColumns+` FROM task_lists WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.TaskList{}, docstore.ErrNotFound
	}
	return l, err
}

// GetTask implements docstore.Store.
func (s *Store) GetTask(ctx context.Context, id string) (model.Task, error) {
	t, err := getTask(ctx, s.db, id)
	if err != nil {
		return model.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return t, nil
}

// GetTaskList implements docstore.Store.
func (s *Store) GetTaskList(ctx context.Context, id string) (model.TaskList, error) {
	l, err := getTaskList(ctx, s.db, id)
	if err != nil {
		return model.TaskList{}, fmt.Errorf("get task list %s: %w", id, err)
	}
	return l, nil
}

// ListTaskLists implements docstore.Store.
func (s *Store) ListTaskLists(ctx context.Context, userID string) ([]model.TaskList, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskListColumns+`
		FROM task_lists
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list task lists: %w", err)
	}
	defer rows.Close()

	var lists []model.TaskList
	for rows.Next() {
		l, err := scanTaskList(rows)
		if err != nil {
			return nil, fmt.Errorf("list task lists: scan: %w", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list task lists: %w", err)
	}
	return lists, nil
}

// ListTasks implements docstore.Store.
func (s *Store) ListTasks(ctx context.Context, q docstore.TaskQuery) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ? AND archived = ?`
	args := []any{q.UserID, q.Archived}
	if q.ListID != "" {
		query += ` AND list_id = ?`
		args = append(args, q.ListID)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("list tasks: scan: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}
