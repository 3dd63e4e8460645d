// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"tasklane/internal/docstore"
	"tasklane/internal/model"
)

// DefaultUserID is the user every seeded document belongs to unless set.
const DefaultUserID = "user-1"

// FakeStore is an in-memory implementation of docstore.Store for testing.
// Commits are atomic: writes are applied to a copy that replaces the live
// documents only when every write succeeded.
type FakeStore struct {
	mu    sync.RWMutex
	tasks map[string]model.Task
	lists map[string]model.TaskList

	commits int
	batches [][]docstore.Op

	// Error injection for testing
	CommitErr error // returned by every Batch.Commit and Update
	ListErr   error // returned by ListTaskLists and ListTasks
	GetErr    error
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		tasks: make(map[string]model.Task),
		lists: make(map[string]model.TaskList),
	}
}

// seedEpoch orders seeded documents by insertion.
var seedEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// AddTaskList seeds a list. Empty UserID and CreatedAt are filled in.
func (f *FakeStore) AddTaskList(l model.TaskList) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l.UserID == "" {
		l.UserID = DefaultUserID
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = seedEpoch.Add(time.Duration(len(f.lists)) * time.Minute)
	}
	f.lists[l.ID] = l
}

// AddTask seeds a task. Empty UserID and CreatedAt are filled in.
func (f *FakeStore) AddTask(t model.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.UserID == "" {
		t.UserID = DefaultUserID
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = seedEpoch.Add(time.Duration(len(f.tasks)) * time.Minute)
	}
	f.tasks[t.ID] = t
}

// TaskList returns a list as currently stored.
func (f *FakeStore) TaskList(id string) (model.TaskList, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	l, ok := f.lists[id]
	return l, ok
}

// Task returns a task as currently stored.
func (f *FakeStore) Task(id string) (model.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	t, ok := f.tasks[id]
	return t, ok
}

// Commits returns the number of commit attempts, including failed ones.
func (f *FakeStore) Commits() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.commits
}

// Batches returns the writes of every commit attempt in order.
func (f *FakeStore) Batches() [][]docstore.Op {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([][]docstore.Op, len(f.batches))
	copy(out, f.batches)
	return out
}

// LastBatch returns the writes of the latest commit attempt.
func (f *FakeStore) LastBatch() []docstore.Op {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.batches) == 0 {
		return nil
	}
	return f.batches[len(f.batches)-1]
}

// GetTask implements docstore.Store.
func (f *FakeStore) GetTask(ctx context.Context, id string) (model.Task, error) {
	if f.GetErr != nil {
		return model.Task{}, f.GetErr
	}
	t, ok := f.Task(id)
	if !ok {
		return model.Task{}, docstore.ErrNotFound
	}
	return t, nil
}

// GetTaskList implements docstore.Store.
func (f *FakeStore) GetTaskList(ctx context.Context, id string) (model.TaskList, error) {
	if f.GetErr != nil {
		return model.TaskList{}, f.GetErr
	}
	l, ok := f.TaskList(id)
	if !ok {
		return model.TaskList{}, docstore.ErrNotFound
	}
	return l, nil
}

// ListTaskLists implements docstore.Store.
func (f *FakeStore) ListTaskLists(ctx context.Context, userID string) ([]model.TaskList, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	var result []model.TaskList
	for _, l := range f.lists {
		if l.UserID == userID {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// ListTasks implements docstore.Store.
func (f *FakeStore) ListTasks(ctx context.Context, q docstore.TaskQuery) ([]model.Task, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	var result []model.Task
	for _, t := range f.tasks {
		if t.UserID != q.UserID || t.Archived != q.Archived {
			continue
		}
		if q.ListID != "" && t.ListID != q.ListID {
			continue
		}
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Update implements docstore.Store.
func (f *FakeStore) Update(ctx context.Context, ref docstore.Ref, fields docstore.Fields) error {
	b := f.Batch()
	b.Update(ref, fields)
	return b.Commit(ctx)
}

// Batch implements docstore.Store.
func (f *FakeStore) Batch() docstore.Batch {
	return &fakeBatch{store: f}
}

// Close implements docstore.Store.
func (f *FakeStore) Close() error { return nil }

type fakeBatch struct {
	docstore.Ops
	store *FakeStore
}

func (b *fakeBatch) Commit(ctx context.Context) error {
	f := b.store
	ops := b.List()

	f.mu.Lock()
	defer f.mu.Unlock()

	f.commits++
	f.batches = append(f.batches, ops)
	if f.CommitErr != nil {
		return f.CommitErr
	}

	tx := &memTx{
		tasks: make(map[string]model.Task, len(f.tasks)),
		lists: make(map[string]model.TaskList, len(f.lists)),
	}
	for id, t := range f.tasks {
		tx.tasks[id] = t
	}
	for id, l := range f.lists {
		tx.lists[id] = l
	}

	if err := docstore.Apply(tx, ops); err != nil {
		return err
	}

	f.tasks = tx.tasks
	f.lists = tx.lists
	return nil
}

// memTx is a copy of the documents a commit writes into.
type memTx struct {
	tasks map[string]model.Task
	lists map[string]model.TaskList
}

func (m *memTx) Task(id string) (model.Task, bool, error) {
	t, ok := m.tasks[id]
	return t, ok, nil
}

func (m *memTx) TaskList(id string) (model.TaskList, bool, error) {
	l, ok := m.lists[id]
	return l, ok, nil
}

func (m *memTx) PutTask(t model.Task) error {
	m.tasks[t.ID] = t
	return nil
}

func (m *memTx) PutTaskList(l model.TaskList) error {
	m.lists[l.ID] = l
	return nil
}

func (m *memTx) DeleteTask(id string) error {
	delete(m.tasks, id)
	return nil
}

func (m *memTx) DeleteTaskList(id string) error {
	delete(m.lists, id)
	return nil
}

// ErrCommitRejected is a ready-made commit failure for tests.
var ErrCommitRejected = errors.New("permission denied")
