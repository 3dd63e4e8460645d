// Package readmodel is the in-memory projection of a user's task lists and
// tasks. Snapshots are loaded from the store and replaced wholesale; the
// coordinator only ever reads them.
package readmodel

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"tasklane/internal/docstore"
	"tasklane/internal/model"
	"tasklane/internal/selection"
)

// Snapshot is one consistent view of the store for a user.
// Treat every slice as read-only.
type Snapshot struct {
	UserID    string
	TaskLists []model.TaskList

	// Tasks holds the non-archived tasks of each list, keyed by list ID.
	Tasks map[string][]model.Task

	// TrashTasks holds the user's archived tasks across all lists.
	TrashTasks []model.Task
}

// State is a snapshot paired with the selection it is viewed through.
// Selectors take a State.
type State struct {
	Snapshot
	Selection selection.Snapshot
}

// Compose pairs a snapshot with a selection.
func Compose(snap Snapshot, sel selection.Snapshot) State {
	return State{Snapshot: snap, Selection: sel}
}

// Source is the read half of docstore.Store.
type Source interface {
	ListTaskLists(ctx context.Context, userID string) ([]model.TaskList, error)
	ListTasks(ctx context.Context, q docstore.TaskQuery) ([]model.Task, error)
}

// Load reads a fresh snapshot for userID.
func Load(ctx context.Context, src Source, userID string) (Snapshot, error) {
	lists, err := src.ListTaskLists(ctx, userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load task lists: %w", err)
	}

	active, err := src.ListTasks(ctx, docstore.TaskQuery{UserID: userID})
	if err != nil {
		return Snapshot{}, fmt.Errorf("load tasks: %w", err)
	}

	trash, err := src.ListTasks(ctx, docstore.TaskQuery{UserID: userID, Archived: true})
	if err != nil {
		return Snapshot{}, fmt.Errorf("load trash: %w", err)
	}

	snap := Snapshot{
		UserID:     userID,
		TaskLists:  lists,
		Tasks:      make(map[string][]model.Task),
		TrashTasks: trash,
	}
	for _, t := range active {
		snap.Tasks[t.ListID] = append(snap.Tasks[t.ListID], t)
	}
	snap.sort()
	return snap, nil
}

// sort orders lists and tasks by creation time, then ID.
func (s *Snapshot) sort() {
	sort.SliceStable(s.TaskLists, func(i, j int) bool {
		a, b := s.TaskLists[i], s.TaskLists[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	for _, tasks := range s.Tasks {
		sortTasks(tasks)
	}
	sortTasks(s.TrashTasks)
}

func sortTasks(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// Model holds the latest snapshot. Safe for concurrent use.
type Model struct {
	mu   sync.RWMutex
	snap Snapshot
}

// New returns a model with an empty snapshot.
func New() *Model {
	return &Model{snap: Snapshot{Tasks: map[string][]model.Task{}}}
}

// Snapshot returns the current snapshot.
func (m *Model) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// Apply replaces the current snapshot, as a subscription push would.
func (m *Model) Apply(snap Snapshot) {
	if snap.Tasks == nil {
		snap.Tasks = map[string][]model.Task{}
	}
	snap.sort()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
}

// Refresh loads a snapshot from src and applies it. On error the previous
// snapshot is kept.
func (m *Model) Refresh(ctx context.Context, src Source, userID string) error {
	snap, err := Load(ctx, src, userID)
	if err != nil {
		return err
	}
	m.Apply(snap)
	return nil
}
