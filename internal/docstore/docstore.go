// Package docstore defines the document store contract used by the coordinator.
//
// A store holds two collections, task and taskList, addressed by Ref. Writes
// are expressed as partial Fields. A Batch groups writes to several documents
// and applies all of them or none of them on Commit.
package docstore

import (
	"context"
	"errors"

	"tasklane/internal/model"
)

// Collection names a document collection.
type Collection string

const (
	// TaskCollection holds task documents.
	TaskCollection Collection = "task"

	// TaskListCollection holds task list documents.
	TaskListCollection Collection = "taskList"
)

// Ref addresses one document.
type Ref struct {
	Collection Collection
	ID         string
}

// TaskRef returns the ref of a task document.
func TaskRef(id string) Ref { return Ref{Collection: TaskCollection, ID: id} }

// TaskListRef returns the ref of a task list document.
func TaskListRef(id string) Ref { return Ref{Collection: TaskListCollection, ID: id} }

func (r Ref) String() string { return string(r.Collection) + "/" + r.ID }

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNegativeCounter is returned when a commit writes a negative list counter.
	ErrNegativeCounter = errors.New("counter would go negative")

	// ErrInvalidField is returned for unknown fields or values of the wrong type.
	ErrInvalidField = errors.New("invalid field")
)

// TaskQuery selects tasks of one user.
// An empty ListID matches every list.
type TaskQuery struct {
	UserID   string
	ListID   string
	Archived bool
}

// Store is the document store client.
type Store interface {
	// GetTask returns a task by ID or ErrNotFound.
	GetTask(ctx context.Context, id string) (model.Task, error)

	// GetTaskList returns a task list by ID or ErrNotFound.
	GetTaskList(ctx context.Context, id string) (model.TaskList, error)

	// ListTaskLists returns the user's task lists ordered by creation time.
	ListTaskLists(ctx context.Context, userID string) ([]model.TaskList, error)

	// ListTasks returns tasks matching q ordered by creation time.
	ListTasks(ctx context.Context, q TaskQuery) ([]model.Task, error)

	// Update writes fields to a single existing document.
	Update(ctx context.Context, ref Ref, fields Fields) error

	// Batch starts an atomic multi-document write.
	Batch() Batch

	// Close releases the store.
	Close() error
}

// Batch is an atomic multi-document write. Writes are applied in the order
// they were added. Nothing is visible until Commit succeeds.
type Batch interface {
	Create(ref Ref, fields Fields)
	Update(ref Ref, fields Fields)
	Delete(ref Ref)

	// Commit applies every write or none. It is the only call that can fail.
	Commit(ctx context.Context) error
}
