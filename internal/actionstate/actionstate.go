// Package actionstate tracks the lifecycle of each user-initiated operation.
//
// Every operation name has its own state machine:
//
//	idle ──Begin──▶ pending ──Succeed──▶ success
//	                   │
//	                   └────Fail───────▶ failure(err)
//
// success and failure may Begin again.
package actionstate

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Op names an operation.
type Op string

// Operations driven by the coordinator.
const (
	CreateTask               Op = "create_task"
	EditTask                 Op = "edit_task"
	DeleteTask               Op = "delete_task"
	ArchiveTask              Op = "archive_task"
	UnarchiveTask            Op = "unarchive_task"
	CompleteTask             Op = "complete_task"
	DecompleteTask           Op = "decomplete_task"
	MoveTask                 Op = "move_task"
	ArchiveSelectedTasks     Op = "archive_selected_tasks"
	MoveSelectedTasks        Op = "move_selected_tasks"
	DeleteSelectedTasks      Op = "delete_selected_tasks"
	CompleteSelectedTasks    Op = "complete_selected_tasks"
	DecompleteSelectedTasks  Op = "decomplete_selected_tasks"
	DecompleteCompletedTasks Op = "decomplete_completed_tasks"
	DeleteCompletedTasks     Op = "delete_completed_tasks"
	ArchiveCompletedTasks    Op = "archive_completed_tasks"
	EmptyTrash               Op = "empty_trash"
	CreateTaskList           Op = "create_task_list"
	EditTaskList             Op = "edit_task_list"
	DeleteTaskList           Op = "delete_task_list"
	SetPrimaryTaskList       Op = "set_primary_task_list"
	ImportTaskLists          Op = "import_task_lists"
)

// Status is the phase of one operation.
type Status int

const (
	Idle Status = iota
	Pending
	Success
	Failure
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is the current status of an operation. Err is set only on Failure.
type State struct {
	Status Status
	Err    error
}

// ErrInvalidTransition is returned when Succeed or Fail is called on an
// operation that is not pending.
var ErrInvalidTransition = errors.New("invalid action state transition")

// Listener is notified after every transition.
type Listener func(op Op, st State)

// Tracker holds the state of every operation. Safe for concurrent use.
type Tracker struct {
	mu        sync.RWMutex
	states    map[Op]State
	listeners []Listener
}

// NewTracker creates a tracker with every operation idle.
func NewTracker() *Tracker {
	return &Tracker{states: make(map[Op]State)}
}

// Subscribe registers fn to be called after each transition.
func (t *Tracker) Subscribe(fn Listener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// State returns the state of op. Unknown operations are idle.
func (t *Tracker) State(op Op) State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.states[op]
}

// Begin moves op to pending.
func (t *Tracker) Begin(op Op) {
	t.set(op, State{Status: Pending})
}

// Succeed moves a pending op to success.
func (t *Tracker) Succeed(op Op) error {
	return t.finish(op, State{Status: Success})
}

// Fail moves a pending op to failure with err attached.
func (t *Tracker) Fail(op Op, err error) error {
	return t.finish(op, State{Status: Failure, Err: err})
}

// Snapshot returns every operation that has left idle, sorted by name.
func (t *Tracker) Snapshot() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entries := make([]Entry, 0, len(t.states))
	for op, st := range t.states {
		entries = append(entries, Entry{Op: op, State: st})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Op < entries[j].Op })
	return entries
}

// Entry pairs an operation with its state.
type Entry struct {
	Op    Op
	State State
}

func (t *Tracker) finish(op Op, st State) error {
	t.mu.Lock()
	cur := t.states[op]
	if cur.Status != Pending {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s is %s, want %s", ErrInvalidTransition, op, cur.Status, Pending)
	}
	t.states[op] = st
	listeners := t.listeners
	t.mu.Unlock()

	notify(listeners, op, st)
	return nil
}

func (t *Tracker) set(op Op, st State) {
	t.mu.Lock()
	t.states[op] = st
	listeners := t.listeners
	t.mu.Unlock()

	notify(listeners, op, st)
}

func notify(listeners []Listener, op Op, st State) {
	for _, fn := range listeners {
		fn(op, st)
	}
}
