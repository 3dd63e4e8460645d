// Package selection tracks which tasks are selected for a bulk operation,
// which single task is being edited, and which list is being viewed.
package selection

import (
	"sort"
	"sync"
)

// State is the client-local selection state. It is never persisted.
// The zero value is not usable; call New.
type State struct {
	mu          sync.RWMutex
	listID      string
	selected    map[string]struct{}
	editingID   string
	multiselect bool
}

// New returns an empty selection with no list viewed.
func New() *State {
	return &State{selected: make(map[string]struct{})}
}

// Toggle flips membership of taskID in the selection set.
func (s *State) Toggle(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selected[taskID]; ok {
		delete(s.selected, taskID)
		return
	}
	s.selected[taskID] = struct{}{}
}

// SelectAll replaces the selection set with taskIDs.
func (s *State) SelectAll(taskIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{}, len(taskIDs))
	for _, id := range taskIDs {
		s.selected[id] = struct{}{}
	}
}

// Select adds taskIDs to the selection set.
func (s *State) Select(taskIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range taskIDs {
		s.selected[id] = struct{}{}
	}
}

// Deselect removes taskIDs from the selection set.
func (s *State) Deselect(taskIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range taskIDs {
		delete(s.selected, id)
	}
}

// DeselectAll empties the selection set.
func (s *State) DeselectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{})
}

// SetEditingTask sets the single-task edit target. An empty ID clears it.
// Selection membership is not touched.
func (s *State) SetEditingTask(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = taskID
}

// StopEditingTask clears the edit target.
func (s *State) StopEditingTask() {
	s.SetEditingTask("")
}

// ToggleEditingTask targets taskID, or clears the target if taskID is
// already being edited.
func (s *State) ToggleEditingTask(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editingID == taskID {
		s.editingID = ""
		return
	}
	s.editingID = taskID
}

// SelectTaskList changes the viewed list. The selection set and edit target
// belong to the previous view and are discarded.
func (s *State) SelectTaskList(listID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listID = listID
	s.selected = make(map[string]struct{})
	s.editingID = ""
}

// SetMultiselect turns bulk selection mode on or off. Turning it off clears
// the selection set.
func (s *State) SetMultiselect(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.multiselect = on
	if !on {
		s.selected = make(map[string]struct{})
	}
}

// Snapshot returns an immutable copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make(map[string]struct{}, len(s.selected))
	for id := range s.selected {
		ids[id] = struct{}{}
	}
	return Snapshot{
		ListID:        s.listID,
		EditingTaskID: s.editingID,
		Multiselect:   s.multiselect,
		selected:      ids,
	}
}

// Snapshot is a point-in-time copy of State.
type Snapshot struct {
	ListID        string
	EditingTaskID string
	Multiselect   bool
	selected      map[string]struct{}
}

// Selected reports whether taskID is in the selection set.
func (s Snapshot) Selected(taskID string) bool {
	_, ok := s.selected[taskID]
	return ok
}

// Len returns the number of selected ids, including stale ones.
func (s Snapshot) Len() int { return len(s.selected) }

// IDs returns the selected ids in sorted order.
func (s Snapshot) IDs() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
