package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tasklane/internal/selection"
)

func TestToggle(t *testing.T) {
	s := selection.New()

	s.Toggle("a")
	s.Toggle("b")
	s.Toggle("a")

	snap := s.Snapshot()
	assert.False(t, snap.Selected("a"))
	assert.True(t, snap.Selected("b"))
	assert.Equal(t, []string{"b"}, snap.IDs())
}

func TestSelectAllDeselectAll_Idempotent(t *testing.T) {
	s := selection.New()

	s.SelectAll([]string{"c", "a", "b"})
	s.SelectAll([]string{"c", "a", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, s.Snapshot().IDs())

	s.DeselectAll()
	s.DeselectAll()
	assert.Equal(t, 0, s.Snapshot().Len())
}

func TestSelectDeselect_KeepOtherMembers(t *testing.T) {
	s := selection.New()
	s.Toggle("x")

	s.Select("a", "b", "a")
	assert.Equal(t, []string{"a", "b", "x"}, s.Snapshot().IDs())

	s.Deselect("a", "missing")
	assert.Equal(t, []string{"b", "x"}, s.Snapshot().IDs())
}

func TestSelectTaskList_ClearsSelectionAndEditing(t *testing.T) {
	s := selection.New()
	s.SelectTaskList("l1")
	s.SelectAll([]string{"a", "b"})
	s.SetEditingTask("a")

	s.SelectTaskList("l2")

	snap := s.Snapshot()
	assert.Equal(t, "l2", snap.ListID)
	assert.Equal(t, 0, snap.Len())
	assert.Empty(t, snap.EditingTaskID)
}

func TestEditingTask(t *testing.T) {
	s := selection.New()
	s.Toggle("a")

	s.SetEditingTask("b")
	assert.Equal(t, "b", s.Snapshot().EditingTaskID)
	assert.True(t, s.Snapshot().Selected("a"), "editing must not change selection")

	s.ToggleEditingTask("b")
	assert.Empty(t, s.Snapshot().EditingTaskID)

	s.ToggleEditingTask("c")
	assert.Equal(t, "c", s.Snapshot().EditingTaskID)

	s.StopEditingTask()
	assert.Empty(t, s.Snapshot().EditingTaskID)
}

func TestSetMultiselectOff_ClearsSelection(t *testing.T) {
	s := selection.New()
	s.SetMultiselect(true)
	s.Toggle("a")

	s.SetMultiselect(false)

	snap := s.Snapshot()
	assert.False(t, snap.Multiselect)
	assert.Equal(t, 0, snap.Len())
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := selection.New()
	s.Toggle("a")
	snap := s.Snapshot()

	s.Toggle("b")

	assert.False(t, snap.Selected("b"))
}
