package readmodel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklane/internal/model"
	"tasklane/internal/readmodel"
	"tasklane/internal/selection"
	"tasklane/internal/testutil"
)

func seededStore() *testutil.FakeStore {
	store := testutil.NewFakeStore()
	store.AddTaskList(model.TaskList{ID: "l1", Name: "Home", Primary: true, NumberOfCompleteTasks: 1, NumberOfIncompleteTasks: 2})
	store.AddTaskList(model.TaskList{ID: "l2", Name: "Work"})
	store.AddTask(model.Task{ID: "t1", ListID: "l1", Title: "Dishes"})
	store.AddTask(model.Task{ID: "t2", ListID: "l1", Title: "Laundry", Complete: true})
	store.AddTask(model.Task{ID: "t3", ListID: "l1", Title: "Vacuum"})
	store.AddTask(model.Task{ID: "t4", ListID: "l2", Title: "Old", Archived: true})
	store.AddTask(model.Task{ID: "other", ListID: "x", UserID: "someone-else"})
	return store
}

func loadState(t *testing.T, sel *selection.State) readmodel.State {
	t.Helper()
	m := readmodel.New()
	require.NoError(t, m.Refresh(context.Background(), seededStore(), testutil.DefaultUserID))
	return readmodel.Compose(m.Snapshot(), sel.Snapshot())
}

func ids(tasks []model.Task) []string {
	var out []string
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestLoad_GroupsTasksByList(t *testing.T) {
	snap, err := readmodel.Load(context.Background(), seededStore(), testutil.DefaultUserID)
	require.NoError(t, err)

	require.Len(t, snap.TaskLists, 2)
	assert.Equal(t, "l1", snap.TaskLists[0].ID)
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids(snap.Tasks["l1"]))
	assert.Empty(t, snap.Tasks["l2"])
	assert.Equal(t, []string{"t4"}, ids(snap.TrashTasks))
}

func TestRefresh_KeepsSnapshotOnError(t *testing.T) {
	store := seededStore()
	m := readmodel.New()
	require.NoError(t, m.Refresh(context.Background(), store, testutil.DefaultUserID))

	store.ListErr = errors.New("offline")
	err := m.Refresh(context.Background(), store, testutil.DefaultUserID)
	require.Error(t, err)
	assert.Len(t, m.Snapshot().TaskLists, 2)
}

func TestSelectors_ViewedList(t *testing.T) {
	sel := selection.New()
	sel.SelectTaskList("l1")
	s := loadState(t, sel)

	assert.Equal(t, []string{"t1", "t2", "t3"}, ids(readmodel.Tasks(s)))
	assert.Equal(t, []string{"t2"}, ids(readmodel.CompletedTasks(s)))
	assert.Equal(t, []string{"t1", "t3"}, ids(readmodel.IncompletedTasks(s)))
	assert.Equal(t, []string{"t4"}, ids(readmodel.TrashTasks(s)))

	l, ok := readmodel.SelectedTaskList(s)
	require.True(t, ok)
	assert.Equal(t, "Home", l.Name)

	p, ok := readmodel.PrimaryTaskList(s)
	require.True(t, ok)
	assert.Equal(t, "l1", p.ID)
}

func TestSelectors_NoViewedList(t *testing.T) {
	s := loadState(t, selection.New())

	assert.Empty(t, readmodel.Tasks(s))
	assert.Empty(t, readmodel.CompletedTasks(s))
	_, ok := readmodel.SelectedTaskList(s)
	assert.False(t, ok)
}

func TestSelectedTasks_SkipsStaleIDs(t *testing.T) {
	sel := selection.New()
	sel.SelectTaskList("l1")
	sel.SelectAll([]string{"t3", "deleted-elsewhere", "t1"})
	s := loadState(t, sel)

	assert.Equal(t, []string{"t1", "t3"}, ids(readmodel.SelectedTasks(s, readmodel.SelectedTasksOptions{})))
	assert.Equal(t, []string{"deleted-elsewhere", "t1", "t3"}, readmodel.SelectedTaskIDs(s))
}

func TestSelectedTasks_FromTrash(t *testing.T) {
	sel := selection.New()
	sel.SelectAll([]string{"t4", "t1"})
	s := loadState(t, sel)

	got := readmodel.SelectedTasks(s, readmodel.SelectedTasksOptions{FromTrash: true})
	assert.Equal(t, []string{"t4"}, ids(got))
}

func TestFindTask(t *testing.T) {
	sel := selection.New()
	sel.SelectTaskList("l1")
	s := loadState(t, sel)

	_, ok := readmodel.FindTask(s, "t2", false)
	assert.True(t, ok)
	_, ok = readmodel.FindTask(s, "t4", false)
	assert.False(t, ok)
	_, ok = readmodel.FindTask(s, "t4", true)
	assert.True(t, ok)
}

func TestSelectors_DoNotMutateState(t *testing.T) {
	sel := selection.New()
	sel.SelectTaskList("l1")
	sel.Toggle("t2")
	s := loadState(t, sel)
	before := ids(readmodel.Tasks(s))

	readmodel.SelectedTasks(s, readmodel.SelectedTasksOptions{})
	readmodel.CompletedTasks(s)
	readmodel.IncompletedTasks(s)

	assert.Equal(t, before, ids(readmodel.Tasks(s)))
}
