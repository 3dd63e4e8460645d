package session_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklane/internal/actionstate"
	"tasklane/internal/coordinator"
	"tasklane/internal/model"
	"tasklane/internal/readmodel"
	"tasklane/internal/session"
	"tasklane/internal/testutil"
)

func TestSession_RefreshAndMutate(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTaskList(model.TaskList{ID: "l1", Name: "Home", Primary: true})
	store.AddTaskList(model.TaskList{ID: "l2", Name: "Work"})

	sess := session.New(store, testutil.DefaultUserID, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()
	require.NoError(t, sess.Refresh(ctx))

	sess.Selection.SelectTaskList("l1")
	_, err := sess.Coordinator.CreateTask(ctx, coordinator.CreateTaskInput{Title: "Water plants"})
	require.NoError(t, err)
	assert.Empty(t, readmodel.Tasks(sess.State()), "read model only changes on refresh")

	require.NoError(t, sess.Refresh(ctx))
	tasks := readmodel.Tasks(sess.State())
	require.Len(t, tasks, 1)
	assert.Equal(t, "Water plants", tasks[0].Title)

	l, ok := readmodel.SelectedTaskList(sess.State())
	require.True(t, ok)
	assert.Equal(t, 1, l.NumberOfIncompleteTasks)
	assert.Equal(t, actionstate.Success, sess.Actions.State(actionstate.CreateTask).Status)

	require.NoError(t, sess.Close())
}
