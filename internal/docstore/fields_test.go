package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklane/internal/model"
)

func TestApplyTaskListFields_Increment(t *testing.T) {
	l := model.TaskList{ID: "l1", NumberOfCompleteTasks: 2, NumberOfIncompleteTasks: 3}

	err := ApplyTaskListFields(&l, Fields{
		FieldNumberOfCompleteTasks:   Inc(-1),
		FieldNumberOfIncompleteTasks: Inc(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, l.NumberOfCompleteTasks)
	assert.Equal(t, 7, l.NumberOfIncompleteTasks)
}

func TestApplyTaskListFields_IncrementClampsAtZero(t *testing.T) {
	l := model.TaskList{ID: "l1", NumberOfCompleteTasks: 1, NumberOfIncompleteTasks: 0}

	err := ApplyTaskListFields(&l, Fields{
		FieldNumberOfCompleteTasks:   Inc(-2),
		FieldNumberOfIncompleteTasks: Inc(-1),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, l.NumberOfCompleteTasks)
	assert.Equal(t, 0, l.NumberOfIncompleteTasks)
}

func TestApplyTaskListFields_NegativeValue(t *testing.T) {
	l := model.TaskList{ID: "l1", NumberOfCompleteTasks: 1}

	err := ApplyTaskListFields(&l, Fields{FieldNumberOfCompleteTasks: -1})
	assert.ErrorIs(t, err, ErrNegativeCounter)
}

func TestApplyTaskFields(t *testing.T) {
	task := model.Task{ID: "t1", ListID: "l1"}

	err := ApplyTaskFields(&task, Fields{
		FieldListID:   "l2",
		FieldArchived: false,
		FieldComplete: true,
		FieldTitle:    "Call mom",
	})
	require.NoError(t, err)
	assert.Equal(t, model.Task{ID: "t1", ListID: "l2", Complete: true, Title: "Call mom"}, task)
}

func TestApplyTaskFields_Invalid(t *testing.T) {
	task := model.Task{ID: "t1"}

	assert.ErrorIs(t, ApplyTaskFields(&task, Fields{"priority": 3}), ErrInvalidField)
	assert.ErrorIs(t, ApplyTaskFields(&task, Fields{FieldComplete: "yes"}), ErrInvalidField)
	assert.ErrorIs(t, ApplyTaskFields(&task, Fields{FieldComplete: Inc(1)}), ErrInvalidField)
}

func TestOps_RecordsInOrder(t *testing.T) {
	var ops Ops
	ops.Create(TaskRef("t1"), Fields{FieldTitle: "a"})
	ops.Update(TaskListRef("l1"), Fields{FieldName: "b"})
	ops.Delete(TaskRef("t2"))

	list := ops.List()
	require.Len(t, list, 3)
	assert.Equal(t, OpCreate, list[0].Kind)
	assert.Equal(t, "taskList/l1", list[1].Ref.String())
	assert.Equal(t, OpDelete, list[2].Kind)
}
