package docstore

import (
	"fmt"
	"time"

	"tasklane/internal/model"
)

// Task document fields.
const (
	FieldListID    = "listId"
	FieldUserID    = "userId"
	FieldTitle     = "title"
	FieldNotes     = "notes"
	FieldComplete  = "complete"
	FieldArchived  = "archived"
	FieldCreatedAt = "createdAt"
)

// Task list document fields. FieldUserID and FieldCreatedAt are shared.
const (
	FieldName                    = "name"
	FieldPrimary                 = "primary"
	FieldNumberOfCompleteTasks   = "numberOfCompleteTasks"
	FieldNumberOfIncompleteTasks = "numberOfIncompleteTasks"
)

// Fields is a partial document. Values are plain values or an Increment.
type Fields map[string]any

// Increment is a field value that adds N to a numeric field when the write is
// applied, without a prior read by the caller.
type Increment struct {
	N int
}

// Inc returns an Increment of n.
func Inc(n int) Increment { return Increment{N: n} }

// ApplyTaskFields writes fields onto t. Increments are not valid on tasks.
func ApplyTaskFields(t *model.Task, fields Fields) error {
	for name, value := range fields {
		var err error
		switch name {
		case FieldListID:
			t.ListID, err = asString(name, value)
		case FieldUserID:
			t.UserID, err = asString(name, value)
		case FieldTitle:
			t.Title, err = asString(name, value)
		case FieldNotes:
			t.Notes, err = asString(name, value)
		case FieldComplete:
			t.Complete, err = asBool(name, value)
		case FieldArchived:
			t.Archived, err = asBool(name, value)
		case FieldCreatedAt:
			t.CreatedAt, err = asTime(name, value)
		default:
			err = fmt.Errorf("%w: task has no field %q", ErrInvalidField, name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ApplyTaskListFields writes fields onto l, resolving increments against the
// current counter values. An increment that would take a counter below zero
// leaves it at zero. A negative absolute value is ErrNegativeCounter.
func ApplyTaskListFields(l *model.TaskList, fields Fields) error {
	for name, value := range fields {
		var err error
		switch name {
		case FieldUserID:
			l.UserID, err = asString(name, value)
		case FieldName:
			l.Name, err = asString(name, value)
		case FieldPrimary:
			l.Primary, err = asBool(name, value)
		case FieldCreatedAt:
			l.CreatedAt, err = asTime(name, value)
		case FieldNumberOfCompleteTasks:
			l.NumberOfCompleteTasks, err = asCounter(name, value, l.NumberOfCompleteTasks)
		case FieldNumberOfIncompleteTasks:
			l.NumberOfIncompleteTasks, err = asCounter(name, value, l.NumberOfIncompleteTasks)
		default:
			err = fmt.Errorf("%w: taskList has no field %q", ErrInvalidField, name)
		}
		if err != nil {
			return err
		}
	}
	if l.NumberOfCompleteTasks < 0 || l.NumberOfIncompleteTasks < 0 {
		return fmt.Errorf("%w: taskList/%s (%d, %d)", ErrNegativeCounter,
			l.ID, l.NumberOfCompleteTasks, l.NumberOfIncompleteTasks)
	}
	return nil
}

func asString(name string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidField, name, v)
	}
	return s, nil
}

func asBool(name string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a bool, got %T", ErrInvalidField, name, v)
	}
	return b, nil
}

func asTime(name string, v any) (time.Time, error) {
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s must be a time, got %T", ErrInvalidField, name, v)
	}
	return t, nil
}

func asCounter(name string, v any, current int) (int, error) {
	switch n := v.(type) {
	case Increment:
		return max(current+n.N, 0), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %s must be an int or Increment, got %T", ErrInvalidField, name, v)
	}
}
