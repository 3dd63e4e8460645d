package docstore

import (
	"fmt"

	"tasklane/internal/model"
)

// OpKind is the kind of a batched write.
type OpKind int

const (
	OpCreate OpKind = iota
	OpUpdate
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Op is one write recorded by a batch.
type Op struct {
	Kind   OpKind
	Ref    Ref
	Fields Fields
}

// Ops records batch writes in order. Store implementations embed it to
// satisfy the write half of Batch.
type Ops struct {
	list []Op
}

func (o *Ops) Create(ref Ref, fields Fields) {
	o.list = append(o.list, Op{Kind: OpCreate, Ref: ref, Fields: fields})
}

func (o *Ops) Update(ref Ref, fields Fields) {
	o.list = append(o.list, Op{Kind: OpUpdate, Ref: ref, Fields: fields})
}

func (o *Ops) Delete(ref Ref) {
	o.list = append(o.list, Op{Kind: OpDelete, Ref: ref})
}

// List returns the recorded writes.
func (o *Ops) List() []Op {
	out := make([]Op, len(o.list))
	copy(out, o.list)
	return out
}

// Tx is the view a store gives Apply while a commit is in progress.
// Lookups must observe writes made earlier in the same commit.
type Tx interface {
	Task(id string) (model.Task, bool, error)
	TaskList(id string) (model.TaskList, bool, error)
	PutTask(t model.Task) error
	PutTaskList(l model.TaskList) error
	DeleteTask(id string) error
	DeleteTaskList(id string) error
}

// Apply runs ops against tx in order and stops at the first error. The
// caller discards tx on error so that no write becomes visible.
func Apply(tx Tx, ops []Op) error {
	for _, op := range ops {
		if err := applyOne(tx, op); err != nil {
			return fmt.Errorf("%s %s: %w", op.Kind, op.Ref, err)
		}
	}
	return nil
}

func applyOne(tx Tx, op Op) error {
	switch op.Ref.Collection {
	case TaskCollection:
		return applyTask(tx, op)
	case TaskListCollection:
		return applyTaskList(tx, op)
	default:
		return fmt.Errorf("%w: unknown collection %q", ErrInvalidField, op.Ref.Collection)
	}
}

func applyTask(tx Tx, op Op) error {
	if op.Kind == OpDelete {
		return tx.DeleteTask(op.Ref.ID)
	}

	t, ok, err := tx.Task(op.Ref.ID)
	if err != nil {
		return err
	}
	switch {
	case op.Kind == OpCreate:
		t = model.Task{ID: op.Ref.ID}
	case !ok:
		return ErrNotFound
	}
	if err := ApplyTaskFields(&t, op.Fields); err != nil {
		return err
	}
	return tx.PutTask(t)
}

func applyTaskList(tx Tx, op Op) error {
	if op.Kind == OpDelete {
		return tx.DeleteTaskList(op.Ref.ID)
	}

	l, ok, err := tx.TaskList(op.Ref.ID)
	if err != nil {
		return err
	}
	switch {
	case op.Kind == OpCreate:
		l = model.TaskList{ID: op.Ref.ID}
	case !ok:
		return ErrNotFound
	}
	if err := ApplyTaskListFields(&l, op.Fields); err != nil {
		return err
	}
	return tx.PutTaskList(l)
}
