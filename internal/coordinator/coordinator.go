// Package coordinator turns user intents into atomic store batches.
//
// Every operation resolves the affected documents from one read-model state,
// computes the per-list counter deltas, and commits exactly one batch. The
// action state for the operation goes pending before the commit and success
// or failure after it. Nothing local is written before the commit, so a
// failed operation leaves the read model as it was.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tasklane/internal/actionstate"
	"tasklane/internal/docstore"
	"tasklane/internal/readmodel"
	"tasklane/internal/selection"
)

// ErrPrecondition is returned, wrapped, when an operation is rejected before
// any write is attempted.
var ErrPrecondition = errors.New("precondition failed")

func preconditionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

// Coordinator runs the mutating operations of one user session.
type Coordinator struct {
	store   docstore.Store
	model   *readmodel.Model
	sel     *selection.State
	actions *actionstate.Tracker
	userID  string

	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// WithClock sets the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithIDGenerator sets the generator of new document ids.
func WithIDGenerator(fn func() string) Option {
	return func(c *Coordinator) { c.newID = fn }
}

// New creates a coordinator writing to store on behalf of userID.
func New(store docstore.Store, model *readmodel.Model, sel *selection.State, actions *actionstate.Tracker, userID string, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:   store,
		model:   model,
		sel:     sel,
		actions: actions,
		userID:  userID,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// state takes the single snapshot an operation computes from.
func (c *Coordinator) state() readmodel.State {
	return readmodel.Compose(c.model.Snapshot(), c.sel.Snapshot())
}

// commit runs m as operation op.
func (c *Coordinator) commit(ctx context.Context, op actionstate.Op, m *Mutation) error {
	return c.run(op, func() error {
		c.log.Debug("commit", "op", op, "writes", m.Len(), "deltas", len(m.Deltas()))
		return m.Commit(ctx, c.store)
	})
}

// update runs a single-document write as operation op.
func (c *Coordinator) update(ctx context.Context, op actionstate.Op, ref docstore.Ref, fields docstore.Fields) error {
	return c.run(op, func() error {
		c.log.Debug("update", "op", op, "ref", ref.String())
		if err := c.store.Update(ctx, ref, fields); err != nil {
			return fmt.Errorf("update %s: %w", ref, err)
		}
		return nil
	})
}

func (c *Coordinator) run(op actionstate.Op, fn func() error) error {
	c.actions.Begin(op)

	if err := fn(); err != nil {
		c.log.Warn("operation failed", "op", op, "error", err)
		if terr := c.actions.Fail(op, err); terr != nil {
			c.log.Debug("action state", "op", op, "error", terr)
		}
		return err
	}

	c.log.Debug("operation succeeded", "op", op)
	if terr := c.actions.Succeed(op); terr != nil {
		c.log.Debug("action state", "op", op, "error", terr)
	}
	return nil
}

func (c *Coordinator) requireUser() error {
	if c.userID == "" {
		return preconditionf("no user")
	}
	return nil
}
