// Package session wires a store to the read model, selection, action state,
// and coordinator of one user.
package session

import (
	"context"
	"log/slog"

	"tasklane/internal/actionstate"
	"tasklane/internal/coordinator"
	"tasklane/internal/docstore"
	"tasklane/internal/readmodel"
	"tasklane/internal/selection"
)

// Session is everything a command needs to read and mutate a user's lists.
type Session struct {
	UserID      string
	Store       docstore.Store
	Model       *readmodel.Model
	Selection   *selection.State
	Actions     *actionstate.Tracker
	Coordinator *coordinator.Coordinator
}

// New creates a session for userID on store. Action transitions are logged
// at debug level.
func New(store docstore.Store, userID string, log *slog.Logger, opts ...coordinator.Option) *Session {
	s := &Session{
		UserID:    userID,
		Store:     store,
		Model:     readmodel.New(),
		Selection: selection.New(),
		Actions:   actionstate.NewTracker(),
	}
	s.Actions.Subscribe(func(op actionstate.Op, st actionstate.State) {
		log.Debug("action", "op", op, "status", st.Status)
	})

	opts = append([]coordinator.Option{coordinator.WithLogger(log)}, opts...)
	s.Coordinator = coordinator.New(store, s.Model, s.Selection, s.Actions, userID, opts...)
	return s
}

// Refresh reloads the read model from the store.
func (s *Session) Refresh(ctx context.Context) error {
	return s.Model.Refresh(ctx, s.Store, s.UserID)
}

// State returns the current snapshot viewed through the current selection.
func (s *Session) State() readmodel.State {
	return readmodel.Compose(s.Model.Snapshot(), s.Selection.Snapshot())
}

// Close releases the store.
func (s *Session) Close() error {
	return s.Store.Close()
}
