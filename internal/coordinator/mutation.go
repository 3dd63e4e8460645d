package coordinator

import (
	"context"
	"fmt"
	"sort"

	"tasklane/internal/docstore"
)

// Delta is a pending counter adjustment on one field of one document.
type Delta struct {
	Ref   docstore.Ref
	Field string
	N     int
}

type deltaKey struct {
	ref   docstore.Ref
	field string
}

// Mutation collects the writes of one user action and commits them as a
// single batch. Counter deltas for the same document field are folded
// together; a field whose deltas cancel out is not written.
type Mutation struct {
	writes []docstore.Op
	deltas map[deltaKey]int
}

// NewMutation returns an empty mutation.
func NewMutation() *Mutation {
	return &Mutation{deltas: make(map[deltaKey]int)}
}

// Create adds a document creation.
func (m *Mutation) Create(ref docstore.Ref, fields docstore.Fields) {
	m.writes = append(m.writes, docstore.Op{Kind: docstore.OpCreate, Ref: ref, Fields: fields})
}

// Set adds a partial update of ref.
func (m *Mutation) Set(ref docstore.Ref, fields docstore.Fields) {
	m.writes = append(m.writes, docstore.Op{Kind: docstore.OpUpdate, Ref: ref, Fields: fields})
}

// Delete adds a document removal.
func (m *Mutation) Delete(ref docstore.Ref) {
	m.writes = append(m.writes, docstore.Op{Kind: docstore.OpDelete, Ref: ref})
}

// Add folds n into the pending delta of field on ref.
func (m *Mutation) Add(ref docstore.Ref, field string, n int) {
	m.deltas[deltaKey{ref: ref, field: field}] += n
}

// Deltas returns the non-zero folded deltas ordered by document then field.
func (m *Mutation) Deltas() []Delta {
	out := make([]Delta, 0, len(m.deltas))
	for k, n := range m.deltas {
		if n == 0 {
			continue
		}
		out = append(out, Delta{Ref: k.ref, Field: k.field, N: n})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Ref.String(), out[j].Ref.String()
		if a != b {
			return a < b
		}
		return out[i].Field < out[j].Field
	})
	return out
}

// Len returns the number of writes Commit would issue.
func (m *Mutation) Len() int {
	return len(m.writes) + len(m.counterWrites())
}

// Empty reports whether the mutation would write nothing.
func (m *Mutation) Empty() bool {
	return m.Len() == 0
}

// counterWrites groups the deltas into one increment update per document.
func (m *Mutation) counterWrites() []docstore.Op {
	var ops []docstore.Op
	index := make(map[docstore.Ref]int)
	for _, d := range m.Deltas() {
		i, ok := index[d.Ref]
		if !ok {
			i = len(ops)
			index[d.Ref] = i
			ops = append(ops, docstore.Op{Kind: docstore.OpUpdate, Ref: d.Ref, Fields: docstore.Fields{}})
		}
		ops[i].Fields[d.Field] = docstore.Inc(d.N)
	}
	return ops
}

// Commit writes everything in one batch. An empty mutation commits nothing.
func (m *Mutation) Commit(ctx context.Context, store docstore.Store) error {
	if m.Empty() {
		return nil
	}

	b := store.Batch()
	for _, op := range append(m.writes, m.counterWrites()...) {
		switch op.Kind {
		case docstore.OpCreate:
			b.Create(op.Ref, op.Fields)
		case docstore.OpUpdate:
			b.Update(op.Ref, op.Fields)
		case docstore.OpDelete:
			b.Delete(op.Ref)
		}
	}
	if err := b.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}
