package store

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

type noteCollection struct {
	name  string
	notes []string
}

func (c *noteCollection) Name() string { return c.name }
func (c *noteCollection) State() (json.RawMessage, error) {
	return json.Marshal(c.notes)
}
func (c *noteCollection) Restore(data json.RawMessage) error {
	return json.Unmarshal(data, &c.notes)
}

func TestStore_UpdateFlushesFullSnapshot(t *testing.T) {
	persister := NewMemoryPersister()
	st := New(persister)

	notes := &noteCollection{name: "notes"}
	tags := &noteCollection{name: "tags"}
	st.Register(notes)
	st.Register(tags)
	assert.NoError(t, st.Open())

	persisted := st.Update(func() {
		notes.notes = append(notes.notes, "first")
	})
	assert.True(t, persisted)
	assert.Equal(t, 1, persister.Saves())

	// The flush is full-snapshot: untouched collections are written too.
	snapshot := persister.Snapshot()
	assert.Contains(t, snapshot, "notes")
	assert.Contains(t, snapshot, "tags")
}

func TestStore_FlushFailureKeepsInMemoryState(t *testing.T) {
	persister := NewMemoryPersister()
	persister.SaveErr = errors.New("disk full")
	st := New(persister)

	notes := &noteCollection{name: "notes"}
	st.Register(notes)
	assert.NoError(t, st.Open())

	persisted := st.Update(func() {
		notes.notes = append(notes.notes, "kept")
	})

	// Flush failed, mutation survived: the two phases are distinct.
	assert.False(t, persisted)
	assert.Equal(t, []string{"kept"}, notes.notes)
	assert.Equal(t, 0, persister.Saves())
}

func TestStore_MutateAbortsWithoutFlushing(t *testing.T) {
	persister := NewMemoryPersister()
	st := New(persister)

	notes := &noteCollection{name: "notes"}
	st.Register(notes)
	assert.NoError(t, st.Open())

	boom := errors.New("state check failed")
	persisted, err := st.Mutate(func() error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, persisted)
	assert.Equal(t, 0, persister.Saves())

	persisted, err = st.Mutate(func() error {
		notes.notes = append(notes.notes, "first")
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, persisted)
	assert.Equal(t, 1, persister.Saves())
}

func TestStore_OpenRestoresRegisteredCollections(t *testing.T) {
	persister := NewMemoryPersister()

	first := New(persister)
	notes := &noteCollection{name: "notes"}
	first.Register(notes)
	assert.NoError(t, first.Open())
	assert.True(t, first.Update(func() {
		notes.notes = []string{"a", "b"}
	}))

	second := New(persister)
	restored := &noteCollection{name: "notes"}
	missing := &noteCollection{name: "never_saved"}
	second.Register(restored)
	second.Register(missing)
	assert.NoError(t, second.Open())

	assert.Equal(t, []string{"a", "b"}, restored.notes)
	assert.Empty(t, missing.notes)
}

func TestFilePersister_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "dayflow.json")
	persister := NewFilePersister(path)

	// Missing file loads as an empty snapshot.
	snapshot, err := persister.Load()
	assert.NoError(t, err)
	assert.Empty(t, snapshot)

	in := map[string]json.RawMessage{
		"notes": json.RawMessage(`["x"]`),
	}
	assert.NoError(t, persister.Save(in))

	out, err := persister.Load()
	assert.NoError(t, err)
	assert.JSONEq(t, `["x"]`, string(out["notes"]))
}
