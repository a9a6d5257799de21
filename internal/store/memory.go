package store

import "encoding/json"

// MemoryPersister holds the last saved snapshot in memory. Used by tests and
// by processes that need a store without durability. SaveErr, when set,
// makes every save fail so tests can exercise the flush-failure path.
type MemoryPersister struct {
	SaveErr  error
	snapshot map[string]json.RawMessage
	saves    int
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{snapshot: map[string]json.RawMessage{}}
}

func (p *MemoryPersister) Load() (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(p.snapshot))
	for k, v := range p.snapshot {
		out[k] = v
	}
	return out, nil
}

func (p *MemoryPersister) Save(snapshot map[string]json.RawMessage) error {
	if p.SaveErr != nil {
		return p.SaveErr
	}
	out := make(map[string]json.RawMessage, len(snapshot))
	for k, v := range snapshot {
		out[k] = v
	}
	p.snapshot = out
	p.saves++
	return nil
}

// Saves reports how many snapshots were successfully written.
func (p *MemoryPersister) Saves() int { return p.saves }

// Snapshot returns the last saved snapshot.
func (p *MemoryPersister) Snapshot() map[string]json.RawMessage { return p.snapshot }
