package store

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Collection is one named record set held in memory by a repository. The
// store only ever sees its serialized state; the typed slices live with the
// repositories that own them.
type Collection interface {
	Name() string
	State() (json.RawMessage, error)
	Restore(data json.RawMessage) error
}

// Persister is the durability substrate: load everything, save everything.
// The store does not care whether that is a file, an object bucket, or a
// test double.
type Persister interface {
	Load() (map[string]json.RawMessage, error)
	Save(snapshot map[string]json.RawMessage) error
}

// Store serializes every mutation behind one mutex and flushes the full
// snapshot after each one. The mutex is what makes the read-modify-write
// paths (leave approval in particular) safe under a concurrent HTTP server;
// the arithmetic inside stays a plain read-modify-write.
type Store struct {
	mu          sync.Mutex
	persister   Persister
	collections []Collection
	logger      *zap.Logger
}

func New(persister Persister, logger ...*zap.Logger) *Store {
	l := zap.L().Named("store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("store")
	}
	return &Store{persister: persister, logger: l}
}

// Register adds a collection. All registrations must happen before Open.
func (s *Store) Register(c Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = append(s.collections, c)
}

// Open loads the snapshot and restores every registered collection.
// Collections absent from the snapshot start empty.
func (s *Store) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.persister.Load()
	if err != nil {
		return err
	}

	for _, c := range s.collections {
		data, ok := snapshot[c.Name()]
		if !ok {
			continue
		}
		if err := c.Restore(data); err != nil {
			return err
		}
	}

	s.logger.Info("store opened", zap.Int("collections", len(s.collections)))
	return nil
}

// View runs fn under the store lock for a consistent read.
func (s *Store) View(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Update runs fn under the lock, then flushes the full snapshot. The
// in-memory mutation is kept even when the flush fails; the caller gets
// persisted=false and the failure is logged, never raised. Callers surface
// the flag so clients can tell the two phases apart.
func (s *Store) Update(fn func()) (persisted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn()

	if err := s.flushLocked(); err != nil {
		s.logger.Warn("snapshot flush failed, in-memory state retained", zap.Error(err))
		return false
	}
	return true
}

// Mutate runs fn under the lock and flushes only when fn succeeds. fn must
// leave the collections untouched when it returns an error; the error aborts
// the write and propagates to the caller. Check-then-mutate transitions
// (closing an attendance record, deciding a leave) go through here so the
// check and the write happen in one critical section. A flush failure after
// a successful fn behaves like Update: state kept, persisted=false.
func (s *Store) Mutate(fn func() error) (persisted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(); err != nil {
		return false, err
	}

	if err := s.flushLocked(); err != nil {
		s.logger.Warn("snapshot flush failed, in-memory state retained", zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *Store) flushLocked() error {
	snapshot := make(map[string]json.RawMessage, len(s.collections))
	for _, c := range s.collections {
		data, err := c.State()
		if err != nil {
			return err
		}
		snapshot[c.Name()] = data
	}
	return s.persister.Save(snapshot)
}
