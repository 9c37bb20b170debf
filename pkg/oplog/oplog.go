package oplog

import (
	"sync"

	"github.com/relario/recordsync/pkg/record"
)

// Log is the append-only transform history consumed by the pusher. It is
// authoritative for "has this transform already been applied": a logged
// id is never re-applied.
type Log interface {
	// Contains reports whether the transform id has been logged.
	Contains(id string) bool

	// Append records a transform at the end of the log.
	Append(t *record.Transform) error

	// Entries returns the logged transform ids in append order.
	Entries() []string
}

// Memory is an in-process append-only Log.
type Memory struct {
	mu    sync.RWMutex
	ids   []string
	seen  map[string]struct{}
	store map[string]*record.Transform
}

// NewMemory creates an empty in-memory transform log.
func NewMemory() *Memory {
	return &Memory{
		seen:  make(map[string]struct{}),
		store: make(map[string]*record.Transform),
	}
}

func (m *Memory) Contains(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.seen[id]
	return ok
}

func (m *Memory) Append(t *record.Transform) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.seen[t.ID]; ok {
		return ErrAlreadyLogged
	}
	m.seen[t.ID] = struct{}{}
	m.ids = append(m.ids, t.ID)
	m.store[t.ID] = t
	return nil
}

func (m *Memory) Entries() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.ids))
	copy(out, m.ids)
	return out
}

// Transform returns a logged transform by id.
func (m *Memory) Transform(id string) (*record.Transform, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.store[id]
	return t, ok
}
