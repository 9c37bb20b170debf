package keymap

import "sync"

// Map is the bidirectional secondary-key table: for a record type and key
// name it relates local record ids to the values assigned by the remote
// system. The pusher consults it during translation and writes to it
// during response merge; it never owns the table.
type Map interface {
	// IDFromKey resolves a key value back to the local record id.
	IDFromKey(recordType, key, value string) (string, bool)

	// ValueFromID resolves the key value bound to a local record id.
	ValueFromID(recordType, key, id string) (string, bool)

	// Set binds a key value to a local record id, replacing any previous
	// binding for either side. Setting an existing binding is a no-op.
	Set(recordType, key, id, value string)

	// Has reports whether the exact binding is already present.
	Has(recordType, key, id, value string) bool
}

// Memory is an in-process Map guarded by a read-write mutex. Concurrent
// transforms touching overlapping records get last-write-wins per key.
type Memory struct {
	mu      sync.RWMutex
	byValue map[string]string
	byID    map[string]string
}

// NewMemory creates an empty in-memory key map.
func NewMemory() *Memory {
	return &Memory{
		byValue: make(map[string]string),
		byID:    make(map[string]string),
	}
}

func (m *Memory) IDFromKey(recordType, key, value string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byValue[compose(recordType, key, value)]
	return id, ok
}

func (m *Memory) ValueFromID(recordType, key, id string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.byID[compose(recordType, key, id)]
	return value, ok
}

func (m *Memory) Set(recordType, key, id, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.byID[compose(recordType, key, id)]; ok && prev != value {
		delete(m.byValue, compose(recordType, key, prev))
	}
	m.byID[compose(recordType, key, id)] = value
	m.byValue[compose(recordType, key, value)] = id
}

func (m *Memory) Has(recordType, key, id, value string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bound, ok := m.byID[compose(recordType, key, id)]
	return ok && bound == value
}

func compose(parts ...string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "\x00"
		}
		out += p
	}
	return out
}
