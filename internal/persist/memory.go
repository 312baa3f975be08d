package persist

import (
	"sort"
	"sync"
)

// MemoryStore is an in-memory Port for tests and ephemeral engines.
type MemoryStore struct {
	mu         sync.RWMutex
	sessions   map[string]SessionRecord
	partitions map[string]map[string][]byte // session id -> kind -> payload
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions:   make(map[string]SessionRecord),
		partitions: make(map[string]map[string][]byte),
	}
}

// SaveSession upserts a session record.
func (m *MemoryStore) SaveSession(rec SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[rec.ID] = rec
	return nil
}

// ListSessions returns all sessions ordered by creation time.
func (m *MemoryStore) ListSessions() ([]SessionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]SessionRecord, 0, len(m.sessions))
	for _, rec := range m.sessions {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// DeleteSession removes the record and its partitions.
func (m *MemoryStore) DeleteSession(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	delete(m.partitions, id)
	return nil
}

// SavePartition replaces the payload under (sessionID, kind).
func (m *MemoryStore) SavePartition(sessionID, kind string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kinds, ok := m.partitions[sessionID]
	if !ok {
		kinds = make(map[string][]byte)
		m.partitions[sessionID] = kinds
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)
	kinds[kind] = buf
	return nil
}

// LoadPartition returns the payload under (sessionID, kind).
func (m *MemoryStore) LoadPartition(sessionID, kind string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kinds, ok := m.partitions[sessionID]
	if !ok {
		return nil, ErrNoPartition
	}
	payload, ok := kinds[kind]
	if !ok {
		return nil, ErrNoPartition
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)
	return buf, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }
