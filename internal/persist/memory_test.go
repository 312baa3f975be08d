package persist

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreImplementsPort(t *testing.T) {
	var _ Port = NewMemoryStore()
}

func TestMemoryPartitionIsolation(t *testing.T) {
	m := NewMemoryStore()

	payload := []byte(`{"a":"1"}`)
	require.NoError(t, m.SavePartition("s1", KindPersistent, payload))

	// Mutating the caller's slice must not leak into the store.
	payload[2] = 'x'
	got, err := m.LoadPartition("s1", KindPersistent)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":"1"}`), got)

	// Mutating the loaded copy must not corrupt future loads.
	got[2] = 'y'
	again, err := m.LoadPartition("s1", KindPersistent)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":"1"}`), again)
}

func TestMemoryListSessionsOrder(t *testing.T) {
	m := NewMemoryStore()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, m.SaveSession(SessionRecord{ID: "bbb", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, m.SaveSession(SessionRecord{ID: "aaa", CreatedAt: base}))
	require.NoError(t, m.SaveSession(SessionRecord{ID: "ccc", CreatedAt: base}))

	got, err := m.ListSessions()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "aaa", got[0].ID)
	assert.Equal(t, "ccc", got[1].ID)
	assert.Equal(t, "bbb", got[2].ID)
}

func TestMemoryDeleteCascades(t *testing.T) {
	m := NewMemoryStore()

	require.NoError(t, m.SaveSession(SessionRecord{ID: "s1"}))
	require.NoError(t, m.SavePartition("s1", KindScopes, []byte(`[]`)))
	require.NoError(t, m.DeleteSession("s1"))

	_, err := m.LoadPartition("s1", KindScopes)
	assert.True(t, errors.Is(err, ErrNoPartition))
}
