package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathcli/internal/operror"
	"mathcli/internal/persist"
	"mathcli/internal/value"
	"mathcli/internal/vars"
)

func newTestManager(t *testing.T) (*Manager, *vars.Store, persist.Port) {
	t.Helper()
	port := persist.NewMemoryStore()
	store := vars.NewStore(port, nil)
	m, err := NewManager(port, store, nil)
	require.NoError(t, err)
	return m, store, port
}

func TestFirstSessionAutoCreated(t *testing.T) {
	m, store, _ := newTestManager(t)

	require.Equal(t, 1, m.Count())
	active := m.Active()
	assert.Equal(t, "Session 1", active.Name)
	assert.True(t, active.Active)
	assert.Len(t, active.ID, 8)
	assert.Equal(t, active.ID, store.SessionID())
}

func TestCreateBecomesActive(t *testing.T) {
	m, store, _ := newTestManager(t)
	first := m.Active()

	s, err := m.Create("experiments")
	require.NoError(t, err)

	assert.Equal(t, "experiments", s.Name)
	assert.Equal(t, s.ID, m.Active().ID)
	assert.Equal(t, s.ID, store.SessionID())

	// Exactly one active.
	count := 0
	for _, sess := range m.List() {
		if sess.Active {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.NotEqual(t, first.ID, m.Active().ID)
}

func TestSwitchByNameAndID(t *testing.T) {
	m, _, _ := newTestManager(t)
	first := m.Active()
	_, err := m.Create("work")
	require.NoError(t, err)

	require.NoError(t, m.Switch(first.ID))
	assert.Equal(t, first.ID, m.Active().ID)

	require.NoError(t, m.Switch("WORK")) // names match case-insensitively
	assert.Equal(t, "work", m.Active().Name)

	err = m.Switch("nope")
	assert.True(t, errors.Is(err, operror.ErrInvalidValue))
}

func TestSwitchActiveIsNoOp(t *testing.T) {
	m, store, _ := newTestManager(t)
	active := m.Active()

	require.NoError(t, store.Set("x", value.Number(1), false))
	require.NoError(t, m.Switch(active.ID))

	// State untouched by the no-op switch.
	_, ok := store.Get("x")
	assert.True(t, ok)
}

func TestSessionStateIsolation(t *testing.T) {
	m, store, _ := newTestManager(t)
	first := m.Active()

	require.NoError(t, store.Set("a", value.Number(1), false))

	_, err := m.Create("second")
	require.NoError(t, err)
	_, ok := store.Get("a")
	assert.False(t, ok, "variables must not leak into a new session")

	require.NoError(t, m.Switch(first.ID))
	v, ok := store.Get("a")
	require.True(t, ok, "state must survive the round trip")
	assert.Equal(t, 1.0, v.Num())
}

func TestRename(t *testing.T) {
	m, _, _ := newTestManager(t)

	require.NoError(t, m.Rename(m.Active().ID, "renamed"))
	assert.Equal(t, "renamed", m.Active().Name)

	err := m.Rename(m.Active().ID, "")
	assert.True(t, errors.Is(err, operror.ErrInvalidValue))
}

func TestDeleteLastRefused(t *testing.T) {
	m, _, _ := newTestManager(t)

	err := m.Delete(m.Active().ID)
	assert.True(t, errors.Is(err, operror.ErrInvalidValue))
	assert.Equal(t, 1, m.Count())
}

func TestDeleteActiveSwitchesToPrevious(t *testing.T) {
	m, _, _ := newTestManager(t)
	first := m.Active()
	second, err := m.Create("second")
	require.NoError(t, err)
	third, err := m.Create("third")
	require.NoError(t, err)

	// Deleting the active (last-created) session activates its predecessor.
	require.NoError(t, m.Delete(third.ID))
	assert.Equal(t, second.ID, m.Active().ID)
	assert.Equal(t, 2, m.Count())

	// Deleting the active first-in-order session activates the next one.
	require.NoError(t, m.Switch(first.ID))
	require.NoError(t, m.Delete(first.ID))
	assert.Equal(t, second.ID, m.Active().ID)
	assert.Equal(t, 1, m.Count())
}

func TestDeleteInactiveKeepsActive(t *testing.T) {
	m, _, _ := newTestManager(t)
	first := m.Active()
	second, err := m.Create("second")
	require.NoError(t, err)

	require.NoError(t, m.Delete(first.ID))
	assert.Equal(t, second.ID, m.Active().ID)
}

func TestDeleteCascadesPartitions(t *testing.T) {
	m, store, port := newTestManager(t)
	first := m.Active()
	second, err := m.Create("second")
	require.NoError(t, err)

	require.NoError(t, m.Switch(first.ID))
	require.NoError(t, store.Set("x", value.Number(1), true))
	require.NoError(t, store.Flush())

	require.NoError(t, m.Switch(second.ID))
	require.NoError(t, m.Delete(first.ID))

	_, err = port.LoadPartition(first.ID, persist.KindPersistent)
	assert.True(t, errors.Is(err, persist.ErrNoPartition))
}

func TestManagerReloadsPersistedSessions(t *testing.T) {
	port := persist.NewMemoryStore()
	store := vars.NewStore(port, nil)
	m, err := NewManager(port, store, nil)
	require.NoError(t, err)
	_, err = m.Create("second")
	require.NoError(t, err)
	activeID := m.Active().ID

	// A fresh manager over the same port sees both sessions and the same
	// active one.
	store2 := vars.NewStore(port, nil)
	m2, err := NewManager(port, store2, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, m2.Count())
	assert.Equal(t, activeID, m2.Active().ID)
	assert.Equal(t, activeID, store2.SessionID())
}
