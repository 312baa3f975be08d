package persist

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "mathcli.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)

	rec := SessionRecord{ID: "abc12345", Name: "Session 1", CreatedAt: time.Now().UTC(), Active: true}
	require.NoError(t, s.SaveSession(rec))

	got, err := s.ListSessions()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.ID, got[0].ID)
	assert.Equal(t, rec.Name, got[0].Name)
	assert.True(t, got[0].Active)
}

func TestSaveSessionUpsert(t *testing.T) {
	s := newTestStore(t)

	rec := SessionRecord{ID: "abc12345", Name: "old", CreatedAt: time.Now().UTC(), Active: true}
	require.NoError(t, s.SaveSession(rec))
	rec.Name = "new"
	rec.Active = false
	require.NoError(t, s.SaveSession(rec))

	got, err := s.ListSessions()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Name)
	assert.False(t, got[0].Active)
}

func TestPartitionRoundTrip(t *testing.T) {
	s := newTestStore(t)

	payload := []byte(`{"radius":"4"}`)
	require.NoError(t, s.SavePartition("abc12345", KindPersistent, payload))

	got, err := s.LoadPartition("abc12345", KindPersistent)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// Second save replaces.
	require.NoError(t, s.SavePartition("abc12345", KindPersistent, []byte(`{}`)))
	got, err = s.LoadPartition("abc12345", KindPersistent)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), got)
}

func TestLoadMissingPartition(t *testing.T) {
	s := newTestStore(t)

	_, err := s.LoadPartition("nope", KindScopes)
	assert.True(t, errors.Is(err, ErrNoPartition))
}

func TestDeleteSessionCascades(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveSession(SessionRecord{ID: "abc12345", Name: "s", CreatedAt: time.Now().UTC()}))
	require.NoError(t, s.SavePartition("abc12345", KindScopes, []byte(`[]`)))
	require.NoError(t, s.SavePartition("abc12345", KindPersistent, []byte(`{}`)))

	require.NoError(t, s.DeleteSession("abc12345"))

	sessions, err := s.ListSessions()
	require.NoError(t, err)
	assert.Empty(t, sessions)

	_, err = s.LoadPartition("abc12345", KindScopes)
	assert.True(t, errors.Is(err, ErrNoPartition))
	_, err = s.LoadPartition("abc12345", KindPersistent)
	assert.True(t, errors.Is(err, ErrNoPartition))
}

func TestGlobalPartitionUntouchedByDelete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SavePartition(GlobalSession, KindFunctions, []byte(`[]`)))
	require.NoError(t, s.SaveSession(SessionRecord{ID: "abc12345", Name: "s", CreatedAt: time.Now().UTC()}))
	require.NoError(t, s.DeleteSession("abc12345"))

	got, err := s.LoadPartition(GlobalSession, KindFunctions)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}
