// Package persist defines the durable storage port for the engine and its
// SQLite and in-memory implementations. State is partitioned by
// (session id, partition kind) so backends are swappable.
package persist

import (
	"errors"
	"time"
)

// Partition kinds. GlobalSession keys state that is not session-scoped.
const (
	KindScopes     = "scopes"
	KindPersistent = "persistent"
	KindFunctions  = "functions"

	GlobalSession = "global"
)

// ErrNoPartition is returned by LoadPartition when no payload exists for the
// requested (session, kind) pair.
var ErrNoPartition = errors.New("no stored partition")

// SessionRecord is the durable form of a session.
type SessionRecord struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Active    bool
}

// Port is the durable storage interface. Flushes are all-or-nothing from the
// caller's perspective: a failure is surfaced as an error, never dropped.
type Port interface {
	// SaveSession upserts a session record.
	SaveSession(rec SessionRecord) error

	// ListSessions returns all known sessions ordered by creation time.
	ListSessions() ([]SessionRecord, error)

	// DeleteSession removes a session record and cascades to all of its
	// partitions. Deletion is destructive and non-recoverable.
	DeleteSession(id string) error

	// SavePartition replaces the payload stored under (sessionID, kind).
	SavePartition(sessionID, kind string, payload []byte) error

	// LoadPartition returns the payload stored under (sessionID, kind), or
	// ErrNoPartition if none exists.
	LoadPartition(sessionID, kind string) ([]byte, error)

	// Close releases backend resources.
	Close() error
}
