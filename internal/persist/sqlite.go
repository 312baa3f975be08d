package persist

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Port on a local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
	log    *zap.Logger
}

// NewSQLiteStore opens (or creates) the database at path and initializes the
// schema. Pass ":memory:" for an ephemeral store.
func NewSQLiteStore(path string, log *zap.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("Initializing sqlite store", zap.String("path", path))

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		log.Debug("Failed to set sqlite busy_timeout", zap.Error(err))
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		log.Debug("Failed to set sqlite journal_mode=WAL", zap.Error(err))
	}

	s := &SQLiteStore{db: db, dbPath: path, log: log}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	log.Debug("Sqlite store ready")
	return s, nil
}

// initialize creates the required tables.
func (s *SQLiteStore) initialize() error {
	sessionsTable := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		is_active INTEGER DEFAULT 0
	);
	`

	partitionsTable := `
	CREATE TABLE IF NOT EXISTS partitions (
		session_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		payload BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (session_id, kind)
	);
	CREATE INDEX IF NOT EXISTS idx_partitions_session ON partitions(session_id);
	`

	for _, table := range []string{sessionsTable, partitionsTable} {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// SaveSession upserts a session record.
func (s *SQLiteStore) SaveSession(rec SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := 0
	if rec.Active {
		active = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, name, created_at, is_active) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, is_active = excluded.is_active`,
		rec.ID, rec.Name, rec.CreatedAt, active,
	)
	if err != nil {
		s.log.Error("Failed to save session", zap.String("id", rec.ID), zap.Error(err))
		return fmt.Errorf("failed to save session %s: %w", rec.ID, err)
	}
	return nil
}

// ListSessions returns all sessions ordered by creation time.
func (s *SQLiteStore) ListSessions() ([]SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, name, created_at, is_active FROM sessions ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var active int
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.CreatedAt, &active); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		rec.Active = active != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteSession removes the record and cascades to its partitions.
func (s *SQLiteStore) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM partitions WHERE session_id = ?`, id); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete partitions for %s: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM sessions WHERE id = ?`, id); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	s.log.Debug("Deleted session", zap.String("id", id))
	return nil
}

// SavePartition replaces the payload under (sessionID, kind).
func (s *SQLiteStore) SavePartition(sessionID, kind string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO partitions (session_id, kind, payload, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(session_id, kind) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		sessionID, kind, payload,
	)
	if err != nil {
		s.log.Error("Failed to save partition",
			zap.String("session", sessionID), zap.String("kind", kind), zap.Error(err))
		return fmt.Errorf("failed to save partition (%s, %s): %w", sessionID, kind, err)
	}
	return nil
}

// LoadPartition returns the payload under (sessionID, kind).
func (s *SQLiteStore) LoadPartition(sessionID, kind string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload []byte
	err := s.db.QueryRow(
		`SELECT payload FROM partitions WHERE session_id = ? AND kind = ?`,
		sessionID, kind,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrNoPartition
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load partition (%s, %s): %w", sessionID, kind, err)
	}
	return payload, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.log.Debug("Closing sqlite store")
	return s.db.Close()
}
