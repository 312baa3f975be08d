// Package session owns the set of sessions and the single active session id.
// Exactly one session exists at all times and at most one is active; on a
// switch the variable store is told which partition to load and save.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mathcli/internal/operror"
	"mathcli/internal/persist"
	"mathcli/internal/vars"
)

// Session describes one isolated state partition.
type Session struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Active    bool
}

// Manager enforces the session invariants. Mutations are expected to run on
// a single logical execution context; the manager itself performs no locking
// beyond what the store and port provide.
type Manager struct {
	sessions []Session // creation order
	port     persist.Port
	store    *vars.Store
	log      *zap.Logger
}

// NewManager loads known sessions from the port, auto-creating a first
// session when none exists, and points the variable store at the active one.
func NewManager(port persist.Port, store *vars.Store, log *zap.Logger) (*Manager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{port: port, store: store, log: log}

	records, err := port.ListSessions()
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	for _, rec := range records {
		m.sessions = append(m.sessions, Session(rec))
	}

	if len(m.sessions) == 0 {
		if _, err := m.Create(""); err != nil {
			return nil, err
		}
		return m, nil
	}

	// Repair the single-active invariant: keep the first active session,
	// demote the rest, promote the first session if none is active.
	activeIdx := -1
	for i := range m.sessions {
		if m.sessions[i].Active {
			if activeIdx == -1 {
				activeIdx = i
			} else {
				m.sessions[i].Active = false
				if err := m.saveSession(i); err != nil {
					return nil, err
				}
			}
		}
	}
	if activeIdx == -1 {
		activeIdx = 0
		m.sessions[0].Active = true
		if err := m.saveSession(0); err != nil {
			return nil, err
		}
	}
	if err := m.store.SetSession(m.sessions[activeIdx].ID); err != nil {
		return nil, err
	}
	return m, nil
}

// newID generates a short opaque session token.
func newID() string {
	return uuid.NewString()[:8]
}

// Active returns the active session.
func (m *Manager) Active() Session {
	for _, s := range m.sessions {
		if s.Active {
			return s
		}
	}
	// Unreachable while the invariant holds; NewManager and every mutation
	// re-establish exactly one active session.
	return Session{}
}

// List returns all sessions in creation order.
func (m *Manager) List() []Session {
	out := make([]Session, len(m.sessions))
	copy(out, m.sessions)
	return out
}

// Count returns the number of sessions.
func (m *Manager) Count() int { return len(m.sessions) }

// Create adds a new session and makes it active. An empty name gets a
// numbered default.
func (m *Manager) Create(name string) (Session, error) {
	if name == "" {
		name = fmt.Sprintf("Session %d", len(m.sessions)+1)
	}
	s := Session{
		ID:        newID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Active:    true,
	}

	for i := range m.sessions {
		if m.sessions[i].Active {
			m.sessions[i].Active = false
			if err := m.saveSession(i); err != nil {
				return Session{}, err
			}
		}
	}
	m.sessions = append(m.sessions, s)
	if err := m.saveSession(len(m.sessions) - 1); err != nil {
		return Session{}, err
	}
	if err := m.store.SetSession(s.ID); err != nil {
		return Session{}, err
	}
	m.log.Debug("Created session", zap.String("id", s.ID), zap.String("name", s.Name))
	return s, nil
}

// resolve finds a session index by id, then by case-insensitive name.
func (m *Manager) resolve(identifier string) (int, error) {
	for i, s := range m.sessions {
		if s.ID == identifier {
			return i, nil
		}
	}
	for i, s := range m.sessions {
		if strings.EqualFold(s.Name, identifier) {
			return i, nil
		}
	}
	return 0, operror.InvalidValue("unknown session %q", identifier)
}

// Switch activates the identified session. Switching to the already-active
// session is a no-op. The outgoing partition is flushed and the incoming one
// loaded by the variable store.
func (m *Manager) Switch(identifier string) error {
	idx, err := m.resolve(identifier)
	if err != nil {
		return err
	}
	if m.sessions[idx].Active {
		return nil
	}
	return m.activate(idx)
}

func (m *Manager) activate(idx int) error {
	for i := range m.sessions {
		if m.sessions[i].Active && i != idx {
			m.sessions[i].Active = false
			if err := m.saveSession(i); err != nil {
				return err
			}
		}
	}
	m.sessions[idx].Active = true
	if err := m.saveSession(idx); err != nil {
		return err
	}
	if err := m.store.SetSession(m.sessions[idx].ID); err != nil {
		return err
	}
	m.log.Debug("Switched session", zap.String("id", m.sessions[idx].ID))
	return nil
}

// Rename changes a session's name.
func (m *Manager) Rename(identifier, newName string) error {
	if newName == "" {
		return operror.InvalidValue("session name cannot be empty")
	}
	idx, err := m.resolve(identifier)
	if err != nil {
		return err
	}
	m.sessions[idx].Name = newName
	return m.saveSession(idx)
}

// Delete removes a session and cascades to its stored partitions; deletion
// is destructive and non-recoverable. The last remaining session cannot be
// deleted. Deleting the active session first switches to the previous
// session by index, or the next when deleting the first.
func (m *Manager) Delete(identifier string) error {
	idx, err := m.resolve(identifier)
	if err != nil {
		return err
	}
	if len(m.sessions) == 1 {
		return operror.InvalidValue("cannot delete the last remaining session")
	}

	if m.sessions[idx].Active {
		adjacent := idx - 1
		if adjacent < 0 {
			adjacent = idx + 1
		}
		if err := m.activate(adjacent); err != nil {
			return err
		}
	}

	id := m.sessions[idx].ID
	if err := m.port.DeleteSession(id); err != nil {
		return err
	}
	m.sessions = append(m.sessions[:idx], m.sessions[idx+1:]...)
	m.log.Debug("Deleted session", zap.String("id", id))
	return nil
}

func (m *Manager) saveSession(idx int) error {
	return m.port.SaveSession(persist.SessionRecord(m.sessions[idx]))
}
