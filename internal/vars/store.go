// Package vars implements the scoped variable store: an ordered stack of
// scope frames over a persistent overlay, partitioned by session. Mutations
// target the innermost frame; lookup scans top to bottom and falls back to
// the persistent tier.
package vars

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"mathcli/internal/operror"
	"mathcli/internal/persist"
	"mathcli/internal/value"
)

// Store is the session-partitioned scoped variable store. All mutations are
// serialized behind one mutex: concurrent writers are not supported and a
// scope-stack mutation must never interleave with a durability flush.
type Store struct {
	mu         sync.Mutex
	frames     []map[string]value.Value // index 0 = root; last = innermost
	persistent map[string]value.Value
	sessionID  string
	port       persist.Port
	log        *zap.Logger
}

// NewStore creates a store with a single empty root frame and no session
// loaded. Call SetSession before relying on durability.
func NewStore(port persist.Port, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		frames:     []map[string]value.Value{{}},
		persistent: make(map[string]value.Value),
		port:       port,
		log:        log,
	}
}

// Set writes name into the innermost frame. With persist set, the value is
// additionally promoted to the persistent tier and flushed synchronously.
func (s *Store) Set(name string, v value.Value, persistFlag bool) error {
	if name == "" {
		return operror.InvalidValue("variable name cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames[len(s.frames)-1][name] = v
	if persistFlag {
		s.persistent[name] = v
		return s.flushPersistent()
	}
	return nil
}

// Get scans frames innermost-first, then the persistent tier.
func (s *Store) Get(name string) (value.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, true
		}
	}
	if v, ok := s.persistent[name]; ok {
		return v, true
	}
	return value.Unit(), false
}

// Unset removes name from the innermost frame only. A persistent binding is
// also dropped from the persistent tier and flushed. Unsetting a name that is
// neither in the top frame nor persistent fails VariableNotFound.
func (s *Store) Unset(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	top := s.frames[len(s.frames)-1]
	_, inTop := top[name]
	_, inPersistent := s.persistent[name]
	if !inTop && !inPersistent {
		return operror.VariableNotFound(name)
	}
	delete(top, name)
	if inPersistent {
		delete(s.persistent, name)
		return s.flushPersistent()
	}
	return nil
}

// Persist promotes an already-visible variable into the persistent tier and
// flushes. Fails VariableNotFound if the name resolves nowhere.
func (s *Store) Persist(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			s.persistent[name] = v
			return s.flushPersistent()
		}
	}
	if _, ok := s.persistent[name]; ok {
		return nil // already persistent
	}
	return operror.VariableNotFound(name)
}

// PushScope adds an empty innermost frame.
func (s *Store) PushScope() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, map[string]value.Value{})
}

// PopScope removes the innermost frame. Popping the single root frame is a
// no-op: the stack always keeps at least one frame.
func (s *Store) PopScope() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Depth returns the current number of scope frames.
func (s *Store) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// ClearCurrentScope empties the innermost frame only.
func (s *Store) ClearCurrentScope() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[len(s.frames)-1] = map[string]value.Value{}
}

// ClearScoped resets the scope stack to a single empty frame, leaving the
// persistent tier untouched.
func (s *Store) ClearScoped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = []map[string]value.Value{{}}
}

// ClearAll resets to a single empty frame, empties the persistent tier for
// the active session, and flushes immediately.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearAllLocked()
}

func (s *Store) clearAllLocked() error {
	s.frames = []map[string]value.Value{{}}
	s.persistent = make(map[string]value.Value)
	return s.flushPersistent()
}

// GetAllVariables merges scope frames outer to inner, then the persistent
// tier last.
func (s *Store) GetAllVariables() map[string]value.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allLocked()
}

func (s *Store) allLocked() map[string]value.Value {
	all := make(map[string]value.Value)
	for _, frame := range s.frames {
		for name, v := range frame {
			all[name] = v
		}
	}
	for name, v := range s.persistent {
		all[name] = v
	}
	return all
}

// Names returns all visible variable names, sorted.
func (s *Store) Names() []string {
	all := s.GetAllVariables()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExportVariables snapshots all visible variables rendered through the
// canonical text encoding.
func (s *Store) ExportVariables() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string)
	for name, v := range s.allLocked() {
		out[name] = v.Format()
	}
	return out
}

// ImportVariables loads text-encoded variables into the current innermost
// frame (not persisted). Without merge, all existing state is cleared first.
// Each text value is reparsed as float, then boolean, then raw text.
func (s *Store) ImportVariables(vars map[string]string, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !merge {
		if err := s.clearAllLocked(); err != nil {
			return err
		}
	}
	top := s.frames[len(s.frames)-1]
	for name, text := range vars {
		if name == "" {
			continue
		}
		top[name] = value.ParseText(text)
	}
	return nil
}

// SessionID returns the active session partition id.
func (s *Store) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// SetSession switches the active partition: the outgoing session's full state
// is flushed keyed by its id, then the incoming session's state is loaded
// (or initialized empty if none is stored). No two sessions ever share
// mutable scope state.
func (s *Store) SetSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == s.sessionID {
		return nil
	}
	if s.sessionID != "" {
		if err := s.flushAllLocked(); err != nil {
			return err
		}
	}
	s.sessionID = id
	return s.loadLocked()
}

// Flush writes the full state of the active session to durable storage.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionID == "" {
		return nil
	}
	return s.flushAllLocked()
}

// Serialized partition payloads. Values travel as canonical text: the text
// encoding is the only durability format.

func encodeFrame(frame map[string]value.Value) map[string]string {
	out := make(map[string]string, len(frame))
	for name, v := range frame {
		out[name] = v.Format()
	}
	return out
}

func decodeFrame(in map[string]string) map[string]value.Value {
	out := make(map[string]value.Value, len(in))
	for name, text := range in {
		out[name] = value.ParseText(text)
	}
	return out
}

func (s *Store) flushPersistent() error {
	if s.port == nil || s.sessionID == "" {
		return nil
	}
	payload, err := json.Marshal(encodeFrame(s.persistent))
	if err != nil {
		return fmt.Errorf("failed to encode persistent variables: %w", err)
	}
	if err := s.port.SavePartition(s.sessionID, persist.KindPersistent, payload); err != nil {
		s.log.Error("Persistent variable flush failed", zap.String("session", s.sessionID), zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) flushAllLocked() error {
	if s.port == nil {
		return nil
	}
	frames := make([]map[string]string, len(s.frames))
	for i, frame := range s.frames {
		frames[i] = encodeFrame(frame)
	}
	payload, err := json.Marshal(frames)
	if err != nil {
		return fmt.Errorf("failed to encode scope frames: %w", err)
	}
	if err := s.port.SavePartition(s.sessionID, persist.KindScopes, payload); err != nil {
		s.log.Error("Scope flush failed", zap.String("session", s.sessionID), zap.Error(err))
		return err
	}
	return s.flushPersistent()
}

func (s *Store) loadLocked() error {
	s.frames = []map[string]value.Value{{}}
	s.persistent = make(map[string]value.Value)
	if s.port == nil || s.sessionID == "" {
		return nil
	}

	if payload, err := s.port.LoadPartition(s.sessionID, persist.KindScopes); err == nil {
		var frames []map[string]string
		if err := json.Unmarshal(payload, &frames); err != nil {
			return fmt.Errorf("corrupt scope partition for session %s: %w", s.sessionID, err)
		}
		if len(frames) > 0 {
			s.frames = make([]map[string]value.Value, len(frames))
			for i, frame := range frames {
				s.frames[i] = decodeFrame(frame)
			}
		}
	} else if err != persist.ErrNoPartition {
		return err
	}

	if payload, err := s.port.LoadPartition(s.sessionID, persist.KindPersistent); err == nil {
		var persisted map[string]string
		if err := json.Unmarshal(payload, &persisted); err != nil {
			return fmt.Errorf("corrupt persistent partition for session %s: %w", s.sessionID, err)
		}
		s.persistent = decodeFrame(persisted)
	} else if err != persist.ErrNoPartition {
		return err
	}
	return nil
}
