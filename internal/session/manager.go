package session

import (
	"sync"
	"time"

	"chatd/internal/llm"
	"chatd/internal/registry"
	"chatd/pkg/types"
)

// Manager is the process-wide session registry: the single source of truth
// for which model, if any, is resident, and the only component that creates
// or destroys sessions. One instance is constructed at startup and passed by
// handle; there is no package-level singleton.
type Manager struct {
	mu           sync.RWMutex
	modelsDir    string
	defaultModel string
	sessions     map[string]*Session
	resident     *Session
	state        State
	lastErr      string
	loadsTotal   uint64
	unloadsTotal uint64

	// loadMu serializes Load/Unload/switch so no concurrent pair can
	// interleave residency changes.
	loadMu sync.Mutex

	binding      llm.Binding
	params       llm.Params
	publisher    EventPublisher
	maxWait      time.Duration
	streamBuffer int
	startTime    time.Time
}

// SetModelDirectory stores the directory to scan for models. No side effect
// until ListModels or Load is called.
func (m *Manager) SetModelDirectory(path string) {
	m.mu.Lock()
	m.modelsDir = path
	m.mu.Unlock()
}

// ListModels enumerates candidate model files, sorted by name. It creates a
// session entry for each newly seen model and prunes non-resident entries
// whose backing file disappeared; the resident session is never disturbed.
func (m *Manager) ListModels() ([]types.Model, error) {
	m.mu.RLock()
	dir := m.modelsDir
	m.mu.RUnlock()

	models, err := registry.LoadDir(dir)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	seen := make(map[string]bool, len(models))
	for _, mdl := range models {
		seen[mdl.ID] = true
		if _, ok := m.sessions[mdl.ID]; !ok {
			m.sessions[mdl.ID] = newSession(mdl.ID, mdl.Path)
		}
	}
	for id := range m.sessions {
		if !seen[id] && (m.resident == nil || m.resident.id != id) {
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	return models, nil
}

// Ready reports whether a model is resident and able to generate.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resident != nil
}

// Resident returns the resident session, or nil.
func (m *Manager) Resident() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resident
}

// lookup returns the session for id, scanning the models directory first if
// the id has not been seen yet.
func (m *Manager) lookup(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s, true
	}
	// Not seen yet: a scan may discover a file added after startup.
	if _, err := m.ListModels(); err != nil {
		return nil, false
	}
	m.mu.RLock()
	s, ok = m.sessions[id]
	m.mu.RUnlock()
	return s, ok
}
