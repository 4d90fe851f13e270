package session

import (
	"log"
)

// Load makes the identified model resident and returns its session.
//
//   - If the requested model is already resident, the existing session is
//     returned unchanged.
//   - If a different model is resident, it is unloaded first: the in-flight
//     generation (if any) is cancelled and its worker joined before handles
//     are released. At most one resident model is an invariant.
//   - If allocation fails, the session entry is discarded and nothing is
//     left resident.
func (m *Manager) Load(id string) (*Session, error) {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	m.mu.RLock()
	resident := m.resident
	m.mu.RUnlock()

	if resident != nil && resident.id == id {
		// Idempotent: same model requested twice.
		return resident, nil
	}

	s, ok := m.lookup(id)
	if !ok {
		return nil, ErrModelNotFound(id)
	}

	if resident != nil {
		log.Printf("session event=switch from=%q to=%q", resident.id, id)
		m.unloadLocked(resident)
	}

	log.Printf("session event=load_start model=%q", id)
	m.publisher.Publish(Event{Name: "load_start", ModelID: id, Fields: map[string]any{}})

	m.mu.Lock()
	m.state = StateLoading
	m.lastErr = ""
	m.mu.Unlock()
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	model, err := m.binding.Load(s.path, m.params)
	if err != nil {
		// Roll back: never leave a half-initialized session registered.
		m.mu.Lock()
		delete(m.sessions, id)
		m.state = StateUnloaded
		m.lastErr = err.Error()
		m.mu.Unlock()
		log.Printf("session event=load_error model=%q err=%v", id, err)
		m.publisher.Publish(Event{Name: "load_error", ModelID: id, Fields: map[string]any{"error": err.Error()}})
		return nil, ErrLoadFailed(id, err)
	}

	s.mu.Lock()
	s.model = model
	s.state = StateReady
	s.usedCells = model.UsedCells()
	s.capacity = model.Capacity()
	s.mu.Unlock()

	m.mu.Lock()
	m.resident = s
	m.state = StateReady
	m.loadsTotal++
	m.mu.Unlock()

	log.Printf("session event=load_ready model=%q", id)
	m.publisher.Publish(Event{Name: "load_ready", ModelID: id, Fields: map[string]any{}})
	return s, nil
}

// Unload releases the resident model's runtime resources, if any. Safe to
// call from a teardown path while a generation is in flight: the worker
// observes cancellation and is joined before any handle is freed.
func (m *Manager) Unload() {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	m.mu.RLock()
	resident := m.resident
	m.mu.RUnlock()
	if resident == nil {
		return
	}
	m.unloadLocked(resident)
}

// unloadLocked tears down s. Caller holds loadMu.
func (m *Manager) unloadLocked(s *Session) {
	log.Printf("session event=unload_start model=%q", s.id)
	m.publisher.Publish(Event{Name: "unload_start", ModelID: s.id, Fields: map[string]any{}})

	// Cancel any in-flight generation and wait for the worker to exit.
	// Freeing handles while the worker is inside a decode call is undefined,
	// so the join must complete first. Marking the session draining before
	// taking the slot closes the window where a submission that wins the
	// slot right after the worker exits could arm a fresh worker against
	// handles we are about to free; such a submission observes draining
	// under s.mu and fails with not-resident instead.
	s.mu.Lock()
	s.draining = true
	if s.genCancel != nil {
		s.genCancel()
	}
	s.mu.Unlock()
	s.genCh <- struct{}{}
	s.wg.Wait()

	s.mu.Lock()
	if s.model != nil {
		if err := s.model.Close(); err != nil {
			log.Printf("session event=unload_close_error model=%q err=%v", s.id, err)
		}
		s.model = nil
	}
	// The conversation log dies with the residency.
	s.turns = nil
	s.formatted = nil
	s.prevLen = 0
	s.usedCells = 0
	s.capacity = 0
	s.state = StateUnloaded
	s.draining = false
	s.mu.Unlock()
	<-s.genCh

	m.mu.Lock()
	if m.resident == s {
		m.resident = nil
	}
	m.state = StateUnloaded
	m.unloadsTotal++
	m.mu.Unlock()

	log.Printf("session event=unload_done model=%q", s.id)
	m.publisher.Publish(Event{Name: "unload_done", ModelID: s.id, Fields: map[string]any{}})
}
