package session

import (
	"time"

	"chatd/pkg/types"
)

// Snapshot is a read-only projection of the manager state.
type Snapshot struct {
	State         State
	ResidentModel string
	Err           string
}

// Snapshot returns a read-only view of the manager state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := Snapshot{State: m.state, Err: m.lastErr}
	if m.resident != nil {
		snap.ResidentModel = m.resident.id
	}
	return snap
}

// Status builds a detailed status response for /status. Context accounting
// comes from the worker's cached reads, never from a live runtime call that
// could race an in-progress decode.
func (m *Manager) Status() types.StatusResponse {
	m.mu.RLock()
	resp := types.StatusResponse{
		State:          string(m.state),
		LastError:      m.lastErr,
		UptimeSeconds:  int64(time.Since(m.startTime) / time.Second),
		ServerTimeUnix: time.Now().Unix(),
		LoadsTotal:     m.loadsTotal,
		UnloadsTotal:   m.unloadsTotal,
	}
	resident := m.resident
	m.mu.RUnlock()

	if resident != nil {
		resident.mu.Lock()
		resp.ResidentModel = resident.id
		resp.ContextUsed = resident.usedCells
		resp.ContextCapacity = resident.capacity
		resp.Turns = len(resident.turns)
		resp.Generating = resident.state == StateGenerating
		resident.mu.Unlock()
	}
	return resp
}
