package session

import (
	"context"
	"sync"

	"chatd/internal/llm"
	"chatd/pkg/types"
)

// State represents lifecycle state of the manager/sessions.
type State string

const (
	StateUnloaded   State = "unloaded"
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateGenerating State = "generating"
)

// Session is the generation engine for one model: the bound runtime state,
// the conversation log, and the prompt watermark. A Session exists for every
// known model id, but holds runtime handles only while resident.
type Session struct {
	id   string
	path string

	mu    sync.Mutex
	state State
	model llm.Model // nil unless resident

	// Conversation log and prompt formatter state.
	turns     []types.ChatTurn
	formatted []byte
	prevLen   int

	// Cached context accounting, refreshed by the worker each iteration so
	// Status never calls into the runtime concurrently with a decode.
	usedCells int
	capacity  int

	// Single in-flight generation slot and worker join state. draining is
	// set while an unload is tearing the session down; submissions that win
	// the slot during that window must not arm a new worker.
	genCh     chan struct{}
	genCancel context.CancelFunc
	draining  bool
	wg        sync.WaitGroup
}

// ID returns the model identifier this session belongs to.
func (s *Session) ID() string { return s.id }

// Resident reports whether the session currently holds runtime handles.
func (s *Session) Resident() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model != nil
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Turns returns a copy of the conversation log.
func (s *Session) Turns() []types.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ChatTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

func newSession(id, path string) *Session {
	return &Session{
		id:    id,
		path:  path,
		state: StateUnloaded,
		genCh: make(chan struct{}, 1),
	}
}
