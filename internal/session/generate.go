package session

import (
	"context"
	"log"
	"strings"
	"time"

	"chatd/internal/llm"
	"chatd/pkg/types"
)

// Chat appends the turn to the conversation, submits the isolated prompt to
// the resident model, and returns the stream of decoded fragments. modelID
// may be empty to target the resident model (or the configured default,
// loading it on demand).
//
// Submissions are serialized per session: a second call while a generation
// is in flight waits up to MaxWait for the worker to finish, then fails with
// a too-busy error. Per-turn failures (format, tokenize) leave the session
// ready; they never tear it down.
func (m *Manager) Chat(ctx context.Context, modelID string, turn types.ChatTurn) (*Stream, error) {
	if turn.Role == "" {
		turn.Role = types.RoleUser
	}
	if !turn.Role.Valid() {
		return nil, ErrFormat("unknown role \"" + string(turn.Role) + "\"")
	}
	if strings.TrimSpace(turn.Text) == "" {
		return nil, ErrFormat("empty turn text")
	}

	s, err := m.resolve(modelID)
	if err != nil {
		return nil, err
	}

	// Acquire the single in-flight generation slot.
	timer := time.NewTimer(m.maxWait)
	defer timer.Stop()
	select {
	case s.genCh <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrTooBusy(s.id)
	}

	release := func() { <-s.genCh }

	s.mu.Lock()
	model := s.model
	if model == nil || s.draining {
		s.mu.Unlock()
		release()
		return nil, ErrNotResident()
	}

	isolated, err := s.isolatePromptLocked(turn)
	if err != nil {
		s.mu.Unlock()
		release()
		return nil, err
	}

	// First submission in a session prepends the runtime's
	// beginning-of-sequence markers.
	isFirst := model.UsedCells() == 0
	toks, err := model.Tokenize(isolated, isFirst, true)
	if err != nil {
		s.mu.Unlock()
		release()
		return nil, ErrTokenize(err)
	}
	if len(toks) == 0 {
		// Nothing to feed the runtime. Drop the turn so the log only holds
		// text the model has actually seen.
		s.turns = s.turns[:len(s.turns)-1]
		s.mu.Unlock()
		release()
		return nil, ErrFormat("turn rendered to zero tokens")
	}

	stream := newStream(m.streamBuffer)
	genCtx, cancel := context.WithCancel(ctx)
	s.genCancel = cancel
	s.state = StateGenerating
	s.wg.Add(1)
	s.mu.Unlock()

	m.mu.Lock()
	m.state = StateGenerating
	m.mu.Unlock()

	m.publisher.Publish(Event{Name: "generate_start", ModelID: s.id, Fields: map[string]any{"prompt_tokens": len(toks)}})
	go m.generate(genCtx, s, model, toks, stream)
	return stream, nil
}

// resolve maps a request's model id to a resident session, loading on demand.
func (m *Manager) resolve(modelID string) (*Session, error) {
	if modelID == "" {
		m.mu.RLock()
		resident := m.resident
		def := m.defaultModel
		m.mu.RUnlock()
		if resident != nil {
			return resident, nil
		}
		if def == "" {
			return nil, ErrNotResident()
		}
		modelID = def
	}
	return m.Load(modelID)
}

// generate is the token loop. It owns the session's runtime handles for the
// duration of the generation; Unload cancels ctx and joins this goroutine
// before any handle is released.
func (m *Manager) generate(ctx context.Context, s *Session, model llm.Model, promptToks []llm.Token, stream *Stream) {
	start := time.Now()
	var reply strings.Builder
	reason := FinishStop
	var genErr error
	fragments := 0

	batch := promptToks
loop:
	for {
		// Cancellation is checked at every iteration boundary.
		if ctx.Err() != nil {
			reason = FinishCanceled
			break
		}

		// The runtime is the sole authority on consumed cells after a
		// decode; re-read rather than tracking locally.
		used := model.UsedCells()
		capacity := model.Capacity()
		s.mu.Lock()
		s.usedCells = used
		s.capacity = capacity
		s.mu.Unlock()

		if used+len(batch) > capacity {
			reason = FinishContextExhausted
			break
		}

		if err := model.Decode(batch); err != nil {
			reason = FinishDecodeError
			genErr = ErrDecode(err)
			break
		}

		tok := model.Sample()
		if model.IsEOG(tok) {
			reason = FinishStop
			break
		}

		piece, err := model.Piece(tok)
		if err != nil {
			reason = FinishDecodeError
			genErr = ErrDecode(err)
			break
		}

		// Backpressure blocks only this side; a cancel still gets through.
		select {
		case stream.ch <- piece:
		case <-ctx.Done():
			reason = FinishCanceled
			break loop
		}
		fragments++
		reply.WriteString(piece)

		batch = []llm.Token{tok}
	}

	// Keep the log and watermark in step with what the runtime consumed,
	// partial replies included.
	s.commitReply(reply.String())

	s.mu.Lock()
	s.state = StateReady
	s.genCancel = nil
	s.mu.Unlock()
	m.mu.Lock()
	if m.state == StateGenerating {
		m.state = StateReady
	}
	if genErr != nil {
		m.lastErr = genErr.Error()
	}
	m.mu.Unlock()

	log.Printf("session event=generate_done model=%q reason=%s fragments=%d dur_ms=%d",
		s.id, reason, fragments, time.Since(start)/time.Millisecond)
	m.publisher.Publish(Event{Name: "generate_done", ModelID: s.id, Fields: map[string]any{
		"reason":    string(reason),
		"fragments": fragments,
		"dur_ms":    int(time.Since(start) / time.Millisecond),
	}})

	stream.finish(reason, genErr)
	<-s.genCh
	s.wg.Done()
}
