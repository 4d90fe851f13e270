package session

import "sync"

// FinishReason describes why a generation stopped.
type FinishReason string

const (
	// FinishStop: the model sampled an end-of-generation marker.
	FinishStop FinishReason = "stop"
	// FinishContextExhausted: the next batch would not fit the context
	// window. A defined stopping condition, not an error; partial output is
	// preserved and no truncation is attempted.
	FinishContextExhausted FinishReason = "context_exhausted"
	// FinishCanceled: the caller cancelled the generation.
	FinishCanceled FinishReason = "canceled"
	// FinishDecodeError: the runtime failed mid-generation. Fragments
	// emitted before the failure are preserved.
	FinishDecodeError FinishReason = "decode_error"
)

// Stream carries decoded text fragments from the generation worker to one
// consumer. Fragments arrive in strict emission order; the channel is closed
// when the generation ends. A stream is not restartable; each generation
// opens a new one.
type Stream struct {
	ch chan string

	mu     sync.Mutex
	reason FinishReason
	err    error
}

func newStream(buffer int) *Stream {
	return &Stream{ch: make(chan string, buffer)}
}

// Recv blocks until the next fragment arrives or the stream closes.
// ok is false once the stream is closed and drained.
func (st *Stream) Recv() (frag string, ok bool) {
	frag, ok = <-st.ch
	return frag, ok
}

// TryRecv polls for a fragment without blocking. closed is true only once
// the stream is closed and fully drained, so a "closed" result is
// distinguishable from "empty".
func (st *Stream) TryRecv() (frag string, ok, closed bool) {
	select {
	case frag, ok = <-st.ch:
		if !ok {
			return "", false, true
		}
		return frag, true, false
	default:
		return "", false, false
	}
}

// FinishReason reports why the generation stopped. Valid once the stream has
// closed; empty while the generation is still running.
func (st *Stream) FinishReason() FinishReason {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.reason
}

// Err returns the typed error behind a decode_error finish, or nil.
func (st *Stream) Err() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.err
}

// finish records the outcome and closes the channel. Must be called exactly
// once, after the last emit.
func (st *Stream) finish(reason FinishReason, err error) {
	st.mu.Lock()
	st.reason = reason
	st.err = err
	st.mu.Unlock()
	close(st.ch)
}
