package session

import (
	"fmt"
	"sync"

	"chatd/internal/llm"
	"chatd/pkg/types"
)

// fakeRender is the deterministic template the fake runtime applies: one
// "R: text\n" line per turn plus an assistant opener when requested. Tests
// use it to compute expected isolated prompts.
func fakeRender(turns []types.ChatTurn, addAssistant bool) string {
	var out string
	for _, t := range turns {
		out += string(t.Role) + ": " + t.Text + "\n"
	}
	if addAssistant {
		out += "assistant: "
	}
	return out
}

// fakeBinding implements llm.Binding and records every runtime call in
// order, so tests can assert residency hand-off and join-before-free.
type fakeBinding struct {
	mu  sync.Mutex
	ops []string

	loadErr error
	// script holds the pieces each loaded model will emit, in order,
	// followed by an end-of-generation marker.
	script []string
	// decodeFailAt makes the Nth decode call fail (1-based; 0 disables).
	decodeFailAt int
	// renderNegative makes template rendering report a negative length.
	renderNegative bool
	// tokenizeErr makes tokenization fail.
	tokenizeErr error
	// tokenizeEmpty makes tokenization succeed with zero tokens.
	tokenizeEmpty bool
	// decodeGate, when non-nil, blocks every decode until a tick arrives.
	decodeGate chan struct{}
}

func (b *fakeBinding) record(op string) {
	b.mu.Lock()
	b.ops = append(b.ops, op)
	b.mu.Unlock()
}

func (b *fakeBinding) opLog() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.ops))
	copy(out, b.ops)
	return out
}

func (b *fakeBinding) Load(path string, p llm.Params) (llm.Model, error) {
	if b.loadErr != nil {
		b.record("loadfail:" + path)
		return nil, b.loadErr
	}
	b.record("load:" + path)
	return &fakeModel{b: b, path: path, capacity: p.ContextSize}, nil
}

// fakeModel is one loaded fake runtime. Token ids index into the binding's
// script; any id past the script is an end-of-generation marker.
type fakeModel struct {
	b    *fakeBinding
	path string

	mu        sync.Mutex
	capacity  int
	used      int
	sampleIdx int
	decodes   int
	closed    bool
}

func (m *fakeModel) Tokenize(text string, addSpecial, parseSpecial bool) ([]llm.Token, error) {
	m.b.record(fmt.Sprintf("tokenize:%v:%s", addSpecial, text))
	if m.b.tokenizeErr != nil {
		return nil, m.b.tokenizeErr
	}
	if m.b.tokenizeEmpty {
		return nil, nil
	}
	// One token per byte keeps cell accounting easy to reason about.
	toks := make([]llm.Token, len(text))
	for i := range toks {
		toks[i] = llm.Token(-1) // prompt tokens are never sampled back
	}
	return toks, nil
}

func (m *fakeModel) Decode(batch []llm.Token) error {
	if m.b.decodeGate != nil {
		<-m.b.decodeGate
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.b.record("decode-after-close:" + m.path)
		return fmt.Errorf("decode after close")
	}
	m.decodes++
	n := m.decodes
	if m.used+len(batch) > m.capacity {
		m.mu.Unlock()
		m.b.record("decode-over-capacity:" + m.path)
		return fmt.Errorf("decode over capacity")
	}
	m.used += len(batch)
	m.mu.Unlock()
	m.b.record("decode")
	if m.b.decodeFailAt > 0 && n == m.b.decodeFailAt {
		return fmt.Errorf("injected decode failure")
	}
	return nil
}

func (m *fakeModel) Sample() llm.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	tok := llm.Token(m.sampleIdx)
	m.sampleIdx++
	return tok
}

func (m *fakeModel) IsEOG(tok llm.Token) bool {
	return int(tok) < 0 || int(tok) >= len(m.b.script)
}

func (m *fakeModel) Piece(tok llm.Token) (string, error) {
	if int(tok) < 0 || int(tok) >= len(m.b.script) {
		return "", fmt.Errorf("token %d has no piece", tok)
	}
	return m.b.script[int(tok)], nil
}

func (m *fakeModel) UsedCells() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.used
}

func (m *fakeModel) Capacity() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.capacity
}

func (m *fakeModel) RenderTemplate(turns []types.ChatTurn, addAssistant bool, buf []byte) (int, error) {
	m.b.record(fmt.Sprintf("render:%v:%d", addAssistant, len(buf)))
	if m.b.renderNegative {
		return -1, nil
	}
	out := fakeRender(turns, addAssistant)
	if len(out) <= len(buf) {
		copy(buf, out)
	}
	return len(out), nil
}

func (m *fakeModel) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.b.record("close:" + m.path)
	return nil
}
