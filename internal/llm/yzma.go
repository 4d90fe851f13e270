//go:build llama

package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hybridgroup/yzma/pkg/llama"

	"chatd/pkg/types"
)

// yzmaBuilt indicates this binary was compiled with real llama.cpp support.
var yzmaBuilt = true

// NewBinding returns the yzma-backed runtime binding. yzma loads llama.cpp
// shared libraries through purego, so no CGO toolchain is required; the
// libraries themselves must be installed (yzma install).
func NewBinding() Binding {
	return yzmaBinding{}
}

type yzmaBinding struct{}

// yzmaModel owns the native handles for one loaded model.
type yzmaModel struct {
	model   llama.Model
	vocab   llama.Vocab
	lctx    llama.Context
	sampler llama.Sampler
}

func (yzmaBinding) Load(path string, p Params) (Model, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("model path is empty")
	}
	p = p.WithDefaults()

	mp := llama.ModelDefaultParams()
	mp.NGpuLayers = int32(p.GPULayers)
	model, err := llama.ModelLoadFromFile(path, mp)
	if err != nil {
		return nil, fmt.Errorf("load weights: %w", err)
	}

	cp := llama.ContextDefaultParams()
	cp.NCtx = uint32(p.ContextSize)
	cp.NBatch = uint32(p.BatchSize)
	lctx, err := llama.InitFromModel(model, cp)
	if err != nil {
		llama.ModelFree(model)
		return nil, fmt.Errorf("init context: %w", err)
	}

	sp := llama.DefaultSamplerParams()
	sp.Temp = p.Sampler.Temperature
	sp.MinP = p.Sampler.MinP
	if p.Sampler.TopK > 0 {
		sp.TopK = p.Sampler.TopK
	}
	if p.Sampler.TopP > 0 {
		sp.TopP = p.Sampler.TopP
	}
	if p.Sampler.Seed != 0 {
		sp.Seed = p.Sampler.Seed
	}
	sampler := llama.NewSampler(model, llama.DefaultSamplers, sp)

	return &yzmaModel{
		model:   model,
		vocab:   llama.ModelGetVocab(model),
		lctx:    lctx,
		sampler: sampler,
	}, nil
}

func (m *yzmaModel) Tokenize(text string, addSpecial, parseSpecial bool) ([]Token, error) {
	toks := llama.Tokenize(m.vocab, text, addSpecial, parseSpecial)
	if len(toks) == 0 && len(text) > 0 {
		return nil, fmt.Errorf("tokenize failed for %d bytes of text", len(text))
	}
	out := make([]Token, len(toks))
	for i, t := range toks {
		out[i] = Token(t)
	}
	return out, nil
}

func (m *yzmaModel) Decode(batch []Token) error {
	toks := make([]llama.Token, len(batch))
	for i, t := range batch {
		toks[i] = llama.Token(t)
	}
	// BatchGetOne returns a stack-allocated batch; no BatchFree.
	b := llama.BatchGetOne(toks)
	if _, err := llama.Decode(m.lctx, b); err != nil {
		return fmt.Errorf("decode batch of %d: %w", len(batch), err)
	}
	return nil
}

func (m *yzmaModel) Sample() Token {
	return Token(llama.SamplerSample(m.sampler, m.lctx, -1))
}

func (m *yzmaModel) IsEOG(tok Token) bool {
	return llama.VocabIsEOG(m.vocab, llama.Token(tok))
}

func (m *yzmaModel) Piece(tok Token) (string, error) {
	buf := make([]byte, 256)
	n := llama.TokenToPiece(m.vocab, llama.Token(tok), buf, 0, true)
	if n < 0 {
		return "", fmt.Errorf("token %d has no piece", tok)
	}
	return string(buf[:n]), nil
}

func (m *yzmaModel) UsedCells() int {
	// Highest occupied position in the sole sequence; -1 when empty.
	mem := llama.GetMemory(m.lctx)
	return int(llama.MemorySeqPosMax(mem, 0)) + 1
}

func (m *yzmaModel) Capacity() int {
	return int(llama.NCtx(m.lctx))
}

func (m *yzmaModel) RenderTemplate(turns []types.ChatTurn, addAssistant bool, buf []byte) (int, error) {
	msgs := make([]llama.ChatMessage, 0, len(turns))
	for _, t := range turns {
		if !t.Role.Valid() {
			return -1, fmt.Errorf("unknown chat role %q", t.Role)
		}
		msgs = append(msgs, llama.NewChatMessage(string(t.Role), t.Text))
	}
	tmpl := llama.ModelChatTemplate(m.model, "")
	n := llama.ChatApplyTemplate(tmpl, msgs, addAssistant, buf)
	return int(n), nil
}

// Close releases handles in dependency order: the sampler references the
// context, the context references the model.
func (m *yzmaModel) Close() error {
	if m.sampler != 0 {
		llama.SamplerFree(m.sampler)
		m.sampler = 0
	}
	if m.lctx != 0 {
		llama.Free(m.lctx)
		m.lctx = 0
	}
	if m.model != 0 {
		llama.ModelFree(m.model)
		m.model = 0
	}
	return nil
}
