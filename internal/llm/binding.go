// Package llm defines the narrow interface the session core uses to talk to
// a model runtime. The numeric inference kernels live behind this boundary;
// the core never reimplements them.
package llm

import (
	"errors"

	"chatd/pkg/types"
)

// ErrNotBuilt is returned for every load attempt in binaries compiled
// without the native runtime. Callers match it with errors.Is regardless of
// build tags.
var ErrNotBuilt = errors.New("llama runtime not built (missing 'llama' build tag)")

// Token is one vocabulary entry id as produced by the runtime tokenizer.
type Token int32

// SamplerParams configures the sampler chain attached to a loaded model.
type SamplerParams struct {
	Temperature float32
	TopK        int32
	TopP        float32
	MinP        float32
	Seed        uint32
}

// Params captures everything needed to load a model and build its context.
type Params struct {
	// ContextSize is the context window capacity in tokens.
	ContextSize int
	// BatchSize is the maximum decode batch; defaults to the context size.
	BatchSize int
	// GPULayers is the number of layers to offload; 0 keeps everything on CPU.
	GPULayers int
	Sampler   SamplerParams
}

const (
	DefaultContextSize = 2048
	DefaultTemperature = float32(0.8)
	DefaultMinP        = float32(0.05)
)

// WithDefaults returns a copy of p with unset fields replaced by defaults.
func (p Params) WithDefaults() Params {
	if p.ContextSize <= 0 {
		p.ContextSize = DefaultContextSize
	}
	if p.BatchSize <= 0 {
		p.BatchSize = p.ContextSize
	}
	if p.Sampler.Temperature <= 0 {
		p.Sampler.Temperature = DefaultTemperature
	}
	if p.Sampler.MinP <= 0 {
		p.Sampler.MinP = DefaultMinP
	}
	return p
}

// Built reports whether this binary carries the real llama.cpp runtime.
func Built() bool { return yzmaBuilt }

// Binding is the runtime factory. Load reads weights from disk and returns a
// live Model, or an error when the weights, context, or sampler cannot be
// allocated. Implementations must not leave partial allocations behind on
// failure.
type Binding interface {
	Load(path string, p Params) (Model, error)
}

// Model is the resident state of one loaded model. Calls are not
// goroutine-safe; the session core serializes access. Decode and Sample may
// block for CPU-bound work.
type Model interface {
	// Tokenize converts text to tokens. addSpecial prepends the runtime's
	// beginning-of-sequence markers (first submission only); parseSpecial
	// lets the tokenizer recognize special token text.
	Tokenize(text string, addSpecial, parseSpecial bool) ([]Token, error)
	// Decode feeds a batch of tokens to the model and advances its state.
	Decode(batch []Token) error
	// Sample draws the next token from the post-decode state.
	Sample() Token
	// IsEOG reports whether tok is an end-of-generation marker.
	IsEOG(tok Token) bool
	// Piece converts a sampled token to its text, possibly multi-byte.
	Piece(tok Token) (string, error)
	// UsedCells is the runtime's own count of consumed context cells. The
	// runtime is the sole authority on this after a decode; callers must
	// re-read it rather than track it locally.
	UsedCells() int
	// Capacity is the context window capacity in tokens.
	Capacity() int
	// RenderTemplate renders the full turn log through the model's chat
	// template into buf, returning the rendered length. addAssistant appends
	// the template's assistant-response opener; rendering without it yields
	// the watermark length after a completed reply. A length larger than
	// len(buf) means the caller must grow buf and retry; a negative length
	// means the template could not be applied.
	RenderTemplate(turns []types.ChatTurn, addAssistant bool, buf []byte) (int, error)
	// Close releases the sampler, context, and model weights, in that order.
	Close() error
}
