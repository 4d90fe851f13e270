package session

import (
	"time"

	"chatd/internal/llm"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultMaxWait      = 30 * time.Second
	defaultStreamBuffer = 64
)

// Config encapsulates all tunables for Manager construction.
type Config struct {
	// ModelsDir is the directory scanned for model files. May also be set
	// later via SetModelDirectory.
	ModelsDir string
	// DefaultModel is used when a chat request omits the model id and
	// nothing is resident.
	DefaultModel string
	// Binding is the model runtime. Required; llm.NewBinding() for the real
	// runtime.
	Binding llm.Binding
	// Runtime holds context-size and sampler parameters passed to Load.
	Runtime llm.Params
	// MaxWait bounds how long a prompt submission waits for the in-flight
	// slot before failing with a too-busy error.
	MaxWait time.Duration
	// StreamBuffer is the fragment channel capacity. The generation worker
	// blocks once the consumer falls this far behind; the consumer never
	// blocks the worker otherwise.
	StreamBuffer int
	// Publisher receives lifecycle events; nil installs a noop publisher.
	Publisher EventPublisher
}

// NewWithConfig constructs a Manager from Config, applying defaults for
// unset fields.
func NewWithConfig(cfg Config) *Manager {
	m := &Manager{
		modelsDir:    cfg.ModelsDir,
		defaultModel: cfg.DefaultModel,
		binding:      cfg.Binding,
		params:       cfg.Runtime.WithDefaults(),
		sessions:     make(map[string]*Session),
		state:        StateUnloaded,
		publisher:    cfg.Publisher,
		maxWait:      cfg.MaxWait,
		streamBuffer: cfg.StreamBuffer,
		startTime:    time.Now(),
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	if m.maxWait <= 0 {
		m.maxWait = defaultMaxWait
	}
	if m.streamBuffer <= 0 {
		m.streamBuffer = defaultStreamBuffer
	}
	return m
}
