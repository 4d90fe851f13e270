//go:build !llama

package llm

import (
	"errors"
	"testing"
)

func TestStubBindingRefusesLoad(t *testing.T) {
	if Built() {
		t.Fatal("expected Built() false without the native runtime")
	}
	_, err := NewBinding().Load("/tmp/x.gguf", Params{})
	if !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("expected ErrNotBuilt, got %v", err)
	}
}

func TestParamsWithDefaults(t *testing.T) {
	p := Params{}.WithDefaults()
	if p.ContextSize != DefaultContextSize || p.BatchSize != p.ContextSize {
		t.Fatalf("unexpected context/batch defaults: %+v", p)
	}
	if p.Sampler.Temperature != DefaultTemperature || p.Sampler.MinP != DefaultMinP {
		t.Fatalf("unexpected sampler defaults: %+v", p.Sampler)
	}

	p = Params{ContextSize: 512, Sampler: SamplerParams{Temperature: 0.3}}.WithDefaults()
	if p.ContextSize != 512 || p.BatchSize != 512 || p.Sampler.Temperature != 0.3 {
		t.Fatalf("explicit values overwritten: %+v", p)
	}
}
