//go:build !llama

package llm

// This file provides a stub binding compiled when the 'llama' build tag is
// NOT set, keeping default builds and CI free of native library requirements.
// The real binding lives in yzma.go (tagged 'llama').

// yzmaBuilt indicates this binary was compiled with real llama.cpp support.
var yzmaBuilt = false

// NewBinding returns a binding that refuses to load models. This avoids any
// mocked inference behavior in binaries built without the native runtime.
func NewBinding() Binding {
	return stubBinding{}
}

type stubBinding struct{}

func (stubBinding) Load(path string, p Params) (Model, error) {
	return nil, ErrNotBuilt
}
