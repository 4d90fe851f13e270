package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", `addr: :9999
models_dir: /tmp/models
default_model: m1
context_size: 4096
gpu_layers: 20
sampler:
  temperature: 0.6
  min_p: 0.1
poll_interval_ms: 10
log_level: debug
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.ModelsDir != "/tmp/models" || cfg.DefaultModel != "m1" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.ContextSize != 4096 || cfg.GPULayers != 20 || cfg.PollIntervalMS != 10 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Sampler.Temperature != 0.6 || cfg.Sampler.MinP != 0.1 {
		t.Fatalf("unexpected sampler: %+v", cfg.Sampler)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","models_dir":"/m","default_model":"m2","context_size":2048,"sampler":{"top_k":40,"seed":7}}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.ModelsDir != "/m" || cfg.DefaultModel != "m2" || cfg.ContextSize != 2048 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Sampler.TopK != 40 || cfg.Sampler.Seed != 7 {
		t.Fatalf("unexpected sampler: %+v", cfg.Sampler)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nmodels_dir=\"/x\"\ndefault_model=\"m3\"\nbatch_size=512\n[sampler]\ntop_p=0.9\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.ModelsDir != "/x" || cfg.DefaultModel != "m3" || cfg.BatchSize != 512 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Sampler.TopP != 0.9 {
		t.Fatalf("unexpected sampler: %+v", cfg.Sampler)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	if _, err := Load("/definitely/not/a/real/file-12345.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestLoadInvalidPayloads(t *testing.T) {
	d := t.TempDir()
	bad := []struct {
		name, content string
	}{
		{"bad.yaml", "addr: :8080\n: broken\n"},
		{"bad.json", `{ "addr": ":8080", "models_dir": }`},
		{"bad.toml", "addr=:8080\nmodels_dir\n"},
	}
	for _, tc := range bad {
		p := writeTempFile(t, d, tc.name, tc.content)
		if _, err := Load(p); err == nil {
			t.Fatalf("%s: expected unmarshal error", tc.name)
		}
	}
}
