package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSplitCSV(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"a,,c", []string{"a", "c"}},
		{"", nil},
	}
	for _, c := range cases {
		got := splitCSV(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%q -> %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestResolveConfigMergesFileAndFlags(t *testing.T) {
	d := t.TempDir()
	path := filepath.Join(d, "cfg.yaml")
	content := "models_dir: /from/file\ndefault_model: file-model\ncontext_size: 4096\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	root := buildRootCmd()
	serve, _, err := root.Find([]string{"serve"})
	if err != nil {
		t.Fatalf("find serve: %v", err)
	}
	if err := serve.ParseFlags([]string{"--config", path, "--models-dir", "/override"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := resolveConfig(serve)
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.ModelsDir != "/override" {
		t.Fatalf("models dir = %q, want flag override", cfg.ModelsDir)
	}
	if cfg.DefaultModel != "file-model" || cfg.ContextSize != 4096 {
		t.Fatalf("file values lost: %+v", cfg)
	}
}
