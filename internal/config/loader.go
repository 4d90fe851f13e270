package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Sampler holds token sampling parameters. Zero values mean "unspecified"
// and fall back to the runtime defaults.
type Sampler struct {
	Temperature float32 `json:"temperature" yaml:"temperature" toml:"temperature"`
	TopK        int     `json:"top_k" yaml:"top_k" toml:"top_k"`
	TopP        float32 `json:"top_p" yaml:"top_p" toml:"top_p"`
	MinP        float32 `json:"min_p" yaml:"min_p" toml:"min_p"`
	Seed        uint32  `json:"seed" yaml:"seed" toml:"seed"`
}

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr           string  `json:"addr" yaml:"addr" toml:"addr"`
	ModelsDir      string  `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	DefaultModel   string  `json:"default_model" yaml:"default_model" toml:"default_model"`
	ContextSize    int     `json:"context_size" yaml:"context_size" toml:"context_size"`
	BatchSize      int     `json:"batch_size" yaml:"batch_size" toml:"batch_size"`
	GPULayers      int     `json:"gpu_layers" yaml:"gpu_layers" toml:"gpu_layers"`
	Sampler        Sampler `json:"sampler" yaml:"sampler" toml:"sampler"`
	PollIntervalMS int     `json:"poll_interval_ms" yaml:"poll_interval_ms" toml:"poll_interval_ms"`
	LogLevel       string  `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
