// Package registry enumerates candidate model files on disk. It never loads
// anything; loading is the session manager's job.
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chatd/pkg/types"
)

// ModelExt is the recognized model file extension. Files without it are
// ignored during a scan.
const ModelExt = ".gguf"

// ErrDirectoryNotSet is returned when a scan is requested before a models
// directory has been configured.
var ErrDirectoryNotSet = errors.New("models directory not set")

// ErrDirectoryNotFound is returned when the configured directory does not
// exist.
var ErrDirectoryNotFound = errors.New("models directory not found")

// LoadDir scans dir for model files and builds descriptors from filenames.
// ID is the full filename (extension included); Path is absolute. Results
// are sorted by name.
func LoadDir(dir string) ([]types.Model, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrDirectoryNotSet
	}
	base, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, abs)
		}
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.Model
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ModelExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
		models = append(models, types.Model{
			ID:        name,
			Name:      name,
			Path:      filepath.Join(abs, name),
			SizeBytes: info.Size(),
			Size:      HumanSizeGB(info.Size()),
		})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models, nil
}

// HumanSizeGB renders a byte count as decimal gigabytes with two decimals,
// matching the size column shown next to each model name.
func HumanSizeGB(bytes int64) string {
	return fmt.Sprintf("%.2f", float64(bytes)/1e9)
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle paths like ~/models/llm
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
