// Package filectx collects named file contents to be injected into a
// conversation as a system turn. Files are rendered in insertion order,
// each under a "=== File: name ===" header.
package filectx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"chatd/pkg/types"
)

type errFileRead struct {
	path string
	err  error
}

func (e *errFileRead) Error() string {
	return fmt.Sprintf("file context: read %s: %v", e.path, e.err)
}

func (e *errFileRead) Unwrap() error { return e.err }

// ErrFileRead wraps a failure to read a file being added to the set.
func ErrFileRead(path string, err error) error { return &errFileRead{path: path, err: err} }

// IsFileRead reports whether err came from ErrFileRead.
func IsFileRead(err error) bool {
	var e *errFileRead
	return errors.As(err, &e)
}

// Set holds file contents keyed by display name. Safe for concurrent use.
type Set struct {
	mu    sync.Mutex
	order []string
	files map[string]string
}

// New returns an empty file-context set.
func New() *Set {
	return &Set{files: make(map[string]string)}
}

// AddFile reads path from disk and stores its contents under the file's
// base name. Re-adding a name replaces its contents without changing its
// position.
func (s *Set) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ErrFileRead(path, err)
	}
	s.Add(filepath.Base(path), string(data))
	return nil
}

// Add stores contents under name.
func (s *Set) Add(name, contents string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[name]; !ok {
		s.order = append(s.order, name)
	}
	s.files[name] = contents
}

// Remove drops name from the set. Returns whether it was present.
func (s *Set) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[name]; !ok {
		return false
	}
	delete(s.files, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Clear empties the set.
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.files = make(map[string]string)
}

// Len returns the number of files in the set.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Names returns the file names sorted alphabetically.
func (s *Set) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.order))
	copy(names, s.order)
	sort.Strings(names)
	return names
}

// Contents renders every file as a header block in insertion order.
func (s *Set) Contents() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	for _, name := range s.order {
		fmt.Fprintf(&b, "=== File: %s ===\n%s\n\n", name, s.files[name])
	}
	return b.String()
}

// AsTurn wraps the rendered contents in a system turn, or returns ok=false
// when the set is empty.
func (s *Set) AsTurn() (types.ChatTurn, bool) {
	text := s.Contents()
	if text == "" {
		return types.ChatTurn{}, false
	}
	return types.ChatTurn{Role: types.RoleSystem, Text: text}, true
}
