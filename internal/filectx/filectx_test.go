package filectx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chatd/pkg/types"
)

func TestContentsRendersHeaderBlocks(t *testing.T) {
	s := New()
	s.Add("main.go", "package main\n")
	s.Add("notes.txt", "remember the milk")
	got := s.Contents()
	want := "=== File: main.go ===\npackage main\n\n\n=== File: notes.txt ===\nremember the milk\n\n"
	if got != want {
		t.Fatalf("Contents = %q, want %q", got, want)
	}
}

func TestAddReplacesWithoutReordering(t *testing.T) {
	s := New()
	s.Add("a", "1")
	s.Add("b", "2")
	s.Add("a", "3")
	got := s.Contents()
	if idx := strings.Index(got, "File: a"); idx == -1 || idx > strings.Index(got, "File: b") {
		t.Fatalf("re-added file changed position: %q", got)
	}
	if !strings.Contains(got, "=== File: a ===\n3\n") {
		t.Fatalf("contents not replaced: %q", got)
	}
}

func TestRemoveAndClear(t *testing.T) {
	s := New()
	s.Add("a", "1")
	s.Add("b", "2")
	if !s.Remove("a") {
		t.Fatal("Remove(a) = false, want true")
	}
	if s.Remove("a") {
		t.Fatal("second Remove(a) = true, want false")
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	s.Clear()
	if s.Len() != 0 || s.Contents() != "" {
		t.Fatalf("Clear left Len=%d Contents=%q", s.Len(), s.Contents())
	}
}

func TestNamesSorted(t *testing.T) {
	s := New()
	s.Add("zeta.txt", "")
	s.Add("alpha.txt", "")
	names := s.Names()
	if len(names) != 2 || names[0] != "alpha.txt" || names[1] != "zeta.txt" {
		t.Fatalf("Names = %v", names)
	}
}

func TestAddFileReadsDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	if err := os.WriteFile(path, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := New()
	if err := s.AddFile(path); err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if !strings.Contains(s.Contents(), "=== File: hello.txt ===\nhi\n") {
		t.Fatalf("Contents = %q", s.Contents())
	}

	err := s.AddFile(filepath.Join(dir, "missing.txt"))
	if err == nil || !IsFileRead(err) {
		t.Fatalf("AddFile(missing) err = %v, want file read error", err)
	}
}

func TestAsTurn(t *testing.T) {
	s := New()
	if _, ok := s.AsTurn(); ok {
		t.Fatal("empty set produced a turn")
	}
	s.Add("a", "1")
	turn, ok := s.AsTurn()
	if !ok || turn.Role != types.RoleSystem {
		t.Fatalf("AsTurn = %+v ok=%v", turn, ok)
	}
	if !strings.Contains(turn.Text, "=== File: a ===") {
		t.Fatalf("turn text %q", turn.Text)
	}
}
