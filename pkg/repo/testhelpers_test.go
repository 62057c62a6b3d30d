package repo

import (
	"os"
	"path/filepath"
	"testing"
)

// initRepoWithFile creates a temp repo, writes a file, and stages it.
func initRepoWithFile(t *testing.T, name string, content []byte) *Repo {
	t.Helper()
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	parent := filepath.Dir(filepath.Join(dir, name))
	if err := os.MkdirAll(parent, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	if err := r.Add([]string{name}); err != nil {
		t.Fatalf("Add(%s): %v", name, err)
	}
	return r
}

func writeFile(t *testing.T, r *Repo, name string, content []byte) {
	t.Helper()
	absPath := filepath.Join(r.RootDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(absPath, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func readFile(t *testing.T, r *Repo, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.RootDir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return data
}

func removeWorkingFile(t *testing.T, r *Repo, name string) error {
	t.Helper()
	return os.Remove(filepath.Join(r.RootDir, filepath.FromSlash(name)))
}

// installRejectingHook writes an executable hook at <metaDir>/hooks/<name>
// that always exits 1, for testing that a vetoing hook aborts the operation.
func installRejectingHook(t *testing.T, r *Repo, name string) {
	t.Helper()
	path := filepath.Join(r.MetaDir, "hooks", name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("install hook %s: %v", name, err)
	}
}
