package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteAndLoadLockfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, LockfileFileName)

	lock := NewLockfile(dir, "meow test")
	lock.Generated = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	lock.Packages = []*LockedPackage{
		{Name: "yarn", Version: "v1@abc", Source: "git+https://example.com/yarn.git", Commit: "abc", Checksum: "ff", Path: "/cache/yarn"},
		{Name: "alpha", Source: "path+../alpha", Checksum: "00"},
	}
	if err := WriteLockfile(lock, path); err != nil {
		t.Fatalf("WriteLockfile returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "generated: \"2026-01-02T03:04:05Z\"") && !strings.Contains(string(data), "generated: 2026-01-02T03:04:05Z") {
		t.Fatalf("generated timestamp missing from:\n%s", data)
	}

	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("LoadLockfile returned error: %v", err)
	}
	if len(loaded.Packages) != 2 || loaded.Packages[0].Name != "alpha" || loaded.Packages[1].Name != "yarn" {
		t.Fatalf("packages not sorted by name: %#v", loaded.Packages)
	}
	yarn := loaded.Package("yarn")
	if yarn == nil || yarn.Commit != "abc" || yarn.Path != "/cache/yarn" || yarn.Version != "v1@abc" {
		t.Fatalf("yarn entry = %#v", yarn)
	}
	if !loaded.Generated.Equal(lock.Generated) {
		t.Fatalf("Generated = %v, want %v", loaded.Generated, lock.Generated)
	}
	if loaded.Package("missing") != nil {
		t.Fatalf("expected nil for unknown package")
	}
}

func TestWriteLockfileRejectsDuplicates(t *testing.T) {
	lock := NewLockfile("/tmp", "meow")
	lock.Packages = []*LockedPackage{
		{Name: "a", Source: "path+a"},
		{Name: "a", Source: "path+b"},
	}
	err := WriteLockfile(lock, filepath.Join(t.TempDir(), LockfileFileName))
	if err == nil || !strings.Contains(err.Error(), "duplicate package a") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestLoadLockfileRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), LockfileFileName)
	if err := os.WriteFile(path, []byte("root: /x\npackages: []\nextra: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLockfile(path); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}
