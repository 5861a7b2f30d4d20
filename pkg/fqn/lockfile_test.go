package fqn

import (
	"path/filepath"
	"testing"
)

func TestLockfileRoundTrip(t *testing.T) {
	lock := NewLockfile("myproject")
	lock.Put(LockedModule{Module: "collections", URL: "https://example.com/collections.git", Commit: "abc123"})
	lock.Put(LockedModule{Module: "builtins", URL: "https://example.com/builtins.git", Commit: "def456"})

	path := filepath.Join(t.TempDir(), "spy.lock")
	if err := WriteLockfile(lock, path); err != nil {
		t.Fatalf("WriteLockfile: %v", err)
	}

	got, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("LoadLockfile: %v", err)
	}
	if got.Root != "myproject" {
		t.Fatalf("got root %q", got.Root)
	}
	if len(got.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(got.Modules))
	}
	// normalize() sorts by module name.
	if got.Modules[0].Module != "builtins" || got.Modules[1].Module != "collections" {
		t.Fatalf("unexpected module order: %+v", got.Modules)
	}
}

func TestLockfilePutIsIdempotentByModule(t *testing.T) {
	lock := NewLockfile("myproject")
	lock.Put(LockedModule{Module: "collections", Commit: "abc123"})
	lock.Put(LockedModule{Module: "collections", Commit: "def456"})
	if len(lock.Modules) != 1 {
		t.Fatalf("expected Put to update in place, got %d entries", len(lock.Modules))
	}
	if lock.Modules[0].Commit != "def456" {
		t.Fatalf("expected updated commit, got %q", lock.Modules[0].Commit)
	}
}
