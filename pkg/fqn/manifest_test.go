package fqn

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeTemp(t, "manifest.yaml", `
root: myproject
dependencies:
  - module: collections
    url: https://example.com/collections.git
    tag: v1.0.0
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Root != "myproject" {
		t.Fatalf("got root %q", m.Root)
	}
	if len(m.Dependencies) != 1 || m.Dependencies[0].Module != "collections" {
		t.Fatalf("unexpected dependencies: %+v", m.Dependencies)
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	path := writeTemp(t, "manifest.yaml", `
root: myproject
totally_unknown_field: true
dependencies: []
`)
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected strict decoding to reject an unknown field")
	}
}

func TestLoadManifestRequiresRevTagOrBranch(t *testing.T) {
	path := writeTemp(t, "manifest.yaml", `
root: myproject
dependencies:
  - module: collections
    url: https://example.com/collections.git
`)
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected an error when no rev/tag/branch is given")
	}
}
