package fqn

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LockedModule is one resolved entry of a Lockfile: a module path pinned to
// a concrete commit, following the teacher's LockedPackage shape
// (pkg/driver/lockfile.go) with "package name/version" renamed to "module
// path/commit" to match spec.md's FQN-module vocabulary.
type LockedModule struct {
	Module   string
	URL      string
	Commit   string
	Checksum string
}

// Lockfile is the resolved, deterministically re-serializable result of
// resolving a Manifest's dependencies, per spec.md §5's "insertion is
// deterministic and idempotent" extended to the dependency-resolution step.
type Lockfile struct {
	Path    string
	Root    string
	Modules []LockedModule
}

func NewLockfile(root string) *Lockfile {
	return &Lockfile{Root: strings.TrimSpace(root)}
}

type lockfileDisk struct {
	Root    string             `yaml:"root"`
	Modules []lockedModuleDisk `yaml:"modules"`
}

type lockedModuleDisk struct {
	Module   string `yaml:"module"`
	URL      string `yaml:"url"`
	Commit   string `yaml:"commit"`
	Checksum string `yaml:"checksum"`
}

// LoadLockfile parses a lockfile from disk with strict (unknown-field
// rejecting) YAML decoding, exactly as the teacher's LoadLockfile does.
func LoadLockfile(path string) (*Lockfile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw lockfileDisk
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("lockfile: parse %s: %w", abs, err)
	}

	lock := raw.toLockfile()
	lock.Path = abs
	lock.normalize()
	return lock, nil
}

// WriteLockfile serializes the lockfile back to disk in normalized,
// deterministic order.
func WriteLockfile(lock *Lockfile, path string) error {
	if lock == nil {
		return fmt.Errorf("lockfile: nil lockfile")
	}
	if path == "" {
		if lock.Path == "" {
			return fmt.Errorf("lockfile: missing path")
		}
		path = lock.Path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	lock.Path = abs
	lock.normalize()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(lock.toDisk()); err != nil {
		return fmt.Errorf("lockfile: marshal %s: %w", abs, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("lockfile: encoder close: %w", err)
	}
	return os.WriteFile(abs, buf.Bytes(), 0o644)
}

// Put inserts or idempotently updates a module's lock entry by module path.
func (l *Lockfile) Put(m LockedModule) {
	for i := range l.Modules {
		if l.Modules[i].Module == m.Module {
			l.Modules[i] = m
			return
		}
	}
	l.Modules = append(l.Modules, m)
}

func (l *Lockfile) normalize() {
	l.Root = strings.TrimSpace(l.Root)
	sort.SliceStable(l.Modules, func(i, j int) bool {
		return l.Modules[i].Module < l.Modules[j].Module
	})
	for i := range l.Modules {
		l.Modules[i].Module = strings.TrimSpace(l.Modules[i].Module)
		l.Modules[i].URL = strings.TrimSpace(l.Modules[i].URL)
		l.Modules[i].Commit = strings.TrimSpace(l.Modules[i].Commit)
		l.Modules[i].Checksum = strings.TrimSpace(l.Modules[i].Checksum)
	}
}

func (l *Lockfile) toDisk() lockfileDisk {
	mods := make([]lockedModuleDisk, 0, len(l.Modules))
	for _, m := range l.Modules {
		mods = append(mods, lockedModuleDisk{
			Module: m.Module, URL: m.URL, Commit: m.Commit, Checksum: m.Checksum,
		})
	}
	return lockfileDisk{Root: l.Root, Modules: mods}
}

func (d lockfileDisk) toLockfile() *Lockfile {
	lock := &Lockfile{Root: strings.TrimSpace(d.Root)}
	for _, m := range d.Modules {
		lock.Modules = append(lock.Modules, LockedModule{
			Module: strings.TrimSpace(m.Module), URL: strings.TrimSpace(m.URL),
			Commit: strings.TrimSpace(m.Commit), Checksum: strings.TrimSpace(m.Checksum),
		})
	}
	lock.normalize()
	return lock
}
