package fqn

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DependencySpec names one external module this program depends on, and how
// to locate its source: a git URL pinned to a rev, tag, or branch. This is
// the input side of module resolution (spec.md §3.1's "module registry"
// needs source to hand to the external parser); the resolved result is
// recorded in a Lockfile.
type DependencySpec struct {
	Module string // the SPy module path this dependency provides, e.g. "collections"
	URL    string
	Rev    string
	Tag    string
	Branch string
}

// Manifest is the YAML-decoded dependency declaration file, grounded on the
// teacher's pkg/driver/lockfile.go strict-decoding idiom (gopkg.in/yaml.v3,
// KnownFields(true)) applied to dependency declarations instead of resolved
// lock entries.
type Manifest struct {
	Root         string
	Dependencies []DependencySpec
}

type manifestDisk struct {
	Root         string                   `yaml:"root"`
	Dependencies []manifestDependencyDisk `yaml:"dependencies"`
}

type manifestDependencyDisk struct {
	Module string `yaml:"module"`
	URL    string `yaml:"url"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
}

// LoadManifest reads and strictly decodes a manifest file from disk.
func LoadManifest(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", abs, err)
	}
	defer f.Close()

	var raw manifestDisk
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", abs, err)
	}

	m := &Manifest{Root: strings.TrimSpace(raw.Root)}
	for _, d := range raw.Dependencies {
		spec := DependencySpec{
			Module: strings.TrimSpace(d.Module),
			URL:    strings.TrimSpace(d.URL),
			Rev:    strings.TrimSpace(d.Rev),
			Tag:    strings.TrimSpace(d.Tag),
			Branch: strings.TrimSpace(d.Branch),
		}
		if spec.Module == "" {
			return nil, fmt.Errorf("manifest: %s: dependency missing module name", abs)
		}
		if spec.URL == "" {
			return nil, fmt.Errorf("manifest: %s: dependency %q missing url", abs, spec.Module)
		}
		if spec.Rev == "" && spec.Tag == "" && spec.Branch == "" {
			return nil, fmt.Errorf("manifest: %s: dependency %q needs one of rev, tag, branch", abs, spec.Module)
		}
		m.Dependencies = append(m.Dependencies, spec)
	}
	return m, nil
}
