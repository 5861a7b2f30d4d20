package fqn

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Loader resolves DependencySpecs into checked-out source trees, caching
// them under a base directory keyed by the resolved commit. This is the
// concrete mechanism behind spec.md §3.1's module registry acquiring
// sources to hand to the (external) parser: it does not parse anything
// itself, it only makes a module's source tree available on disk and
// records what was fetched in a Lockfile.
//
// Grounded on the teacher's cmd/able/deps_fetchers.go ensureGitCheckout:
// same git.PlainClone + ResolveRevision + Worktree.Checkout sequence,
// retargeted at SPy module paths instead of Able package names.
type Loader struct {
	CacheDir string
	Lock     *Lockfile
}

func NewLoader(cacheDir string, lock *Lockfile) *Loader {
	if lock == nil {
		lock = NewLockfile("")
	}
	return &Loader{CacheDir: cacheDir, Lock: lock}
}

// Resolve fetches (or reuses a cached checkout of) the given dependency and
// returns the directory its source tree was checked out into. It also
// records the result in l.Lock.
func (l *Loader) Resolve(spec DependencySpec) (dir string, commit string, err error) {
	revision, descriptor, err := revisionFromSpec(spec)
	if err != nil {
		return "", "", err
	}

	baseDir := filepath.Join(l.CacheDir, sanitizeSegment(spec.Module))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", fmt.Errorf("fqn: loader: %w", err)
	}

	tmpDir, err := os.MkdirTemp(baseDir, "fetch-*")
	if err != nil {
		return "", "", fmt.Errorf("fqn: loader: %w", err)
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", fmt.Errorf("fqn: loader: %w", err)
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{
		URL:               spec.URL,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("fqn: loader: git clone %s: %w", spec.URL, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("fqn: loader: resolve revision %s: %w", revision, err)
	}
	commit = hash.String()

	targetDir := filepath.Join(baseDir, sanitizeSegment(commit))
	if _, statErr := os.Stat(targetDir); statErr == nil {
		_ = os.RemoveAll(tmpDir)
		l.Lock.Put(LockedModule{Module: spec.Module, URL: spec.URL, Commit: commit})
		return targetDir, commit, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("fqn: loader: %w", err)
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("fqn: loader: checkout %s (%s): %w", spec.Module, descriptor, err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("fqn: loader: %w", err)
	}

	l.Lock.Put(LockedModule{Module: spec.Module, URL: spec.URL, Commit: commit})
	return targetDir, commit, nil
}

func revisionFromSpec(spec DependencySpec) (plumbing.Revision, string, error) {
	if spec.Rev != "" {
		return plumbing.Revision(spec.Rev), spec.Rev, nil
	}
	if spec.Tag != "" {
		return plumbing.Revision("refs/tags/" + spec.Tag), spec.Tag, nil
	}
	if spec.Branch != "" {
		return plumbing.Revision("refs/heads/" + spec.Branch), spec.Branch, nil
	}
	return "", "", fmt.Errorf("fqn: loader: dependency %q needs one of rev, tag, branch", spec.Module)
}

func sanitizeSegment(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "_"
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
