// Package sandbox confines file access to a base directory.
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TraversalError reports a candidate path that escapes the base directory.
// It carries the caller's original input, never the resolved path.
type TraversalError struct {
	Candidate string
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("path %s is outside the allowed directory", e.Candidate)
}

// Sandbox validates candidate paths against a base directory. It performs
// no filesystem mutation and does not require targets to exist.
type Sandbox struct {
	root string
}

// New creates a sandbox rooted at dir. The root must exist; it is resolved
// to an absolute, symlink-free path once up front.
func New(dir string) (*Sandbox, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve base directory: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve base directory: %w", err)
	}
	return &Sandbox{root: resolved}, nil
}

// Root returns the resolved base directory.
func (s *Sandbox) Root() string {
	return s.root
}

// Resolve normalizes candidate and verifies it stays within the base
// directory. Absolute candidates are resolved directly; relative ones are
// joined to the root first. The containment check runs on the fully
// resolved path, after symlink and ".." collapsing, so inputs like
// "subdir/../../etc/passwd" are caught.
func (s *Sandbox) Resolve(candidate string) (string, error) {
	if strings.TrimSpace(candidate) == "" {
		return "", fmt.Errorf("path is empty")
	}

	path := candidate
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	path = filepath.Clean(path)

	resolved, err := evalExisting(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	if !s.contains(resolved) {
		return "", &TraversalError{Candidate: candidate}
	}
	return resolved, nil
}

func (s *Sandbox) contains(resolved string) bool {
	if resolved == s.root {
		return true
	}
	return strings.HasPrefix(resolved, s.root+string(filepath.Separator))
}

// evalExisting resolves symlinks for a path that may not exist yet by
// resolving the deepest existing ancestor and re-joining the remainder.
// A dangling symlink also reports not-exist from EvalSymlinks but must
// still be followed; otherwise the unresolved link name would pass the
// containment check while writes through it land at the link target.
func evalExisting(path string) (string, error) {
	suffix := ""
	cur := path
	for {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(resolved, suffix), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}

		if fi, lerr := os.Lstat(cur); lerr == nil && fi.Mode()&os.ModeSymlink != 0 {
			target, rerr := os.Readlink(cur)
			if rerr != nil {
				return "", rerr
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(cur), target)
			}
			cur = filepath.Clean(target)
			continue
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", err
		}
		suffix = filepath.Join(filepath.Base(cur), suffix)
		cur = parent
	}
}
