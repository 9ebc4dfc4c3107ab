package sandbox

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newSandbox(t *testing.T, dir string) *Sandbox {
	t.Helper()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New(%q) failed: %v", dir, err)
	}
	return s
}

func TestResolve_Relative(t *testing.T) {
	dir := t.TempDir()
	s := newSandbox(t, dir)

	resolved, err := s.Resolve("notes/biology.md")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := filepath.Join(s.Root(), "notes", "biology.md")
	if resolved != want {
		t.Errorf("Resolve = %q, want %q", resolved, want)
	}
}

func TestResolve_Absolute(t *testing.T) {
	dir := t.TempDir()
	s := newSandbox(t, dir)

	target := filepath.Join(s.Root(), "inside.txt")
	resolved, err := s.Resolve(target)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved != target {
		t.Errorf("Resolve = %q, want %q", resolved, target)
	}
}

func TestResolve_BaseItself(t *testing.T) {
	dir := t.TempDir()
	s := newSandbox(t, dir)

	resolved, err := s.Resolve(".")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved != s.Root() {
		t.Errorf("Resolve = %q, want root %q", resolved, s.Root())
	}
}

func TestResolve_Traversal(t *testing.T) {
	dir := t.TempDir()
	s := newSandbox(t, dir)

	cases := []string{
		"../../../etc/passwd",
		"subdir/../../etc/passwd",
		"..",
		"/etc/passwd",
	}

	for _, candidate := range cases {
		_, err := s.Resolve(candidate)
		if err == nil {
			t.Errorf("Resolve(%q) succeeded, want traversal error", candidate)
			continue
		}
		var terr *TraversalError
		if !errors.As(err, &terr) {
			t.Errorf("Resolve(%q) error = %v, want *TraversalError", candidate, err)
			continue
		}
		if terr.Candidate != candidate {
			t.Errorf("TraversalError.Candidate = %q, want original input %q", terr.Candidate, candidate)
		}
		if strings.Contains(terr.Error(), s.Root()) {
			t.Errorf("error text %q leaks resolved base directory", terr.Error())
		}
	}
}

func TestResolve_InternalDotDot(t *testing.T) {
	dir := t.TempDir()
	s := newSandbox(t, dir)

	// ".." that stays inside the base is fine.
	resolved, err := s.Resolve("subdir/../file.txt")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := filepath.Join(s.Root(), "file.txt")
	if resolved != want {
		t.Errorf("Resolve = %q, want %q", resolved, want)
	}
}

func TestResolve_SymlinkEscape(t *testing.T) {
	outside := t.TempDir()
	dir := t.TempDir()
	link := filepath.Join(dir, "escape")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	s := newSandbox(t, dir)

	_, err := s.Resolve("escape/secret.txt")
	var terr *TraversalError
	if !errors.As(err, &terr) {
		t.Fatalf("Resolve through escaping symlink = %v, want *TraversalError", err)
	}
}

func TestResolve_DanglingSymlinkEscape(t *testing.T) {
	outside := t.TempDir()
	dir := t.TempDir()

	// The link target does not exist yet, so a write through the link
	// would create it outside the base directory.
	link := filepath.Join(dir, "escape.txt")
	if err := os.Symlink(filepath.Join(outside, "leaked.txt"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	s := newSandbox(t, dir)

	_, err := s.Resolve("escape.txt")
	var terr *TraversalError
	if !errors.As(err, &terr) {
		t.Fatalf("Resolve through dangling symlink = %v, want *TraversalError", err)
	}
	if terr.Candidate != "escape.txt" {
		t.Errorf("TraversalError.Candidate = %q, want original input", terr.Candidate)
	}
}

func TestResolve_DanglingSymlinkInside(t *testing.T) {
	dir := t.TempDir()

	// A dangling link whose target stays inside the base is still valid.
	link := filepath.Join(dir, "alias.txt")
	if err := os.Symlink(filepath.Join(dir, "real.txt"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	s := newSandbox(t, dir)

	resolved, err := s.Resolve("alias.txt")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := filepath.Join(s.Root(), "real.txt")
	if resolved != want {
		t.Errorf("Resolve = %q, want link target %q", resolved, want)
	}
}

func TestResolve_DanglingSymlinkUnderParent(t *testing.T) {
	outside := t.TempDir()
	dir := t.TempDir()

	// A path whose ancestor is a dangling link pointing outside must be
	// rejected even though no component of it exists.
	link := filepath.Join(dir, "docs")
	if err := os.Symlink(filepath.Join(outside, "gone"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	s := newSandbox(t, dir)

	_, err := s.Resolve("docs/new.txt")
	var terr *TraversalError
	if !errors.As(err, &terr) {
		t.Fatalf("Resolve under dangling symlink = %v, want *TraversalError", err)
	}
}

func TestResolve_MissingTarget(t *testing.T) {
	dir := t.TempDir()
	s := newSandbox(t, dir)

	// Deeply nested path that does not exist yet must still resolve.
	resolved, err := s.Resolve("a/b/c/new.txt")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !strings.HasPrefix(resolved, s.Root()) {
		t.Errorf("Resolve = %q, escapes root %q", resolved, s.Root())
	}
}

func TestResolve_Empty(t *testing.T) {
	dir := t.TempDir()
	s := newSandbox(t, dir)

	if _, err := s.Resolve(""); err == nil {
		t.Error("Resolve(\"\") succeeded, want error")
	}
}
