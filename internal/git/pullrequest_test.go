package git

import (
	"os"
	"path/filepath"
	"testing"
)

// fakeGh installs a stub gh executable as the only binary on PATH.
func fakeGh(t *testing.T, script string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "gh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755); err != nil {
		t.Fatalf("write fake gh: %v", err)
	}
	t.Setenv("PATH", dir)
}

func TestPRMap(t *testing.T) {
	fakeGh(t, `echo '[{"headRefName":"feature","number":42},{"headRefName":"fix/crash","number":7}]'`)

	prs := PRMap()
	if len(prs) != 2 {
		t.Fatalf("got %d entries, want 2", len(prs))
	}
	if prs["feature"] != 42 {
		t.Errorf("feature = %d, want 42", prs["feature"])
	}
	if prs["fix/crash"] != 7 {
		t.Errorf("fix/crash = %d, want 7", prs["fix/crash"])
	}
}

func TestPRMap_MissingGh(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if prs := PRMap(); len(prs) != 0 {
		t.Errorf("got %d entries without gh installed, want none", len(prs))
	}
}

func TestPRMap_GhFails(t *testing.T) {
	fakeGh(t, "echo 'gh: Not Found (HTTP 404)' >&2\nexit 1")

	if prs := PRMap(); len(prs) != 0 {
		t.Errorf("got %d entries from a failing gh, want none", len(prs))
	}
}

func TestPRMap_BadOutput(t *testing.T) {
	fakeGh(t, "echo 'this is not json'")

	if prs := PRMap(); len(prs) != 0 {
		t.Errorf("got %d entries from unparsable output, want none", len(prs))
	}
}
