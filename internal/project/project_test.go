package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCreateUsesStemAndTimestamp(t *testing.T) {
	root := t.TempDir()
	c := NewCreator(root)
	c.clock = func() time.Time { return time.Date(2026, 1, 15, 9, 30, 42, 0, time.UTC) }

	dir, err := c.Create("/recordings/morgen_optagelse.wav")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := filepath.Join(root, "morgen_optagelse_20260115_093042")
	if dir != want {
		t.Fatalf("dir = %s, want %s", dir, want)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("folder missing: %v", err)
	}
}

func TestCreateNestsUnderMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deep", "output")
	c := NewCreator(root)
	c.clock = func() time.Time { return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC) }

	dir, err := c.Create("take.mp3")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("folder missing: %v", err)
	}
}
