package latex

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCleanBefore(t *testing.T) {
	root := t.TempDir()

	oldDir := filepath.Join(root, "old-job")
	newDir := filepath.Join(root, "new-job")
	for _, d := range []string{oldDir, newDir} {
		if err := os.MkdirAll(d, 0750); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(oldDir, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	// Loose files at the root are never touched.
	if err := os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0600); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	removed, err := CleanBefore(root, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("CleanBefore: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(oldDir); !os.IsNotExist(err) {
		t.Error("stale job dir survived")
	}
	if _, err := os.Stat(newDir); err != nil {
		t.Error("fresh job dir was removed")
	}
	if _, err := os.Stat(filepath.Join(root, "stray.txt")); err != nil {
		t.Error("non-directory entry was removed")
	}
}
