package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vibe-resume/internal/domain"
)

func TestSanitizeID(t *testing.T) {
	cases := map[string]string{
		"session-123":      "session123",
		"abc":              "abc",
		"../../etc/passwd": "etcpasswd",
		"Session_42!":      "Session42",
		"日本語abc":           "abc",
		"":                 "",
	}
	for in, want := range cases {
		if got := SanitizeID(in); got != want {
			t.Errorf("SanitizeID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	sess := domain.NewSession("s1")
	sess.Append("user", "make me a resume")
	sess.SetLatex("\\documentclass{article}", "Before: make me a resume")

	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected a session")
	}
	if got.Latex != sess.Latex {
		t.Errorf("latex = %q", got.Latex)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "make me a resume" {
		t.Errorf("messages = %+v", got.Messages)
	}
	// SetLatex on an empty source records no checkpoint.
	if len(got.Checkpoints) != 0 {
		t.Errorf("checkpoints = %+v", got.Checkpoints)
	}
}

func TestFileStoreCheckpointOnReplace(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	sess := domain.NewSession("s1")
	sess.SetLatex("v1", "initial")
	sess.SetLatex("v2", "Before: add skills")
	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, _ := store.Get(ctx, "s1")
	if got.Latex != "v2" {
		t.Errorf("latex = %q", got.Latex)
	}
	if len(got.Checkpoints) != 1 || got.Checkpoints[0].Latex != "v1" {
		t.Errorf("checkpoints = %+v", got.Checkpoints)
	}
}

func TestFileStoreMissingSession(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	got, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Error("missing session must be (nil, nil)")
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	sess := domain.NewSession("s1")
	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := store.Get(ctx, "s1"); got != nil {
		t.Error("deleted session still present")
	}
	// Deleting again is not an error.
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileStoreRejectsCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"latex": 42}`), 0600); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	if _, err := store.Get(context.Background(), "bad"); err == nil {
		t.Error("corrupt record must be reported, not silently used")
	}
}

func TestFileStoreOverwriteIsAtomicReplacement(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	sess := domain.NewSession("s1")
	sess.Latex = "v1"
	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put v1: %v", err)
	}
	sess.Latex = "v2"
	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put v2: %v", err)
	}

	got, _ := store.Get(ctx, "s1")
	if got.Latex != "v2" {
		t.Errorf("latex = %q", got.Latex)
	}
	// No temp files may survive a completed write.
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if e.Name() != "s1.json" {
			t.Errorf("unexpected leftover file: %s", e.Name())
		}
	}
}
