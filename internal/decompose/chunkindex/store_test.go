package chunkindex

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"psddiff/internal/decompose/manifest"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected an error opening with an empty path")
	}
}

func TestRecordAndForgetManifest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.RecordManifest(ctx, "a.psd.decomposed", []string{"h1", "h2"}); err != nil {
		t.Fatalf("RecordManifest: %v", err)
	}
	n, err := s.RefCount(ctx, "h1")
	if err != nil {
		t.Fatalf("RefCount: %v", err)
	}
	if n != 1 {
		t.Errorf("RefCount(h1) = %d, want 1", n)
	}

	if err := s.ForgetManifest(ctx, "a.psd.decomposed"); err != nil {
		t.Fatalf("ForgetManifest: %v", err)
	}
	n, err = s.RefCount(ctx, "h1")
	if err != nil {
		t.Fatalf("RefCount: %v", err)
	}
	if n != 0 {
		t.Errorf("RefCount(h1) after ForgetManifest = %d, want 0", n)
	}
}

func TestRecordManifestReplacesPreviousSet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.RecordManifest(ctx, "m", []string{"h1", "h2"}); err != nil {
		t.Fatalf("RecordManifest: %v", err)
	}
	if err := s.RecordManifest(ctx, "m", []string{"h3"}); err != nil {
		t.Fatalf("RecordManifest (second): %v", err)
	}
	if n, _ := s.RefCount(ctx, "h1"); n != 0 {
		t.Errorf("stale reference h1 survived re-recording: RefCount = %d", n)
	}
	if n, _ := s.RefCount(ctx, "h3"); n != 1 {
		t.Errorf("RefCount(h3) = %d, want 1", n)
	}
}

func TestUnreferenced(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.RecordManifest(ctx, "m", []string{"kept"}); err != nil {
		t.Fatalf("RecordManifest: %v", err)
	}
	garbage, err := s.Unreferenced(ctx, []string{"kept", "orphan"})
	if err != nil {
		t.Fatalf("Unreferenced: %v", err)
	}
	if len(garbage) != 1 || garbage[0] != "orphan" {
		t.Errorf("Unreferenced = %v, want [orphan]", garbage)
	}
}

func TestRebuildFromManifestDirectory(t *testing.T) {
	dir := t.TempDir()
	h1 := hashOf(0x01)
	h2 := hashOf(0x02)
	writeManifest(t, filepath.Join(dir, "one"+ManifestSuffix), h1)
	writeManifest(t, filepath.Join(dir, "two"+ManifestSuffix), h2)
	// A non-manifest file in the same directory must be ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := openTestStore(t)
	ctx := context.Background()
	// Seed a stale reference that Rebuild must discard.
	if err := s.RecordManifest(ctx, "stale.psd.decomposed", []string{"gone"}); err != nil {
		t.Fatalf("RecordManifest: %v", err)
	}

	if err := Rebuild(ctx, s, dir); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	if n, _ := s.RefCount(ctx, "gone"); n != 0 {
		t.Error("Rebuild should discard references to manifests no longer on disk")
	}
	for _, h := range []string{hex.EncodeToString(h1[:]), hex.EncodeToString(h2[:])} {
		n, err := s.RefCount(ctx, h)
		if err != nil {
			t.Fatalf("RefCount: %v", err)
		}
		if n != 1 {
			t.Errorf("RefCount(%s) = %d, want 1", h, n)
		}
	}
}

func hashOf(b byte) [32]byte {
	var h [32]byte
	for i := range h {
		h[i] = b
	}
	return h
}

func writeManifest(t *testing.T, path string, h [32]byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	if err := manifest.Encode(f, manifest.Manifest{Chunks: []manifest.ChunkRef{{Hash: h}}}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
}
