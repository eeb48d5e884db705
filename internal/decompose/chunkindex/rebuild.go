package chunkindex

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"psddiff/internal/decompose/manifest"
)

// ManifestSuffix is the on-disk extension a decompose manifest carries,
// per spec.md §6: "<original>.psd.decomposed".
const ManifestSuffix = ".psd.decomposed"

// Rebuild re-derives the index from every manifest file under dir,
// discarding whatever rows it previously held. Callers use this when
// Store is missing, corrupt, or simply untrusted — the manifests and
// the pool are authoritative, the index is only ever a cache over
// them.
func Rebuild(ctx context.Context, s *Store, dir string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM chunk_refs"); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ManifestSuffix) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		m, err := manifest.Decode(f)
		_ = f.Close()
		if err != nil {
			return err
		}
		hashes := make([]string, len(m.Chunks))
		for i, c := range m.Chunks {
			hashes[i] = hex.EncodeToString(c.Hash[:])
		}
		if err := s.RecordManifest(ctx, e.Name(), hashes); err != nil {
			return err
		}
	}
	return nil
}
