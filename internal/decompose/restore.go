package decompose

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"psddiff/internal/decompose/manifest"
	"psddiff/internal/decompose/pool"
)

// Restore reconstructs the original file named by manifestPath's
// chunk list, reading each chunk from poolDir in order and writing it
// to outPath. Like pool.Put, it stages to a temp file and renames into
// place so a failed restore never leaves a partial file at outPath.
func Restore(manifestPath, poolDir, outPath string) error {
	m, err := readManifestFile(manifestPath)
	if err != nil {
		return err
	}
	p, err := pool.Open(poolDir)
	if err != nil {
		return err
	}

	tmp := outPath + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if err := writeChunks(f, p, m); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, outPath)
}

func writeChunks(w *os.File, p *pool.Pool, m manifest.Manifest) error {
	for _, c := range m.Chunks {
		hashHex := hex.EncodeToString(c.Hash[:])
		data, err := p.Get(hashHex)
		if err != nil {
			if errors.Is(err, pool.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrChunkMissing, hashHex)
			}
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

func readManifestFile(path string) (manifest.Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return manifest.Manifest{}, err
	}
	defer f.Close()
	return manifest.Decode(f)
}
