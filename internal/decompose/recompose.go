package decompose

import (
	"encoding/hex"
	"fmt"
	"os"

	"psddiff/internal/decompose/manifest"
	"psddiff/internal/decompose/pool"
)

// Recompose reconstructs a file from a manifest whose chunks are
// scattered across several pool directories — e.g. a pool that was
// split across two backup snapshots, or a partial pool plus the
// project's shared one. It is a reinterpretation of the original
// implementation's psd_merge: both re-emit already-located bytes with
// no pixel interpretation, but psd_merge merged two whole PSD trees
// while Recompose merges byte sources for one already-known chunk
// list, which is the only form of "merge" a chunk pool has a use for.
// Pools are tried in order; the first one holding a chunk wins.
func Recompose(manifestPath string, poolDirs []string, outPath string) error {
	if len(poolDirs) == 0 {
		return fmt.Errorf("decompose: recompose requires at least one pool directory")
	}
	m, err := readManifestFile(manifestPath)
	if err != nil {
		return err
	}

	pools := make([]*pool.Pool, len(poolDirs))
	for i, dir := range poolDirs {
		p, err := pool.Open(dir)
		if err != nil {
			return err
		}
		pools[i] = p
	}

	tmp := outPath + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := recomposeChunks(f, pools, m); err != nil {
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

func recomposeChunks(w *os.File, pools []*pool.Pool, m manifest.Manifest) error {
	for _, c := range m.Chunks {
		hashHex := hex.EncodeToString(c.Hash[:])
		data, err := findInPools(pools, hashHex)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

func findInPools(pools []*pool.Pool, hashHex string) ([]byte, error) {
	for _, p := range pools {
		ok, err := p.Has(hashHex)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		return p.Get(hashHex)
	}
	return nil, fmt.Errorf("%w: %s", ErrChunkMissing, hashHex)
}
