package decompose

import (
	"context"
	"os"
	"path/filepath"

	dchunk "psddiff/internal/decompose/chunk"
	"psddiff/internal/decompose/chunkindex"
	"psddiff/internal/decompose/manifest"
	"psddiff/internal/decompose/pool"
)

// Decompose splits the PSD/PSB file at srcPath into content-addressed
// chunks under poolDir and writes the resulting manifest to
// manifestPath. Chunks already present in the pool (because an
// earlier version of this file, or a different file, shared a span)
// are left untouched rather than rewritten.
func Decompose(srcPath, poolDir, manifestPath string, opts Options) (Report, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return Report{}, err
	}
	defer f.Close()

	p, err := openOrCreatePool(poolDir, opts)
	if err != nil {
		return Report{}, err
	}

	var (
		report = Report{RunStamp: runStamp.Next()}
		m      manifest.Manifest
	)

	splitter := dchunk.ContainerSplitter{}
	err = splitter.Split(f, func(c dchunk.Chunk) error {
		hashHex := dchunk.HexHash(c.Hash)
		existed, err := p.Has(hashHex)
		if err != nil {
			return err
		}
		if err := p.Put(hashHex, c.Data); err != nil {
			return err
		}

		ref := manifest.ChunkRef{Hash: c.Hash}
		if opts.Secondary {
			ref.Secondary = dchunk.Secondary(c.Data)
		}
		m.Chunks = append(m.Chunks, ref)

		report.ChunkCount++
		report.TotalBytes += int64(len(c.Data))
		if existed {
			report.DedupedChunks++
		} else {
			report.NewChunks++
		}
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	if err := writeManifestFile(manifestPath, m); err != nil {
		return Report{}, err
	}

	if opts.IndexPath != "" {
		if err := recordIndex(opts.IndexPath, manifestPath, m); err != nil {
			return Report{}, err
		}
	}

	return report, nil
}

func openOrCreatePool(poolDir string, opts Options) (*pool.Pool, error) {
	if _, err := os.Stat(poolDir); err == nil {
		return pool.Open(poolDir)
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	return pool.Create(poolDir, opts.Shard, opts.Compress)
}

func writeManifestFile(path string, m manifest.Manifest) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := manifest.Encode(f, m); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func recordIndex(indexPath, manifestPath string, m manifest.Manifest) error {
	idx, err := chunkindex.Open(indexPath)
	if err != nil {
		return err
	}
	defer idx.Close()

	hashes := make([]string, len(m.Chunks))
	for i, c := range m.Chunks {
		hashes[i] = dchunk.HexHash(c.Hash)
	}
	return idx.RecordManifest(context.Background(), filepath.Base(manifestPath), hashes)
}
