// Package pool manages decomposed_objects/, the content-addressed
// chunk store backing decompose/restore. Its write path — stage to a
// temp file, then rename into place — follows the same durability
// discipline as internal/storage/segment.Writer's append-then-seal
// shape: a reader can never observe a partially written chunk file.
package pool

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// markerFile records, once and for the lifetime of a pool directory,
// whether its chunks are zstd-compressed on disk. The manifest always
// addresses chunks by their decompressed-content SHA-256, so this
// choice is invisible outside the pool.
const markerFile = ".zstd"

// ErrNotFound is returned by Get for a hash absent from the pool.
var ErrNotFound = errors.New("pool: chunk not found")

// Pool is a directory of content-addressed chunk files.
type Pool struct {
	root     string
	sharded  bool
	compress bool
}

// Open opens an existing pool directory, detecting its compression
// mode from the marker file left by Create.
func Open(root string) (*Pool, error) {
	compress := false
	if _, err := os.Stat(filepath.Join(root, markerFile)); err == nil {
		compress = true
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	return &Pool{root: root, sharded: detectSharded(root), compress: compress}, nil
}

// Create makes a new pool directory (or reuses an empty/matching one)
// with the given layout.
func Create(root string, sharded, compress bool) (*Pool, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	if compress {
		if err := os.WriteFile(filepath.Join(root, markerFile), nil, 0o644); err != nil {
			return nil, err
		}
	}
	if sharded {
		if err := os.WriteFile(filepath.Join(root, ".sharded"), nil, 0o644); err != nil {
			return nil, err
		}
	}
	return &Pool{root: root, sharded: sharded, compress: compress}, nil
}

func detectSharded(root string) bool {
	_, err := os.Stat(filepath.Join(root, ".sharded"))
	return err == nil
}

// Path returns the on-disk path for a chunk hash, sharded into the
// first two hex characters as a subdirectory when the pool was
// created with sharding enabled (SPEC_FULL.md §A.3's opt-in layout for
// pools with very large chunk counts).
func (p *Pool) Path(hashHex string) string {
	if p.sharded && len(hashHex) >= 2 {
		return filepath.Join(p.root, hashHex[:2], hashHex)
	}
	return filepath.Join(p.root, hashHex)
}

// Has reports whether a chunk is already present.
func (p *Pool) Has(hashHex string) (bool, error) {
	_, err := os.Stat(p.Path(hashHex))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Put stores data under hashHex if not already present. Writing goes to a sibling temp file first so a crash
// mid-write never leaves a corrupt chunk file for a concurrent reader
// to observe.
func (p *Pool) Put(hashHex string, data []byte) error {
	ok, err := p.Has(hashHex)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	dest := p.Path(hashHex)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	tmp := dest + ".tmp-" + uuid.NewString()
	if err := p.writeFile(tmp, data); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (p *Pool) writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if !p.compress {
		_, err := f.Write(data)
		return err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// Get reads and decompresses (if applicable) a chunk's bytes.
func (p *Pool) Get(hashHex string) ([]byte, error) {
	raw, err := os.ReadFile(p.Path(hashHex))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, hashHex)
		}
		return nil, err
	}
	if !p.compress {
		return raw, nil
	}
	dec, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return io.ReadAll(dec)
}

// Remove deletes a chunk file. It is not an error if the chunk is
// already absent, since concurrent cleanup runs can race harmlessly.
func (p *Pool) Remove(hashHex string) error {
	err := os.Remove(p.Path(hashHex))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Walk visits every chunk hash currently stored in the pool, in no
// particular order, for GC scans that must treat the filesystem as the
// source of truth.
func (p *Pool) Walk(fn func(hashHex string) error) error {
	if p.sharded {
		return p.walkSharded(fn)
	}
	entries, err := os.ReadDir(p.root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || isMetaFile(e.Name()) {
			continue
		}
		if err := fn(e.Name()); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pool) walkSharded(fn func(hashHex string) error) error {
	shards, err := os.ReadDir(p.root)
	if err != nil {
		return err
	}
	for _, shard := range shards {
		if !shard.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(p.root, shard.Name()))
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.IsDir() || isMetaFile(e.Name()) {
				continue
			}
			if err := fn(e.Name()); err != nil {
				return err
			}
		}
	}
	return nil
}

func isMetaFile(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
