// Package chunk groups a PSD/PSB byte stream into content-addressed
// spans for the decomposer, the structural analogue of
// internal/storage/chunk's fixed-size Splitter: instead of cutting
// every N bytes, it cuts at the structural leaf/container boundaries
// the block reader already found.
package chunk

import (
	"io"

	"psddiff/internal/psd/reader"
)

// Chunk is one content-addressed span of the original file.
type Chunk struct {
	Path   string // the leaf's or group's path, kept for diagnostics only
	Offset int64
	Data   []byte
	Hash   [32]byte
}

// Splitter decides how a parsed leaf stream is grouped into chunks.
// Matching internal/storage/chunk.Splitter's shape keeps the
// decomposer pluggable between grouping strategies without touching
// its callers.
type Splitter interface {
	Split(src Source, fn func(Chunk) error) error
}

// Source is what a Splitter needs: a forward stream to drive the
// structural walk, and random access to pull each chunk's bytes.
type Source interface {
	io.Reader
	io.ReaderAt
}

// ContainerSplitter emits one chunk per run of contiguous leaves that
// share a ContainerPath: an image-resource record, a layer record, a
// channel payload, the trailing image data, and likewise the fixed
// header (all its fields share ContainerPath "header") and each
// section's length prefix. A leaf with an empty ContainerPath is keyed
// by its own path instead. This keeps chunk count proportional to PSD
// structure rather than file size, so a one-pixel edit to a single layer invalidates only
// that layer's chunk.
type ContainerSplitter struct{}

// Split walks src's structural leaves, grouping consecutive leaves
// that share a ContainerPath into one chunk.
func (ContainerSplitter) Split(src Source, fn func(Chunk) error) error {
	rd, err := reader.New(src)
	if err != nil {
		return err
	}
	defer rd.Close()

	var group string
	var start int64 = -1
	var end int64

	flush := func() error {
		if start < 0 {
			return nil
		}
		return emit(src, group, start, end, fn)
	}

	for {
		leaf, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		key := leaf.ContainerPath
		if key == "" {
			key = leaf.Path
		}
		if start >= 0 && key == group && leaf.Offset == end {
			end = leaf.End()
			continue
		}
		if err := flush(); err != nil {
			return err
		}
		group = key
		start = leaf.Offset
		end = leaf.End()
	}
	return flush()
}

func emit(src Source, path string, offset, end int64, fn func(Chunk) error) error {
	data := make([]byte, end-offset)
	if _, err := src.ReadAt(data, offset); err != nil {
		return err
	}
	return fn(Chunk{Path: path, Offset: offset, Data: data, Hash: Hash(data)})
}
