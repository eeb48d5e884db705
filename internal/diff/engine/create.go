package engine

import (
	"bytes"
	"io"

	"psddiff/internal/diff/script"
	"psddiff/internal/psd/block"
	"psddiff/internal/psd/reader"
)

// Source is what Create needs from each side of a diff: a forward
// stream for the structural walk, and random access for fetching the
// bytes a leaf covers once alignment has decided what to do with it.
// *os.File and *bytes.Reader both satisfy this directly.
type Source interface {
	io.Reader
	io.ReaderAt
}

// Create computes the PSDDIFF1 edit script that turns a's content
// into b's content and writes it to w, per spec.md §4.B's structural
// diff: leaves are aligned by path (see align), then compared byte for
// byte to decide Skip vs Replace, with pure insertions/deletions
// becoming Add/Remove.
func Create(a, b Source, w io.Writer) error {
	aLeaves, err := collectLeaves(a)
	if err != nil {
		return err
	}
	bLeaves, err := collectLeaves(b)
	if err != nil {
		return err
	}

	sw := script.NewWriter(w)
	cw := newCoalescer(sw)

	for _, s := range align(aLeaves, bLeaves) {
		switch {
		case s.A != nil && s.B != nil:
			aBytes, err := readLeaf(a, s.A.Leaf)
			if err != nil {
				return err
			}
			bBytes, err := readLeaf(b, s.B.Leaf)
			if err != nil {
				return err
			}
			if bytes.Equal(aBytes, bBytes) {
				if err := cw.skip(int64(len(aBytes))); err != nil {
					return err
				}
			} else if err := cw.replace(int64(len(aBytes)), bBytes); err != nil {
				return err
			}
		case s.A != nil:
			if err := cw.remove(s.A.Length); err != nil {
				return err
			}
		default:
			bBytes, err := readLeaf(b, s.B.Leaf)
			if err != nil {
				return err
			}
			if err := cw.add(bBytes); err != nil {
				return err
			}
		}
	}

	if err := cw.flush(); err != nil {
		return err
	}
	return sw.Close()
}

// Measure reports how many bytes a's→b's edit script would occupy,
// without retaining it: Create() writing through a byte-counting
// writer, per SPEC_FULL.md §A.5's note that measure is not a separate
// code path.
func Measure(a, b Source) (int64, error) {
	cw := &countingWriter{}
	if err := Create(a, b, cw); err != nil {
		return 0, err
	}
	return cw.n, nil
}

type countingWriter struct{ n int64 }

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

func collectLeaves(r io.Reader) ([]reader.Leaf, error) {
	rd, err := reader.New(r)
	if err != nil {
		return nil, err
	}
	defer rd.Close()
	return rd.All()
}

// readLeaf fetches the bytes a single leaf covers via random access.
// Reading one leaf at a time means neither input file is held whole.
// Memory is not bounded by the largest leaf, though: the coalescer
// holds the merged data of a run of consecutive changed leaves (one
// Add or ReplaceEqual) until the run ends, and the two leaf-metadata
// slices grow with the number of leaves.
func readLeaf(src io.ReaderAt, l block.Leaf) ([]byte, error) {
	buf := make([]byte, l.Length)
	if _, err := src.ReadAt(buf, l.Offset); err != nil {
		return nil, err
	}
	return buf, nil
}
