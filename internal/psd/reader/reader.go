// Package reader implements the streaming structural parser of
// spec.md §4.A: a pull-based iterator over the labeled leaf blocks of
// a PSD/PSB byte stream.
//
// The parser itself runs in a goroutine that blocks sending each leaf
// on a channel until the caller pulls it with Next, the Go analogue of
// the generator-coroutine design spec.md's design notes call for.
// Stopping the pull (calling Close without draining) terminates the
// goroutine promptly via a cancellation channel, per spec.md §5.
package reader

import (
	"io"

	"psddiff/internal/psd/block"
	"psddiff/internal/psd/dialect"
)

// Leaf pairs a parsed leaf with any container-level metadata a caller
// consulting coarser ranges (the decomposer) might want alongside it.
type Leaf struct {
	block.Leaf
	// ContainerPath is the path of the smallest "significant"
	// container this leaf belongs to (an image-resource record, a
	// layer body, a channel payload, or the image data), used by the
	// decomposer to group leaves into chunk-sized spans without
	// redoing the grammar walk.
	ContainerPath string
}

// Reader yields leaves of a single PSD/PSB stream in file order.
type Reader struct {
	leaves  chan leafMsg
	quit    chan struct{}
	dialect dialect.Dialect
	closed  bool
}

type leafMsg struct {
	leaf Leaf
	err  error
}

// New starts parsing src. The header (26 bytes) is validated
// synchronously so construction fails fast on an unreadable or
// non-PSD source; the remainder of the grammar is parsed lazily as the
// caller pulls leaves with Next.
func New(src io.Reader) (*Reader, error) {
	cr := &countingReader{r: src}
	dial, headerLeaves, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		leaves:  make(chan leafMsg),
		quit:    make(chan struct{}),
		dialect: dial,
	}

	go r.run(cr, dial, headerLeaves)
	return r, nil
}

// Dialect reports the PSD/PSB dialect determined from the header.
func (r *Reader) Dialect() dialect.Dialect { return r.dialect }

// Next returns the next leaf in file order, or io.EOF when the stream
// is exhausted. Any other error is terminal: the Reader must not be
// used further.
func (r *Reader) Next() (Leaf, error) {
	msg, ok := <-r.leaves
	if !ok {
		return Leaf{}, io.EOF
	}
	if msg.err != nil {
		return Leaf{}, msg.err
	}
	return msg.leaf, nil
}

// All drains every remaining leaf. It is a convenience for callers
// (diff alignment, decomposition) that need the full ordered leaf list
// rather than a live pull loop; it does not defeat streaming since
// only leaf metadata — not leaf bytes — is accumulated.
func (r *Reader) All() ([]Leaf, error) {
	var out []Leaf
	for {
		leaf, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, leaf)
	}
}

// Close releases the parse goroutine if the caller stops pulling
// before EOF. Safe to call after EOF or multiple times.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	close(r.quit)
	// Drain until the goroutine observes quit and exits, so Close
	// does not race a subsequent reuse of the underlying source.
	for range r.leaves {
	}
	return nil
}

func (r *Reader) run(cr *countingReader, dial dialect.Dialect, headerLeaves []block.Leaf) {
	defer close(r.leaves)

	emit := func(l block.Leaf, containerPath string) error {
		select {
		case r.leaves <- leafMsg{leaf: Leaf{Leaf: l, ContainerPath: containerPath}}:
			return nil
		case <-r.quit:
			return errCancelled
		}
	}
	fail := func(err error) {
		select {
		case r.leaves <- leafMsg{err: err}:
		case <-r.quit:
		}
	}

	for _, l := range headerLeaves {
		if err := emit(l, "header"); err != nil {
			return
		}
	}

	c := &parseCtx{src: cr, dialect: dial, emit: emit}

	if err := parseColorMode(c); err != nil {
		fail(err)
		return
	}
	if err := parseImageResources(c); err != nil {
		fail(err)
		return
	}
	if err := parseLayersAndMask(c); err != nil {
		fail(err)
		return
	}
	if err := parseImageData(c); err != nil {
		fail(err)
		return
	}
}

// parseCtx bundles the state every grammar section needs: the
// counting source and a way to yield leaves upward.
type parseCtx struct {
	src     *countingReader
	dialect dialect.Dialect
	emit    func(block.Leaf, string) error
}

func (c *parseCtx) leaf(path string, length int64, containerPath string) error {
	off := c.src.offset - length
	return c.emit(block.Leaf{Path: path, Offset: off, Length: length}, containerPath)
}
