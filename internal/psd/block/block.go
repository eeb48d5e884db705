// Package block defines the labeled byte-range tree the PSD reader
// produces, and the path-building helpers shared by every section of
// the grammar.
package block

import "fmt"

// Leaf is a terminal block: a labeled byte range whose bytes are a
// semantic unit. The reader yields leaves in file order; a Leaf never
// carries its own bytes, only the coordinates a caller uses to fetch
// them from a separately held reader.
type Leaf struct {
	Path   string
	Offset int64
	Length int64
}

// End returns the offset one past the leaf's last byte.
func (l Leaf) End() int64 { return l.Offset + l.Length }

// Container is a non-leaf block: a byte range at coarser granularity
// than individual leaves. The reader does not yield Containers; the
// decomposer groups leaves by reader.Leaf.ContainerPath instead.
type Container struct {
	Path   string
	Offset int64
	Length int64
}

func (c Container) End() int64 { return c.Offset + c.Length }

// Path builds dot-joined paths from a stack of labels, using "_n"
// ordinal suffixes (e.g. "layer_3") for repeated siblings under a
// variable-cardinality parent.
type Path struct {
	labels []string
}

// Push returns a new Path with label appended.
func (p Path) Push(label string) Path {
	next := make([]string, len(p.labels)+1)
	copy(next, p.labels)
	next[len(p.labels)] = label
	return Path{labels: next}
}

// Indexed returns a new Path with an ordinal child label appended, e.g.
// Indexed("layer", 3) -> "...layer_3".
func (p Path) Indexed(label string, index int) Path {
	return p.Push(fmt.Sprintf("%s_%d", label, index))
}

// String renders the dot-joined path from the root.
func (p Path) String() string {
	s := ""
	for i, l := range p.labels {
		if i > 0 {
			s += "."
		}
		s += l
	}
	return s
}
