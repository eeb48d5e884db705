package engine

import (
	"testing"

	"psddiff/internal/psd/block"
	"psddiff/internal/psd/reader"
)

func leafAt(path string, offset, length int64) reader.Leaf {
	return reader.Leaf{Leaf: block.Leaf{Path: path, Offset: offset, Length: length}}
}

func TestAlignMatchesByPath(t *testing.T) {
	a := []reader.Leaf{leafAt("x", 0, 4), leafAt("y", 4, 4)}
	b := []reader.Leaf{leafAt("x", 0, 4), leafAt("y", 4, 4)}

	steps := align(a, b)
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(steps))
	}
	for i, s := range steps {
		if s.A == nil || s.B == nil {
			t.Fatalf("step %d: expected matched pair, got %+v", i, s)
		}
		if s.A.Path != s.B.Path {
			t.Errorf("step %d: paths diverge: %q vs %q", i, s.A.Path, s.B.Path)
		}
	}
}

func TestAlignInsertion(t *testing.T) {
	a := []reader.Leaf{leafAt("x", 0, 4)}
	b := []reader.Leaf{leafAt("new", 0, 2), leafAt("x", 2, 4)}

	steps := align(a, b)
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(steps))
	}
	if steps[0].A != nil || steps[0].B == nil || steps[0].B.Path != "new" {
		t.Errorf("expected a pure-B insertion step first, got %+v", steps[0])
	}
	if steps[1].A == nil || steps[1].B == nil {
		t.Errorf("expected a matched pair second, got %+v", steps[1])
	}
}

func TestAlignDeletion(t *testing.T) {
	a := []reader.Leaf{leafAt("gone", 0, 2), leafAt("x", 2, 4)}
	b := []reader.Leaf{leafAt("x", 0, 4)}

	steps := align(a, b)
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(steps))
	}
	if steps[0].B != nil || steps[0].A == nil || steps[0].A.Path != "gone" {
		t.Errorf("expected a pure-A deletion step first, got %+v", steps[0])
	}
}

func TestAlignPositionalFallbackBeyondWindow(t *testing.T) {
	// Neither "x" nor "z" reappears within lookaheadWindow of the other,
	// so they must be paired positionally rather than search endlessly.
	a := []reader.Leaf{leafAt("x", 0, 4)}
	b := []reader.Leaf{leafAt("z", 0, 4)}

	steps := align(a, b)
	if len(steps) != 1 {
		t.Fatalf("got %d steps, want 1", len(steps))
	}
	if steps[0].A == nil || steps[0].B == nil {
		t.Errorf("expected positional pairing, got %+v", steps[0])
	}
}

func TestFindPath(t *testing.T) {
	leaves := []reader.Leaf{leafAt("a", 0, 1), leafAt("b", 1, 1), leafAt("c", 2, 1)}
	if got := findPath(leaves, 0, 64, "c"); got != 2 {
		t.Errorf("findPath(c) = %d, want 2", got)
	}
	if got := findPath(leaves, 0, 64, "missing"); got != -1 {
		t.Errorf("findPath(missing) = %d, want -1", got)
	}
	if got := findPath(leaves, 1, 1, "c"); got != -1 {
		t.Errorf("findPath outside window should not find c, got %d", got)
	}
}
