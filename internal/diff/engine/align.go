package engine

import "psddiff/internal/psd/reader"

// step pairs one leaf from A with its counterpart in B. Exactly one of
// A/B is nil for an insertion or deletion; both are set for a matched
// or positionally-replaced pair.
type step struct {
	A, B *reader.Leaf
}

// lookaheadWindow bounds how far align() searches ahead for a
// reappearing path before giving up and falling back to a positional
// pairing. Diff compactness is a SHOULD, not a MUST: an unbounded
// search would make align() quadratic on files where whole subtrees
// were reordered, for no correctness benefit.
const lookaheadWindow = 64

// align walks two ordered leaf lists and produces the step sequence
// create() turns into actions. It anchors on exact path equality
// (paths are stable across the ordinary edits this format targets —
// field renames show up as one remove + one add, which is still a
// correct, if less compact, script) and falls back to pairing same-
// position leaves as a Replace when neither side's path reappears
// within the lookahead window.
func align(a, b []reader.Leaf) []step {
	var out []step
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Path == b[j].Path {
			out = append(out, step{A: &a[i], B: &b[j]})
			i++
			j++
			continue
		}

		jFound := findPath(b, j, lookaheadWindow, a[i].Path)
		iFound := findPath(a, i, lookaheadWindow, b[j].Path)

		switch {
		case jFound < 0 && iFound < 0:
			// Neither path reappears nearby: pair them positionally.
			out = append(out, step{A: &a[i], B: &b[j]})
			i++
			j++
		case jFound >= 0 && (iFound < 0 || jFound <= iFound):
			// a[i].Path is just ahead in B: B inserted leaves before it.
			out = append(out, step{B: &b[j]})
			j++
		default:
			// b[j].Path is just ahead in A: A has leaves B dropped.
			out = append(out, step{A: &a[i]})
			i++
		}
	}
	for ; i < len(a); i++ {
		out = append(out, step{A: &a[i]})
	}
	for ; j < len(b); j++ {
		out = append(out, step{B: &b[j]})
	}
	return out
}

// findPath searches leaves[from:from+window] for path, returning its
// offset from `from`, or -1 if not found within the window.
func findPath(leaves []reader.Leaf, from, window int, path string) int {
	end := from + window
	if end > len(leaves) {
		end = len(leaves)
	}
	for k := from; k < end; k++ {
		if leaves[k].Path == path {
			return k - from
		}
	}
	return -1
}
