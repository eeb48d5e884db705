package engine

import (
	"fmt"
	"math"

	"psddiff/internal/diff/action"
	"psddiff/internal/diff/script"
)

// maxActionLen is the largest byte count a single action's length
// field can carry on the wire (they're u32, per spec.md §3's table).
// Skip/Remove/Add are chunked transparently across this boundary;
// Replace is rejected instead of chunked, since splitting it would
// require keeping its two independent lengths (source consumed, bytes
// emitted) synchronized across chunks for no real benefit — no PSD or
// PSB leaf this parser can ever produce approaches 4 GiB.
const maxActionLen = math.MaxUint32

// ErrActionTooLarge is returned when a single changed span exceeds
// what one Replace action can encode.
var ErrActionTooLarge = fmt.Errorf("engine: changed span exceeds %d bytes", maxActionLen)

// coalescer merges adjacent same-kind actions before handing them to
// a script.Writer, so e.g. ten consecutive unchanged leaves become one
// Skip instead of ten, matching spec.md §3's "SHOULD keep scripts
// compact" guidance.
type coalescer struct {
	w       *script.Writer
	pending *action.Action
}

func newCoalescer(w *script.Writer) *coalescer {
	return &coalescer{w: w}
}

func (c *coalescer) push(a action.Action) error {
	if c.pending != nil && action.CanMerge(*c.pending, a) &&
		uint64(c.pending.Len)+uint64(a.Len) <= maxActionLen {
		merged := action.Merge(*c.pending, a)
		c.pending = &merged
		return nil
	}
	if err := c.flush(); err != nil {
		return err
	}
	c.pending = &a
	return nil
}

func (c *coalescer) flush() error {
	if c.pending == nil {
		return nil
	}
	err := c.w.Write(*c.pending)
	c.pending = nil
	return err
}

func (c *coalescer) skip(total int64) error {
	return c.chunkLen(total, action.NewSkip)
}

func (c *coalescer) remove(total int64) error {
	return c.chunkLen(total, action.NewRemove)
}

func (c *coalescer) chunkLen(total int64, mk func(uint32) action.Action) error {
	for total > 0 {
		n := total
		if n > maxActionLen {
			n = maxActionLen
		}
		if err := c.push(mk(uint32(n))); err != nil {
			return err
		}
		total -= n
	}
	return nil
}

func (c *coalescer) add(data []byte) error {
	for len(data) > 0 {
		n := len(data)
		if n > maxActionLen {
			n = maxActionLen
		}
		if err := c.push(action.NewAdd(data[:n])); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func (c *coalescer) replace(removeLen int64, data []byte) error {
	if removeLen > maxActionLen || int64(len(data)) > maxActionLen {
		return ErrActionTooLarge
	}
	return c.push(action.NewReplace(uint32(removeLen), data))
}
