// Package clock generates monotonic, lexicographically sortable run
// stamps for cleanup/decompose reports. It is adapted from
// internal/clock's hybrid logical clock: that type existed to order
// events across replicas, which a single-process CLI never needs, so
// the merge/Update half of an HLC is dropped entirely — only the
// "monotonic even when the wall clock stalls or steps backward" half
// survives, repurposed to stamp one run uniquely against the last.
package clock

import (
	"fmt"
	"sync"
	"time"
)

// Stamper hands out monotonically increasing run stamps.
type Stamper struct {
	mu           sync.Mutex
	lastPhysical int64
	logical      uint32
}

// New returns a ready Stamper.
func New() *Stamper {
	return &Stamper{}
}

// Next returns the next stamp: a 19-digit UTC nanosecond timestamp, a
// dash, and a 10-digit logical counter that only advances when two
// calls land in the same nanosecond or the wall clock moves backward.
func (s *Stamper) Next() string {
	now := time.Now().UTC().UnixNano()
	s.mu.Lock()
	defer s.mu.Unlock()
	if now > s.lastPhysical {
		s.lastPhysical = now
		s.logical = 0
	} else {
		s.logical++
	}
	return fmt.Sprintf("%019d-%010d", s.lastPhysical, s.logical)
}
