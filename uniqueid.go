package usdt

import "sync/atomic"

// UniqueID is a process-unique, monotonically increasing value intended for
// use as a probe argument that correlates firings across threads — e.g. a
// probe pair marking the start and end of some unit of work fired from
// different goroutines.
type UniqueID uint64

var nextUniqueID uint64

// NewUniqueID allocates the next UniqueID. Safe for concurrent use.
func NewUniqueID() UniqueID {
	return UniqueID(atomic.AddUint64(&nextUniqueID, 1))
}

// Uint64 returns the numeric value, the form most probe consumers will
// want to print or compare.
func (id UniqueID) Uint64() uint64 { return uint64(id) }
