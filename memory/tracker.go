// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package memory

import (
	"log/slog"
	"sync/atomic"
	"unsafe"

	"github.com/puzpuzpuz/xsync/v4"
)

var _ Allocator = (*Tracker)(nil)

// Tracker is an [Allocator] that keeps a ledger of all outstanding
// allocations. Frees of unknown or already freed slices are counted instead
// of being passed on to the parent allocator.
//
// It is meant for tests and diagnostics of ownership handoffs.
type Tracker struct {
	parent      Allocator
	ledger      *xsync.Map[*byte, int]
	allocs      atomic.Int64
	frees       atomic.Int64
	doubleFrees atomic.Int64
}

// NewTracker returns a [Tracker] that allocates from parent. A nil parent
// uses [Heap].
func NewTracker(parent Allocator) *Tracker {
	return &Tracker{
		parent: OrHeap(parent),
		ledger: xsync.NewMap[*byte, int](),
	}
}

// Alloc implements [Allocator].
func (t *Tracker) Alloc(size int) ([]byte, error) {
	buf, err := t.parent.Alloc(size)
	if err != nil {
		return nil, err
	}

	t.ledger.Store(unsafe.SliceData(buf), len(buf))
	t.allocs.Add(1)

	return buf, nil
}

// Free implements [Allocator].
func (t *Tracker) Free(buf []byte) {
	_, known := t.ledger.LoadAndDelete(unsafe.SliceData(buf))
	if !known {
		t.doubleFrees.Add(1)
		slog.Warn("Free of unknown allocation", slog.Int("size", len(buf)))

		return
	}

	t.frees.Add(1)
	t.parent.Free(buf)
}

// Outstanding returns the number of allocations that have not been freed.
func (t *Tracker) Outstanding() int {
	return t.ledger.Size()
}

// OutstandingBytes returns the number of bytes that have not been freed.
func (t *Tracker) OutstandingBytes() int64 {
	var total int64

	t.ledger.Range(func(_ *byte, size int) bool {
		total += int64(size)
		return true
	})

	return total
}

// Allocs returns the number of successful allocations.
func (t *Tracker) Allocs() int64 {
	return t.allocs.Load()
}

// Frees returns the number of successful frees.
func (t *Tracker) Frees() int64 {
	return t.frees.Load()
}

// DoubleFrees returns the number of frees of slices that were not
// outstanding.
func (t *Tracker) DoubleFrees() int64 {
	return t.doubleFrees.Load()
}
