// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package memory

import (
	"fmt"
	"sync/atomic"
)

var _ Allocator = (*Limit)(nil)

// Limit is an [Allocator] that fails with [ErrAllocation] once the bytes in
// use would exceed a maximum.
type Limit struct {
	parent Allocator
	max    int64
	inUse  atomic.Int64
}

// NewLimit returns a [Limit] that allocates from parent. A nil parent uses
// [Heap].
func NewLimit(parent Allocator, maxBytes int64) *Limit {
	return &Limit{
		parent: OrHeap(parent),
		max:    maxBytes,
	}
}

// Alloc implements [Allocator].
func (l *Limit) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	if l.inUse.Add(int64(size)) > l.max {
		l.inUse.Add(-int64(size))

		return nil, fmt.Errorf("%w: %d bytes exceed limit of %d bytes",
			ErrAllocation, size, l.max)
	}

	buf, err := l.parent.Alloc(size)
	if err != nil {
		l.inUse.Add(-int64(size))
		return nil, err
	}

	return buf, nil
}

// Free implements [Allocator].
func (l *Limit) Free(buf []byte) {
	l.inUse.Add(-int64(len(buf)))
	l.parent.Free(buf)
}

// InUse returns the number of bytes currently allocated.
func (l *Limit) InUse() int64 {
	return l.inUse.Load()
}
