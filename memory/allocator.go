// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package memory

import "fmt"

// Allocator is the allocation capability used for file content.
//
// Free must be called with exactly the slice returned by Alloc, not a
// re-sliced view of it.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte)
}

var _ Allocator = heap{}

type heap struct{}

// Heap is the default [Allocator] backed by the Go runtime. Free only drops
// the reference and leaves reclamation to the garbage collector.
//
//nolint:gochecknoglobals
var Heap Allocator = heap{}

func (heap) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	return make([]byte, size), nil
}

func (heap) Free([]byte) {}

// OrHeap returns alloc or [Heap] if alloc is nil.
func OrHeap(alloc Allocator) Allocator {
	if alloc == nil {
		return Heap
	}

	return alloc
}
