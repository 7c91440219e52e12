// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package memory

import "fmt"

// Buffer is an owned allocation holding file content.
//
// The first [Buffer.Len] bytes are the content. An additional number of
// reserved bytes may follow, which are zero after allocation. A Buffer has a
// single owner that must either call [Buffer.Release] or hand the Buffer over
// with [Buffer.Transfer]. It is not safe for concurrent use.
type Buffer struct {
	data  []byte
	size  int
	alloc Allocator
}

// NewBuffer allocates a [Buffer] with size content bytes followed by reserve
// extra bytes from alloc. A nil alloc uses [Heap].
func NewBuffer(alloc Allocator, size, reserve int) (*Buffer, error) {
	if size <= 0 || reserve < 0 {
		return nil, fmt.Errorf("%w: size %d, reserve %d",
			ErrInvalidSize, size, reserve)
	}

	alloc = OrHeap(alloc)

	data, err := alloc.Alloc(size + reserve)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	// Allocators are not required to return zeroed memory.
	clear(data[size:])

	return &Buffer{
		data:  data,
		size:  size,
		alloc: alloc,
	}, nil
}

// Bytes returns the content bytes. It returns nil once the buffer is
// released.
func (b *Buffer) Bytes() []byte {
	if b.Released() {
		return nil
	}

	return b.data[:b.size:b.size]
}

// Raw returns the complete allocation including reserved bytes. It returns
// nil once the buffer is released.
func (b *Buffer) Raw() []byte {
	if b.Released() {
		return nil
	}

	return b.data
}

// Len returns the content length.
func (b *Buffer) Len() int {
	if b.Released() {
		return 0
	}

	return b.size
}

// Cap returns the length of the complete allocation.
func (b *Buffer) Cap() int {
	if b.Released() {
		return 0
	}

	return len(b.data)
}

// Released reports whether the buffer has been released or transferred.
func (b *Buffer) Released() bool {
	return b == nil || b.data == nil
}

// Release returns the allocation to its allocator. It returns [ErrReleased]
// if called more than once.
func (b *Buffer) Release() error {
	if b.Released() {
		return ErrReleased
	}

	data := b.data
	b.data = nil
	b.size = 0
	b.alloc.Free(data)

	return nil
}

// Transfer moves ownership of the allocation into a new [Buffer]. The
// receiver is left in released state and must not be released anymore.
func (b *Buffer) Transfer() (*Buffer, error) {
	if b.Released() {
		return nil, ErrReleased
	}

	moved := &Buffer{
		data:  b.data,
		size:  b.size,
		alloc: b.alloc,
	}

	b.data = nil
	b.size = 0

	return moved, nil
}
