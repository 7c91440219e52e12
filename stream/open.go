// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package stream

import (
	"errors"
	"io"

	"github.com/aibor/assetfs/internal/bridge"
	"github.com/aibor/assetfs/media"
	"github.com/aibor/assetfs/memory"
)

// Option configures [Open], [LoadFile] and [LoadImage].
type Option func(*options)

type options struct {
	alloc memory.Allocator
}

// WithAllocator sets the allocator the stream buffer is allocated from.
// Defaults to [memory.Heap].
func WithAllocator(alloc memory.Allocator) Option {
	return func(o *options) {
		o.alloc = alloc
	}
}

func newOptions(opts []Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	o.alloc = memory.OrHeap(o.alloc)

	return o
}

// Open loads the file with the given virtual path from fsys and returns a
// [Stream] over its content. Empty files can not be opened.
func Open(fsys bridge.Source, name string, opts ...Option) (*Stream, error) {
	o := newOptions(opts)

	buf, err := bridge.Load(fsys, o.alloc, name, 0)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	stream, err := FromBuffer(buf)
	if err != nil {
		_ = buf.Release()
		return nil, err
	}

	return stream, nil
}

// LoadFile returns a copy of the complete content of the file with the given
// virtual path. The intermediate stream is closed before returning.
func LoadFile(fsys bridge.Source, name string, opts ...Option) (data []byte, err error) {
	stream, err := Open(fsys, name, opts...)
	if err != nil {
		return nil, err
	}

	defer func() {
		err = errors.Join(err, stream.Close())
	}()

	data = make([]byte, stream.Size())

	_, err = io.ReadFull(stream, data)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return data, nil
}

// LoadImage decodes the image file with the given virtual path. The decoder
// is selected by file extension. The intermediate stream is closed before
// returning.
func LoadImage(fsys bridge.Source, name string, opts ...Option) (img media.Image, err error) {
	stream, err := Open(fsys, name, opts...)
	if err != nil {
		return media.Image{}, err
	}

	defer func() {
		err = errors.Join(err, stream.Close())
	}()

	return media.Decode(media.FileExtension(name), stream) //nolint:wrapcheck
}
