// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package bridge loads complete files from a virtual file system into
// buffers owned by the caller.
package bridge

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/aibor/assetfs/memory"
	"github.com/aibor/assetfs/vfs"
)

var (
	// ErrNoInstance is returned if no file system is given.
	ErrNoInstance = errors.New("no file system instance")

	// ErrInvalidArgument is returned if an invalid argument is given.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnreadable is returned if a file exists but its content can not be
	// provided. This includes empty files.
	ErrUnreadable = errors.New("file unreadable")
)

// Source is the part of a virtual file system a file is loaded from.
type Source interface {
	Resolve(name string) (vfs.Handle, error)
	Size(h vfs.Handle) int64
	Load(h vfs.Handle, buf []byte) (int, error)
}

var _ Source = (*vfs.FS)(nil)

// Load reads the complete content of the file with the given virtual path
// into a new buffer allocated from alloc. The buffer is allocated with
// reserve zeroed extra bytes behind the content.
//
// On success, the caller owns the returned buffer. On failure, nothing is
// allocated anymore.
func Load(src Source, alloc memory.Allocator, name string, reserve int) (*memory.Buffer, error) {
	if src == nil {
		return nil, ErrNoInstance
	}

	if name == "" || reserve < 0 {
		return nil, fmt.Errorf("%w: name %q, reserve %d",
			ErrInvalidArgument, name, reserve)
	}

	handle, err := src.Resolve(name)
	switch {
	case errors.Is(err, vfs.ErrClosed):
		return nil, fmt.Errorf("%w: %w", ErrNoInstance, err)
	case err != nil:
		return nil, err //nolint:wrapcheck
	}

	size := src.Size(handle)
	if size <= 0 || size > math.MaxInt-int64(reserve) {
		return nil, &vfs.PathError{
			Op:   "load",
			Path: name,
			Err:  fmt.Errorf("%w: size %d", ErrUnreadable, size),
		}
	}

	buf, err := memory.NewBuffer(alloc, int(size), reserve)
	if err != nil {
		return nil, &vfs.PathError{
			Op:   "load",
			Path: name,
			Err:  err,
		}
	}

	n, err := src.Load(handle, buf.Raw()[:size])
	if err == nil && int64(n) != size {
		err = io.ErrUnexpectedEOF
	}

	if err != nil {
		_ = buf.Release()

		return nil, &vfs.PathError{
			Op:   "load",
			Path: name,
			Err:  fmt.Errorf("%w: read %d of %d bytes: %w", ErrUnreadable, n, size, err),
		}
	}

	return buf, nil
}
