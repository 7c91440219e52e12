// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/aibor/assetfs/memory"
)

// Option configures an [FS] on creation.
type Option func(*FS)

// WithAllocator sets the allocator used for all memory the [FS] allocates
// itself. Defaults to [memory.Heap].
func WithAllocator(alloc memory.Allocator) Option {
	return func(fsys *FS) {
		fsys.alloc = memory.OrHeap(alloc)
	}
}

// WithLogger sets the logger. Defaults to [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(fsys *FS) {
		if logger != nil {
			fsys.logger = logger
		}
	}
}

// WithSourceFs sets the host file system mount sources are looked up in.
// Defaults to the operating system's file system.
func WithSourceFs(source afero.Fs) Option {
	return func(fsys *FS) {
		if source != nil {
			fsys.source = source
		}
	}
}

// MountOption configures a single memory mount.
type MountOption func(*mount)

// WithLabel sets the source label of a memory mount as reported by
// [FS.Mounts] and matched by [FS.Dismount]. Defaults to [MemoryLabel].
func WithLabel(label string) MountOption {
	return func(m *mount) {
		if label != "" {
			m.info.Source = label
		}
	}
}

// WithRelease registers a function that is called once the memory image is
// no longer used, which is on dismount or destroy. It is not called if the
// mount fails.
func WithRelease(release func() error) MountOption {
	return func(m *mount) {
		m.imageRelease = release
	}
}
