// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package assetfs

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/aibor/assetfs/memory"
)

// Option configures a [System].
type Option func(*System)

// WithAllocator sets the allocator for all loaded buffers and for the memory
// the file system allocates itself. Defaults to [memory.Heap].
func WithAllocator(alloc memory.Allocator) Option {
	return func(s *System) {
		s.alloc = memory.OrHeap(alloc)
	}
}

// WithLogger sets the logger. Defaults to [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(s *System) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHostFS sets the host file system mount sources are read from.
// Defaults to the operating system's file system.
func WithHostFS(hostFS afero.Fs) Option {
	return func(s *System) {
		if hostFS != nil {
			s.hostFS = hostFS
		}
	}
}

// WithMmap enables memory mapping of archive files mounted from the
// operating system's file system. It has no effect for other host file
// systems and on platforms without mmap support.
func WithMmap(enabled bool) Option {
	return func(s *System) {
		s.mmap = enabled
	}
}
