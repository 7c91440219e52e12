// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"errors"
	"slices"
)

// MemoryLabel is the default source label of memory mounts.
const MemoryLabel = "memory"

// Kind is the kind of source a mount is backed by.
type Kind int

// Mount kinds.
const (
	KindDirectory Kind = iota + 1
	KindMemory
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// MountInfo describes an active mount.
type MountInfo struct {
	// Source is the host path of directory mounts and the label of memory
	// mounts.
	Source string

	// Prefix is the cleaned virtual path the source is mounted at.
	Prefix string

	// Kind is the kind of the source.
	Kind Kind

	// Format is the archive format of memory mounts.
	Format Format

	// Files is the number of regular files provided by the mount.
	Files int
}

type mount struct {
	info         MountInfo
	root         directory
	releases     []func() error
	imageRelease func() error
	active       bool
}

func newMount(source, prefix string, kind Kind) *mount {
	return &mount{
		info: MountInfo{
			Source: source,
			Prefix: prefix,
			Kind:   kind,
		},
		root: make(directory),
	}
}

// onRelease registers a function to run when the mount is closed. Functions
// run in reverse registration order.
func (m *mount) onRelease(fn func() error) {
	m.releases = append(m.releases, fn)
}

// close invalidates the mount and all handles resolved from it and runs the
// release functions.
func (m *mount) close() error {
	var errs []error

	m.active = false
	m.root = nil

	for _, release := range slices.Backward(m.releases) {
		errs = append(errs, release())
	}

	m.releases = nil

	if m.imageRelease != nil {
		errs = append(errs, m.imageRelease())
		m.imageRelease = nil
	}

	return errors.Join(errs...)
}

// discard frees everything the mount allocated itself. The memory image stays
// with the caller.
func (m *mount) discard() error {
	m.imageRelease = nil
	return m.close()
}
