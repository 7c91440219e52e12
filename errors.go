// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package assetfs

import (
	"errors"

	"github.com/aibor/assetfs/internal/bridge"
	"github.com/aibor/assetfs/memory"
	"github.com/aibor/assetfs/vfs"
)

var (
	// ErrInvalidArgument is returned if an invalid argument is given.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotReady is returned if the [System] has no file system instance.
	ErrNotReady = errors.New("asset system not ready")

	// ErrNotExist is returned if a file is not found in any mount.
	ErrNotExist = vfs.ErrNotExist

	// ErrUnreadable is returned if a file exists but can not be loaded.
	ErrUnreadable = bridge.ErrUnreadable

	// ErrAllocation is returned if memory for a file can not be allocated.
	ErrAllocation = memory.ErrAllocation
)
