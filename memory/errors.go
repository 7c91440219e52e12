// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package memory

import "errors"

var (
	// ErrAllocation is returned if an allocator cannot satisfy a request.
	ErrAllocation = errors.New("allocation failed")

	// ErrInvalidSize is returned if a non-positive size is requested.
	ErrInvalidSize = errors.New("invalid allocation size")

	// ErrReleased is returned if a [Buffer] is used after it was released or
	// its ownership was transferred.
	ErrReleased = errors.New("buffer already released")
)
