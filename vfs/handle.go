// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import "github.com/google/uuid"

// Handle refers to a regular file resolved by [FS.Resolve].
//
// It is bound to the [FS] and the mount it was resolved from. It becomes
// invalid once that mount is dismounted or the FS is destroyed. The zero
// value is invalid.
type Handle struct {
	fsID  uuid.UUID
	mount *mount
	file  *regularFile
	name  string
}

// Name returns the cleaned virtual path the handle was resolved for.
func (h Handle) Name() string {
	return h.name
}

// IsZero reports whether h is the zero value.
func (h Handle) IsZero() bool {
	return h.file == nil
}
