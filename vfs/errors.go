// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"errors"
	"io/fs"
)

var (
	// ErrNotExist is returned if a path does not exist in any mount.
	ErrNotExist = fs.ErrNotExist

	// ErrExist is returned if a node exists that was not expected.
	ErrExist = fs.ErrExist

	// ErrInvalid is returned for invalid paths and stale handles.
	ErrInvalid = fs.ErrInvalid

	// ErrClosed is returned by every operation on a destroyed [FS].
	ErrClosed = fs.ErrClosed

	// ErrNotDir is returned if a path exists but is not a directory.
	ErrNotDir = errors.New("not a directory")

	// ErrIsDir is returned if a regular file is expected but a directory
	// was found.
	ErrIsDir = errors.New("is a directory")

	// ErrInvalidArgument is returned if an invalid argument is given.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownFormat is returned if a memory image is not an archive
	// format that can be mounted.
	ErrUnknownFormat = errors.New("unknown archive format")

	// ErrNotMounted is returned by [FS.Dismount] if no matching mount exists.
	ErrNotMounted = errors.New("not mounted")

	// ErrSymlinkTooDeep is returned if symbolic links are nested too deep.
	ErrSymlinkTooDeep = errors.New("symlink too deep")
)

// PathError records an error and the operation and file path that caused it.
type PathError = fs.PathError
