// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import "errors"

var (
	// ErrInvalidArgument is returned if an invalid argument is given.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoTerminatorSpace is returned if a text buffer has no reserved byte
	// behind its content.
	ErrNoTerminatorSpace = errors.New("no space for terminator")

	// ErrUnsupportedFormat is returned if no decoder is registered for a
	// file extension.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)
