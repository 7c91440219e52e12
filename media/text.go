// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"fmt"

	"github.com/aibor/assetfs/memory"
)

// Text is file content followed by a NUL terminator. It owns its buffer until
// [Text.Release] is called.
type Text struct {
	buf *memory.Buffer
}

// TextFrom takes ownership of buf and writes a NUL terminator behind its
// content. buf must have been allocated with at least one reserved byte.
// On failure, ownership stays with the caller.
func TextFrom(buf *memory.Buffer) (*Text, error) {
	if buf.Released() {
		return nil, fmt.Errorf("%w: nil or released buffer", ErrInvalidArgument)
	}

	if buf.Cap() <= buf.Len() {
		return nil, ErrNoTerminatorSpace
	}

	owned, err := buf.Transfer()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	owned.Raw()[owned.Len()] = 0

	return &Text{buf: owned}, nil
}

// String returns a copy of the text without terminator.
func (t *Text) String() string {
	return string(t.Bytes())
}

// Bytes returns the text without terminator. It returns nil once released.
func (t *Text) Bytes() []byte {
	return t.buf.Bytes()
}

// Terminated returns the text including its NUL terminator. It returns nil
// once released.
func (t *Text) Terminated() []byte {
	raw := t.buf.Raw()
	if raw == nil {
		return nil
	}

	return raw[:t.buf.Len()+1]
}

// Len returns the text length without terminator.
func (t *Text) Len() int {
	return t.buf.Len()
}

// Release frees the backing buffer. It returns [memory.ErrReleased] if
// called more than once.
func (t *Text) Release() error {
	return t.buf.Release() //nolint:wrapcheck
}
