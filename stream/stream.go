// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package stream exposes files of a virtual file system as seekable byte
// streams.
//
// A [Stream] owns the buffer it reads from. The buffer is released exactly
// once when the stream is closed.
package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/aibor/assetfs/memory"
)

var (
	// ErrInvalidArgument is returned if an invalid argument is given.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrClosed is returned by all operations on a closed [Stream].
	ErrClosed = fs.ErrClosed
)

var (
	_ io.ReadSeekCloser = (*Stream)(nil)
	_ io.ReaderAt       = (*Stream)(nil)
	_ io.WriterTo       = (*Stream)(nil)
)

// Stream is a read-only, seekable view of an owned buffer. It is not safe
// for concurrent use.
type Stream struct {
	buf    *memory.Buffer
	reader *bytes.Reader
}

// FromBuffer creates a [Stream] reading the content of buf without copying.
//
// The stream takes ownership of buf. buf is left in released state and must
// not be used by the caller anymore. It fails if buf is nil, released or
// empty, in which case ownership stays with the caller.
func FromBuffer(buf *memory.Buffer) (*Stream, error) {
	if buf.Released() || buf.Len() == 0 {
		return nil, fmt.Errorf("%w: nil or empty buffer", ErrInvalidArgument)
	}

	owned, err := buf.Transfer()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &Stream{
		buf:    owned,
		reader: bytes.NewReader(owned.Bytes()),
	}, nil
}

// Size returns the length of the content. It returns 0 once closed.
func (s *Stream) Size() int64 {
	if s.closed() {
		return 0
	}

	return s.reader.Size()
}

// Read implements [io.Reader].
func (s *Stream) Read(p []byte) (int, error) {
	if s.closed() {
		return 0, ErrClosed
	}

	return s.reader.Read(p) //nolint:wrapcheck
}

// ReadAt implements [io.ReaderAt].
func (s *Stream) ReadAt(p []byte, off int64) (int, error) {
	if s.closed() {
		return 0, ErrClosed
	}

	return s.reader.ReadAt(p, off) //nolint:wrapcheck
}

// Seek implements [io.Seeker].
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	if s.closed() {
		return 0, ErrClosed
	}

	return s.reader.Seek(offset, whence) //nolint:wrapcheck
}

// WriteTo implements [io.WriterTo].
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	if s.closed() {
		return 0, ErrClosed
	}

	return s.reader.WriteTo(w) //nolint:wrapcheck
}

// Close releases the underlying buffer. Further calls return [ErrClosed].
func (s *Stream) Close() error {
	if s.closed() {
		return ErrClosed
	}

	err := s.buf.Release()
	s.reader = nil

	return err //nolint:wrapcheck
}

func (s *Stream) closed() bool {
	return s.reader == nil
}
