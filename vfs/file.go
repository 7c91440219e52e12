// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"io"
	"io/fs"
	"path"
	"time"
)

var (
	_ fs.FileInfo = (*fileInfo)(nil)
	_ fs.DirEntry = (*dirEntry)(nil)
)

type dirEntry struct {
	name string
	node node
}

func (e *dirEntry) Name() string      { return path.Base(e.name) }
func (e *dirEntry) Type() fs.FileMode { return e.node.mode().Type() }
func (e *dirEntry) IsDir() bool       { return e.node.mode().IsDir() }
func (e *dirEntry) String() string    { return fs.FormatDirEntry(e) }

func (e *dirEntry) Info() (fs.FileInfo, error) {
	return &fileInfo{dirEntry: *e}, nil
}

type fileInfo struct {
	dirEntry
}

func (i *fileInfo) Mode() fs.FileMode { return i.node.mode() }
func (i *fileInfo) Sys() any          { return nil }
func (i *fileInfo) String() string    { return fs.FormatFileInfo(i) }

func (i *fileInfo) Size() int64 {
	switch n := i.node.(type) {
	case *regularFile:
		return n.size
	case symbolicLink:
		return int64(len(n))
	default:
		return 0
	}
}

func (i *fileInfo) ModTime() time.Time {
	if file, ok := i.node.(*regularFile); ok {
		return file.modTime
	}

	return time.Time{}
}

var (
	_ fs.File        = (*openFile)(nil)
	_ fs.ReadDirFile = (*openFile)(nil)
)

type openFile struct {
	info    fileInfo
	reader  io.ReadCloser
	entries []fs.DirEntry
	offset  int
	closed  bool
}

// Stat implements [fs.File].
func (f *openFile) Stat() (fs.FileInfo, error) {
	if f.closed {
		return nil, ErrClosed
	}

	return &f.info, nil
}

// Read implements [fs.File].
func (f *openFile) Read(b []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}

	if f.reader == nil {
		return 0, ErrIsDir
	}

	return f.reader.Read(b) //nolint:wrapcheck
}

// Close implements [fs.File].
func (f *openFile) Close() error {
	if f.closed {
		return ErrClosed
	}

	f.closed = true

	if f.reader == nil {
		return nil
	}

	return f.reader.Close() //nolint:wrapcheck
}

// ReadDir implements [fs.ReadDirFile].
func (f *openFile) ReadDir(count int) ([]fs.DirEntry, error) {
	if f.closed {
		return nil, ErrClosed
	}

	if !f.info.IsDir() {
		return nil, ErrNotDir
	}

	start := f.offset
	end := len(f.entries)
	available := end - start

	if available == 0 && count > 0 {
		return nil, io.EOF
	}

	if count > 0 && available > count {
		end = start + count
	}

	f.offset = end

	return f.entries[start:end], nil
}
