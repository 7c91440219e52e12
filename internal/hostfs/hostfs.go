// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package hostfs

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aibor/assetfs/memory"
	"github.com/spf13/afero"
)

// ErrEmptyFile is returned if a file to read has no content.
var ErrEmptyFile = errors.New("file is empty")

// IsRegularFile reports whether name exists in fsys and is a regular file.
func IsRegularFile(fsys afero.Fs, name string) bool {
	info, err := fsys.Stat(name)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

// Contents is the complete content of a file read into memory.
type Contents struct {
	data    []byte
	release func() error
}

// Bytes returns the file content. It must not be used after [Contents.Close].
func (c *Contents) Bytes() []byte {
	return c.data
}

// Close releases the memory. It is safe to call multiple times.
func (c *Contents) Close() error {
	if c.release == nil {
		return nil
	}

	release := c.release
	c.release = nil
	c.data = nil

	return release()
}

// ReadFile reads the complete file name from fsys.
//
// If useMmap is true and fsys is the OS file system, the file is memory
// mapped read-only. Otherwise, or if mapping fails, the content is read into
// a buffer allocated from alloc. Mapping failures are logged to logger, which
// defaults to [slog.Default].
func ReadFile(
	fsys afero.Fs,
	name string,
	alloc memory.Allocator,
	useMmap bool,
	logger *slog.Logger,
) (*Contents, error) {
	if _, isOS := fsys.(*afero.OsFs); isOS && useMmap {
		data, unmap, err := mmapFile(name)
		if err == nil {
			return &Contents{data: data, release: unmap}, nil
		}

		if logger == nil {
			logger = slog.Default()
		}

		logger.Debug("Memory mapping failed, reading file",
			slog.String("path", name),
			slog.Any("error", err),
		)
	}

	return readFile(fsys, name, memory.OrHeap(alloc))
}

func readFile(fsys afero.Fs, name string, alloc memory.Allocator) (*Contents, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if info.Size() <= 0 {
		return nil, &PathError{Op: "read", Path: name, Err: ErrEmptyFile}
	}

	data, err := alloc.Alloc(int(info.Size()))
	if err != nil {
		return nil, fmt.Errorf("allocate for %s: %w", name, err)
	}

	_, err = io.ReadFull(file, data)
	if err != nil {
		alloc.Free(data)
		return nil, &PathError{Op: "read", Path: name, Err: err}
	}

	return &Contents{
		data: data,
		release: func() error {
			alloc.Free(data)
			return nil
		},
	}, nil
}
