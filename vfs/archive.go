// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"
)

// Format is an archive format that can be mounted from memory.
type Format int

// Supported archive formats.
const (
	FormatUnknown Format = iota
	FormatZip
	FormatTar
	FormatTarGzip
	FormatTarZstd
	FormatTarLZ4
	FormatCPIO
)

func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTar:
		return "tar"
	case FormatTarGzip:
		return "tar.gz"
	case FormatTarZstd:
		return "tar.zst"
	case FormatTarLZ4:
		return "tar.lz4"
	case FormatCPIO:
		return "cpio"
	default:
		return "unknown"
	}
}

const tarMagicOffset = 257

var (
	magicZip      = []byte("PK\x03\x04")
	magicZipEmpty = []byte("PK\x05\x06")
	magicGzip     = []byte{0x1f, 0x8b}
	magicZstd     = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4      = []byte{0x04, 0x22, 0x4d, 0x18}
	magicCPIO     = []byte("07070")
	magicTar      = []byte("ustar")
)

// DetectFormat returns the archive format of the given memory image based on
// its leading magic bytes. Compressed streams are assumed to contain a tar
// archive.
func DetectFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicZip), bytes.HasPrefix(data, magicZipEmpty):
		return FormatZip
	case bytes.HasPrefix(data, magicGzip):
		return FormatTarGzip
	case bytes.HasPrefix(data, magicZstd):
		return FormatTarZstd
	case bytes.HasPrefix(data, magicLZ4):
		return FormatTarLZ4
	case bytes.HasPrefix(data, magicCPIO):
		return FormatCPIO
	case len(data) > tarMagicOffset &&
		bytes.HasPrefix(data[tarMagicOffset:], magicTar):
		return FormatTar
	default:
		return FormatUnknown
	}
}

// readArchive adds all entries of the archive in data to the mount's tree.
func (fsys *FS) readArchive(data []byte, m *mount) error {
	format := DetectFormat(data)
	m.info.Format = format

	switch format {
	case FormatZip:
		return fsys.readZip(data, m)
	case FormatTar:
		return fsys.readTar(bytes.NewReader(data), m)
	case FormatTarGzip, FormatTarZstd, FormatTarLZ4:
		return fsys.readCompressedTar(format, bytes.NewReader(data), m)
	case FormatCPIO:
		return fsys.readCPIO(bytes.NewReader(data), m)
	default:
		return ErrUnknownFormat
	}
}

// addStreamed adds a regular file whose content is read from r now. The
// content is copied into memory from the FS allocator that is freed when the
// mount is closed.
func (fsys *FS) addStreamed(
	m *mount,
	name string,
	size int64,
	modTime time.Time,
	r io.Reader,
) error {
	if size < 0 || size > math.MaxInt {
		return fmt.Errorf("%s: %w: size %d", name, ErrInvalid, size)
	}

	var body []byte

	if size > 0 {
		alloc := fsys.alloc

		data, err := alloc.Alloc(int(size))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		m.onRelease(func() error {
			alloc.Free(data)
			return nil
		})

		_, err = io.ReadFull(r, data)
		if err != nil {
			return fmt.Errorf("%s: read: %w", name, err)
		}

		body = data
	}

	file := &regularFile{
		size:    size,
		modTime: modTime,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		},
	}

	return fsys.addNode(m, name, file)
}

func (fsys *FS) addNode(m *mount, name string, n node) error {
	err := m.root.add(name, n)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}

func (fsys *FS) addDir(m *mount, name string) error {
	_, err := m.root.mkdirAll(name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return nil
}

func (fsys *FS) skipEntry(m *mount, name, reason string) {
	fsys.logger.Debug("Skip archive entry",
		slog.String("source", m.info.Source),
		slog.String("name", name),
		slog.String("reason", reason),
	)
}
