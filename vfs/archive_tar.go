// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// readCompressedTar decompresses a tar stream while reading its entries.
func (fsys *FS) readCompressedTar(format Format, r io.Reader, m *mount) error {
	switch format {
	case FormatTarGzip:
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return fmt.Errorf("gzip: %w", err)
		}
		defer gzipReader.Close()

		return fsys.readTar(gzipReader, m)
	case FormatTarZstd:
		decoder, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return fmt.Errorf("zstd: %w", err)
		}
		defer decoder.Close()

		return fsys.readTar(decoder, m)
	case FormatTarLZ4:
		return fsys.readTar(lz4.NewReader(r), m)
	default:
		return ErrUnknownFormat
	}
}

// readTar adds the entries of a tar stream. Regular file content is
// extracted into memory from the FS allocator.
func (fsys *FS) readTar(r io.Reader, m *mount) error {
	reader := tar.NewReader(r)

	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("tar: %w", err)
		}

		name, valid := archiveName(header.Name)
		if !valid {
			fsys.skipEntry(m, header.Name, "invalid name")
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			err = fsys.addDir(m, name)
		case tar.TypeReg:
			err = fsys.addStreamed(m, name, header.Size, header.ModTime, reader)
		case tar.TypeSymlink:
			err = fsys.addNode(m, name, symbolicLink(header.Linkname))
		default:
			fsys.skipEntry(m, name, fmt.Sprintf("unsupported type %q", header.Typeflag))
		}

		if err != nil {
			return fmt.Errorf("tar: %w", err)
		}
	}
}
