// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
)

// readZip adds the entries of a zip archive. Entries are not extracted on
// mount. They are decompressed from the memory image on every load, so the
// image must stay valid for the lifetime of the mount.
func (fsys *FS) readZip(data []byte, m *mount) error {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("zip: %w", err)
	}

	for _, file := range reader.File {
		name, valid := archiveName(file.Name)
		if !valid {
			fsys.skipEntry(m, file.Name, "invalid name")
			continue
		}

		info := file.FileInfo()

		switch {
		case info.IsDir():
			err = fsys.addDir(m, name)
		case info.Mode().IsRegular():
			err = fsys.addNode(m, name, &regularFile{
				size:    int64(file.UncompressedSize64), //nolint:gosec
				modTime: file.Modified,
				open: func() (io.ReadCloser, error) {
					return file.Open() //nolint:wrapcheck
				},
			})
		default:
			fsys.skipEntry(m, name, "unsupported type "+info.Mode().Type().String())
		}

		if err != nil {
			return fmt.Errorf("zip: %w", err)
		}
	}

	return nil
}
