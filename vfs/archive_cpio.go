// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"errors"
	"fmt"
	"io"

	"github.com/cavaliergopher/cpio"
)

// readCPIO adds the entries of a SVR4 (newc) cpio archive. Regular file
// content is extracted into memory from the FS allocator.
func (fsys *FS) readCPIO(r io.Reader, m *mount) error {
	reader := cpio.NewReader(r)

	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("cpio: %w", err)
		}

		name, valid := archiveName(header.Name)
		if !valid {
			fsys.skipEntry(m, header.Name, "invalid name")
			continue
		}

		switch header.Mode & cpio.ModeType {
		case cpio.TypeDir:
			err = fsys.addDir(m, name)
		case cpio.TypeReg:
			err = fsys.addStreamed(m, name, header.Size, header.ModTime, reader)
		case cpio.TypeSymlink:
			err = fsys.addNode(m, name, symbolicLink(header.Linkname))
		default:
			fsys.skipEntry(m, name, "unsupported type "+header.Mode.String())
		}

		if err != nil {
			return fmt.Errorf("cpio: %w", err)
		}
	}
}
