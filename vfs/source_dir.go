// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// readDirectory adds all regular files found underneath the host directory
// source. Only the tree is built on mount. File content is read from the
// host on every load.
func (fsys *FS) readDirectory(source string, m *mount) error {
	base := afero.NewReadOnlyFs(afero.NewBasePathFs(fsys.source, source))

	walkFn := func(name string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel := strings.TrimPrefix(filepath.ToSlash(name), "/")

		switch {
		case rel == "":
			return nil
		case info.IsDir():
			return fsys.addDir(m, rel)
		case info.Mode().IsRegular():
			return fsys.addNode(m, rel, &regularFile{
				size:    info.Size(),
				modTime: info.ModTime(),
				open: func() (io.ReadCloser, error) {
					return base.Open(name) //nolint:wrapcheck
				},
			})
		default:
			fsys.logger.Debug("Skip directory entry",
				slog.String("source", source),
				slog.String("name", rel),
				slog.String("type", info.Mode().Type().String()),
			)

			return nil
		}
	}

	err := afero.Walk(base, "/", walkFn)
	if err != nil {
		return fmt.Errorf("walk: %w", err)
	}

	return nil
}
