// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pack

import (
	"errors"
	"fmt"
	"io/fs"
)

// Writer defines the archive writer interface.
type Writer interface {
	WriteRegular(path string, source fs.File, mode fs.FileMode) error
	WriteDirectory(path string) error
	WriteLink(path, target string) error
}

// Stats counts the entries written by [WriteFS].
type Stats struct {
	Directories int
	Files       int
	Links       int
	Bytes       int64

	// Skipped counts entries of types the archive can not hold, like
	// sockets and devices.
	Skipped int
}

// WriteFS writes all directories, regular files and symbolic links of fsys
// to w in lexical order. Other file types are skipped.
func WriteFS(w Writer, fsys fs.FS) (Stats, error) {
	var stats Stats

	walkFn := func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if name == "." {
			return nil
		}

		switch entry.Type() {
		case fs.ModeDir:
			stats.Directories++
			return w.WriteDirectory(name)
		case fs.ModeSymlink:
			target, err := fs.ReadLink(fsys, name)
			if err != nil {
				return err //nolint:wrapcheck
			}

			stats.Links++

			return w.WriteLink(name, target)
		case 0:
			size, err := writeRegular(w, fsys, name)
			if err != nil {
				return err
			}

			stats.Files++
			stats.Bytes += size

			return nil
		default:
			stats.Skipped++
			return nil
		}
	}

	err := fs.WalkDir(fsys, ".", walkFn)
	if err != nil {
		return stats, fmt.Errorf("pack: %w", err)
	}

	return stats, nil
}

func writeRegular(w Writer, fsys fs.FS, name string) (size int64, err error) {
	file, err := fsys.Open(name)
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	defer func() {
		err = errors.Join(err, file.Close())
	}()

	info, err := file.Stat()
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	return info.Size(), w.WriteRegular(name, file, 0)
}
