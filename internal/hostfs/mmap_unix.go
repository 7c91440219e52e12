// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build unix

package hostfs

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func mmapFile(name string) ([]byte, func() error, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}

	size := info.Size()
	if size <= 0 {
		return nil, nil, &PathError{Op: "mmap", Path: name, Err: ErrEmptyFile}
	}

	if int64(int(size)) != size {
		return nil, nil, &PathError{
			Op:   "mmap",
			Path: name,
			Err:  fmt.Errorf("file too large: %d", size),
		}
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, &PathError{Op: "mmap", Path: name, Err: err}
	}

	unmap := func() error {
		err := unix.Munmap(data)
		if err != nil {
			return &PathError{Op: "munmap", Path: name, Err: err}
		}

		return nil
	}

	return data, unmap, nil
}
