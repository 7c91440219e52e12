// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package assetfs loads application assets like text and images from a
// mountable virtual file system.
//
// A [System] owns at most one [vfs.FS] at a time. Host directories and
// archive files are mounted at virtual prefixes and files are loaded by their
// virtual path:
//
//	sys := assetfs.New()
//	defer sys.Close()
//
//	if err := sys.Init("resources", "/res"); err != nil {
//		return err
//	}
//
//	img, err := sys.LoadImage("/res/carlsagan.png")
//
// The package level functions operate on a default [System] and must only be
// used from a single goroutine.
package assetfs
