// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"io/fs"
	"path"
	"strings"
)

// CleanPath returns the absolute, lexically cleaned form of a virtual path.
// Relative paths are interpreted relative to the root.
func CleanPath(name string) (string, error) {
	if name == "" {
		return "", ErrInvalidArgument
	}

	if strings.ContainsRune(name, '\\') {
		return "", ErrInvalid
	}

	return path.Clean("/" + name), nil
}

// fromFSName converts a name as used by [io/fs] into a virtual path.
func fromFSName(name string) (string, error) {
	if !fs.ValidPath(name) {
		return "", ErrInvalid
	}

	if name == "." {
		return "/", nil
	}

	return "/" + name, nil
}

// relativeTo returns name relative to the mount prefix. The empty string
// denotes the prefix itself.
func relativeTo(prefix, name string) (string, bool) {
	if prefix == "/" {
		return strings.TrimPrefix(name, "/"), true
	}

	if name == prefix {
		return "", true
	}

	return strings.CutPrefix(name, prefix+"/")
}

// childOf returns the first path element of prefix below dir, if prefix is
// located underneath dir.
func childOf(dir, prefix string) (string, bool) {
	var (
		rest  string
		found bool
	)

	if dir == "/" {
		rest, found = strings.TrimPrefix(prefix, "/"), prefix != "/"
	} else {
		rest, found = strings.CutPrefix(prefix, dir+"/")
	}

	if !found || rest == "" {
		return "", false
	}

	child, _, _ := strings.Cut(rest, "/")

	return child, true
}

// archiveName normalizes a path as found in archive headers. It returns
// false for names that must not be added to the tree.
func archiveName(raw string) (string, bool) {
	name := path.Clean("/" + strings.ReplaceAll(raw, "\\", "/"))
	name = strings.TrimPrefix(name, "/")

	if name == "" || !fs.ValidPath(name) {
		return "", false
	}

	return name, true
}
