// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"io"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"
	"time"
)

const (
	defaultFileMode = 0o444
	defaultDirMode  = 0o555
	symlinkDepth    = 10
)

type node interface {
	mode() fs.FileMode
}

var (
	_ node = (*regularFile)(nil)
	_ node = symbolicLink("")
	_ node = directory(nil)
)

// openFunc returns a reader for the complete content of a regular file.
type openFunc func() (io.ReadCloser, error)

type regularFile struct {
	size    int64
	modTime time.Time
	open    openFunc
}

func (*regularFile) mode() fs.FileMode {
	return defaultFileMode
}

type symbolicLink string

func (symbolicLink) mode() fs.FileMode {
	return defaultFileMode | fs.ModeSymlink
}

type directory map[string]node

func (directory) mode() fs.FileMode {
	return defaultDirMode | fs.ModeDir
}

func (d directory) entries() []fs.DirEntry {
	entries := make([]fs.DirEntry, 0, len(d))

	for _, name := range slices.Sorted(maps.Keys(d)) {
		entries = append(entries, &dirEntry{
			name: name,
			node: d[name],
		})
	}

	return entries
}

// find looks up the node with the given slash separated name relative to d.
// Symbolic links are followed, relative link targets are resolved against
// the directory of the link.
func (d directory) find(name string) (node, error) {
	return d.findDepth(name, symlinkDepth)
}

func (d directory) findDepth(name string, depth uint) (node, error) {
	var (
		current node = d
		walked  string
	)

	if name == "" || name == "." {
		return d, nil
	}

	for elem := range strings.SplitSeq(name, "/") {
		var err error

		current, err = d.follow(current, path.Dir(walked), depth)
		if err != nil {
			return nil, err
		}

		dir, isDir := current.(directory)
		if !isDir {
			return nil, ErrNotExist
		}

		next, exists := dir[elem]
		if !exists {
			return nil, ErrNotExist
		}

		current = next
		walked = path.Join(walked, elem)
	}

	return d.follow(current, path.Dir(walked), depth)
}

func (d directory) follow(n node, linkDir string, depth uint) (node, error) {
	link, isLink := n.(symbolicLink)
	if !isLink {
		return n, nil
	}

	if depth == 0 {
		return nil, ErrSymlinkTooDeep
	}

	target := string(link)
	if !path.IsAbs(target) {
		target = path.Join("/", linkDir, target)
	}

	return d.findDepth(strings.TrimPrefix(path.Clean(target), "/"), depth-1)
}

// mkdirAll creates the directory with the given name and all missing
// parents.
func (d directory) mkdirAll(name string) (directory, error) {
	current := d

	if name == "" || name == "." {
		return current, nil
	}

	for elem := range strings.SplitSeq(name, "/") {
		next, exists := current[elem]
		if !exists {
			sub := make(directory)
			current[elem] = sub
			current = sub

			continue
		}

		sub, isDir := next.(directory)
		if !isDir {
			return nil, ErrNotDir
		}

		current = sub
	}

	return current, nil
}

// add places a non-directory node at the given name. Missing parents are
// created. Existing non-directory nodes are replaced, so the last entry of
// an archive wins.
func (d directory) add(name string, n node) error {
	dirName, fileName := path.Split(name)

	parent, err := d.mkdirAll(strings.TrimSuffix(dirName, "/"))
	if err != nil {
		return err
	}

	if existing, exists := parent[fileName]; exists {
		if _, isDir := existing.(directory); isDir {
			return ErrExist
		}
	}

	parent[fileName] = n

	return nil
}

// countFiles returns the number of regular files in the tree.
func (d directory) countFiles() int {
	var count int

	for _, n := range d {
		switch n := n.(type) {
		case directory:
			count += n.countFiles()
		case *regularFile:
			count++
		}
	}

	return count
}
