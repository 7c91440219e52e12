// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/aibor/assetfs/internal/hostfs"
	"github.com/aibor/assetfs/memory"
)

var (
	_ fs.FS        = (*FS)(nil)
	_ fs.StatFS    = (*FS)(nil)
	_ fs.ReadDirFS = (*FS)(nil)
)

// FS is a virtual file system composed of mounts.
//
// Mutating methods ([FS.Mount], [FS.MountFromMemory], [FS.Dismount] and
// [FS.Destroy]) must not be called concurrently with any other method.
// Read-only methods may be called concurrently with each other.
type FS struct {
	id     uuid.UUID
	alloc  memory.Allocator
	logger *slog.Logger
	source afero.Fs
	mounts []*mount
	closed bool
}

// New creates a new [FS] without any mounts.
func New(opts ...Option) *FS {
	fsys := &FS{
		id:     uuid.New(),
		alloc:  memory.Heap,
		logger: slog.Default(),
		source: afero.NewOsFs(),
	}

	for _, opt := range opts {
		opt(fsys)
	}

	return fsys
}

// ID returns the unique identity of the instance.
func (fsys *FS) ID() uuid.UUID {
	if fsys == nil {
		return uuid.Nil
	}

	return fsys.id
}

// isClosed reports whether fsys is destroyed. A nil FS counts as destroyed,
// so all methods fail with [ErrClosed] on it.
func (fsys *FS) isClosed() bool {
	return fsys == nil || fsys.closed
}

// Destroy dismounts everything and frees all memory the FS allocated. All
// handles become invalid. Any further call returns [ErrClosed].
func (fsys *FS) Destroy() error {
	if fsys.isClosed() {
		return ErrClosed
	}

	fsys.closed = true

	var errs []error

	for _, m := range slices.Backward(fsys.mounts) {
		errs = append(errs, m.close())
	}

	fsys.mounts = nil

	fsys.logger.Debug("Destroyed file system", slog.String("id", fsys.id.String()))

	return errors.Join(errs...)
}

// Mount mounts the host path source at the virtual prefix.
//
// Directories are mounted by path and files are read from the host on load.
// Regular files are read into memory and mounted as archive like with
// [FS.MountFromMemory]. It returns a [PathError] in case of errors.
func (fsys *FS) Mount(source, prefix string) error {
	err := fsys.mount(source, prefix)
	if err != nil {
		return &PathError{
			Op:   "mount",
			Path: source,
			Err:  err,
		}
	}

	return nil
}

func (fsys *FS) mount(source, prefix string) error {
	if fsys.isClosed() {
		return ErrClosed
	}

	if source == "" {
		return fmt.Errorf("%w: empty source", ErrInvalidArgument)
	}

	prefix, err := CleanPath(prefix)
	if err != nil {
		return fmt.Errorf("prefix: %w", err)
	}

	info, err := fsys.source.Stat(source)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !info.IsDir() {
		contents, err := hostfs.ReadFile(fsys.source, source, fsys.alloc, false, fsys.logger)
		if err != nil {
			return err //nolint:wrapcheck
		}

		err = fsys.mountMemory(contents.Bytes(), prefix,
			WithLabel(source), WithRelease(contents.Close))
		if err != nil {
			_ = contents.Close()
			return err
		}

		return nil
	}

	m := newMount(source, prefix, KindDirectory)

	err = fsys.readDirectory(source, m)
	if err != nil {
		_ = m.discard()
		return err
	}

	fsys.activate(m)

	return nil
}

// MountFromMemory mounts the archive in data at the virtual prefix.
//
// The archive format is detected from the content, see [DetectFormat]. data
// must not be modified or freed until the mount is dismounted. Use
// [WithRelease] to get notified. It returns a [PathError] in case of errors.
func (fsys *FS) MountFromMemory(data []byte, prefix string, opts ...MountOption) error {
	err := fsys.mountMemory(data, prefix, opts...)
	if err != nil {
		return &PathError{
			Op:   "mount",
			Path: prefix,
			Err:  err,
		}
	}

	return nil
}

func (fsys *FS) mountMemory(data []byte, prefix string, opts ...MountOption) error {
	if fsys.isClosed() {
		return ErrClosed
	}

	if len(data) == 0 {
		return fmt.Errorf("%w: empty memory image", ErrInvalidArgument)
	}

	prefix, err := CleanPath(prefix)
	if err != nil {
		return fmt.Errorf("prefix: %w", err)
	}

	m := newMount(MemoryLabel, prefix, KindMemory)

	for _, opt := range opts {
		opt(m)
	}

	err = fsys.readArchive(data, m)
	if err != nil {
		_ = m.discard()
		return err
	}

	fsys.activate(m)

	return nil
}

func (fsys *FS) activate(m *mount) {
	m.active = true
	m.info.Files = m.root.countFiles()
	fsys.mounts = append(fsys.mounts, m)

	fsys.logger.Debug("Mounted",
		slog.String("source", m.info.Source),
		slog.String("prefix", m.info.Prefix),
		slog.String("kind", m.info.Kind.String()),
		slog.String("format", m.info.Format.String()),
		slog.Int("files", m.info.Files),
	)
}

// Dismount removes the newest mount of source at prefix. Memory mounts are
// matched by their label. Handles resolved from the mount become invalid.
func (fsys *FS) Dismount(source, prefix string) error {
	err := fsys.dismount(source, prefix)
	if err != nil {
		return &PathError{
			Op:   "dismount",
			Path: source,
			Err:  err,
		}
	}

	return nil
}

func (fsys *FS) dismount(source, prefix string) error {
	if fsys.isClosed() {
		return ErrClosed
	}

	prefix, err := CleanPath(prefix)
	if err != nil {
		return fmt.Errorf("prefix: %w", err)
	}

	for idx, m := range slices.Backward(fsys.mounts) {
		if m.info.Source != source || m.info.Prefix != prefix {
			continue
		}

		fsys.mounts = slices.Delete(fsys.mounts, idx, idx+1)

		fsys.logger.Debug("Dismounted",
			slog.String("source", source),
			slog.String("prefix", prefix),
		)

		return m.close()
	}

	return ErrNotMounted
}

// Mounts returns information about all active mounts, oldest first.
func (fsys *FS) Mounts() []MountInfo {
	if fsys.isClosed() {
		return nil
	}

	infos := make([]MountInfo, 0, len(fsys.mounts))

	for _, m := range fsys.mounts {
		infos = append(infos, m.info)
	}

	return infos
}

// Resolve looks up the regular file with the given virtual path. Mounts are
// searched newest first.
//
// It returns a [PathError] in case of errors. The error wraps [ErrNotExist]
// if no mount provides the file.
func (fsys *FS) Resolve(name string) (Handle, error) {
	handle, err := fsys.resolve(name)
	if err != nil {
		return Handle{}, &PathError{
			Op:   "resolve",
			Path: name,
			Err:  err,
		}
	}

	return handle, nil
}

func (fsys *FS) resolve(name string) (Handle, error) {
	if fsys.isClosed() {
		return Handle{}, ErrClosed
	}

	vpath, err := CleanPath(name)
	if err != nil {
		return Handle{}, err
	}

	m, n, err := fsys.locate(vpath)
	if err != nil {
		return Handle{}, err
	}

	file, isRegular := n.(*regularFile)
	if !isRegular {
		return Handle{}, ErrIsDir
	}

	return Handle{
		fsID:  fsys.id,
		mount: m,
		file:  file,
		name:  vpath,
	}, nil
}

// Size returns the content size of the file referred to by h. It returns -1
// if the handle is not valid for this FS.
func (fsys *FS) Size(h Handle) int64 {
	if fsys.check(h) != nil {
		return -1
	}

	return h.file.size
}

// Load reads the complete content of the file referred to by h into buf and
// returns the number of bytes read. buf must be at least [FS.Size] bytes
// long. Bytes beyond the file size are left untouched.
//
// It returns a [PathError] in case of errors.
func (fsys *FS) Load(h Handle, buf []byte) (int, error) {
	n, err := fsys.load(h, buf)
	if err != nil {
		return n, &PathError{
			Op:   "load",
			Path: h.name,
			Err:  err,
		}
	}

	return n, nil
}

func (fsys *FS) load(h Handle, buf []byte) (int, error) {
	err := fsys.check(h)
	if err != nil {
		return 0, err
	}

	size := h.file.size
	if int64(len(buf)) < size {
		return 0, io.ErrShortBuffer
	}

	reader, err := h.file.open()
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	return io.ReadFull(reader, buf[:size]) //nolint:wrapcheck
}

func (fsys *FS) check(h Handle) error {
	switch {
	case fsys.isClosed():
		return ErrClosed
	case h.IsZero(), h.fsID != fsys.id, !h.mount.active:
		return ErrInvalid
	default:
		return nil
	}
}

// Open implements [fs.FS]. Symbolic links inside archives are followed.
// Directories list the merged entries of all mounts.
func (fsys *FS) Open(name string) (fs.File, error) {
	file, err := fsys.open(name)
	if err != nil {
		return nil, &PathError{
			Op:   "open",
			Path: name,
			Err:  err,
		}
	}

	return file, nil
}

func (fsys *FS) open(name string) (fs.File, error) {
	vpath, n, err := fsys.lookup(name)
	if err != nil {
		return nil, err
	}

	file := &openFile{
		info: fileInfo{dirEntry{name: name, node: n}},
	}

	switch n := n.(type) {
	case *regularFile:
		file.reader, err = n.open()
		if err != nil {
			return nil, err
		}
	case directory:
		file.entries = fsys.mergedEntries(vpath)
	}

	return file, nil
}

// Stat implements [fs.StatFS].
func (fsys *FS) Stat(name string) (fs.FileInfo, error) {
	_, n, err := fsys.lookup(name)
	if err != nil {
		return nil, &PathError{
			Op:   "stat",
			Path: name,
			Err:  err,
		}
	}

	return &fileInfo{dirEntry{name: name, node: n}}, nil
}

// ReadDir implements [fs.ReadDirFS]. Entries are sorted by name.
func (fsys *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	vpath, n, err := fsys.lookup(name)
	if err == nil && !n.mode().IsDir() {
		err = ErrNotDir
	}

	if err != nil {
		return nil, &PathError{
			Op:   "readdir",
			Path: name,
			Err:  err,
		}
	}

	return fsys.mergedEntries(vpath), nil
}

// lookup finds the node for an [io/fs] name. Ancestors of mount prefixes are
// reported as empty directories.
func (fsys *FS) lookup(name string) (string, node, error) {
	if fsys.isClosed() {
		return "", nil, ErrClosed
	}

	vpath, err := fromFSName(name)
	if err != nil {
		return "", nil, err
	}

	_, n, err := fsys.locate(vpath)
	if errors.Is(err, ErrNotExist) && fsys.isMountAncestor(vpath) {
		return vpath, make(directory), nil
	}

	if err != nil {
		return "", nil, err
	}

	return vpath, n, nil
}

// locate returns the newest node found at vpath and the mount providing it.
// Regular files take precedence over directories.
func (fsys *FS) locate(vpath string) (*mount, node, error) {
	var (
		dirMount *mount
		dirNode  node
	)

	for _, m := range slices.Backward(fsys.mounts) {
		rel, within := relativeTo(m.info.Prefix, vpath)
		if !within {
			continue
		}

		n, err := m.root.find(rel)
		if errors.Is(err, ErrNotExist) {
			continue
		}

		if err != nil {
			return nil, nil, err
		}

		if !n.mode().IsDir() {
			return m, n, nil
		}

		if dirNode == nil {
			dirMount, dirNode = m, n
		}
	}

	if dirNode == nil {
		return nil, nil, ErrNotExist
	}

	return dirMount, dirNode, nil
}

func (fsys *FS) isMountAncestor(vpath string) bool {
	if vpath == "/" {
		return true
	}

	for _, m := range fsys.mounts {
		if _, isChild := childOf(vpath, m.info.Prefix); isChild {
			return true
		}
	}

	return false
}

// mergedEntries lists the directory vpath over all mounts. Entries of newer
// mounts shadow entries with the same name of older mounts.
func (fsys *FS) mergedEntries(vpath string) []fs.DirEntry {
	merged := make(map[string]node)

	for _, m := range slices.Backward(fsys.mounts) {
		if child, isChild := childOf(vpath, m.info.Prefix); isChild {
			if _, exists := merged[child]; !exists {
				merged[child] = make(directory)
			}

			continue
		}

		rel, within := relativeTo(m.info.Prefix, vpath)
		if !within {
			continue
		}

		n, err := m.root.find(rel)
		if err != nil {
			continue
		}

		dir, isDir := n.(directory)
		if !isDir {
			continue
		}

		for name, child := range dir {
			if _, exists := merged[name]; !exists {
				merged[name] = child
			}
		}
	}

	return directory(merged).entries()
}

// Files returns the virtual paths of all regular files, sorted.
func (fsys *FS) Files() ([]string, error) {
	if fsys.isClosed() {
		return nil, ErrClosed
	}

	seen := make(map[string]struct{})

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.Type().IsRegular() {
			seen["/"+name] = struct{}{}
		}

		return nil
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return slices.Sorted(maps.Keys(seen)), nil
}
