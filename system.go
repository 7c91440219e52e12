// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package assetfs

import (
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/aibor/assetfs/internal/bridge"
	"github.com/aibor/assetfs/internal/hostfs"
	"github.com/aibor/assetfs/media"
	"github.com/aibor/assetfs/memory"
	"github.com/aibor/assetfs/vfs"
)

// textReserve is the number of bytes reserved behind text content for the
// terminator.
const textReserve = 1

// System manages the lifecycle of a virtual file system instance and loads
// assets from it.
//
// A System is not safe for concurrent use.
type System struct {
	fsys   *vfs.FS
	alloc  memory.Allocator
	logger *slog.Logger
	hostFS afero.Fs
	mmap   bool
}

// New creates a new [System] without file system instance. Call
// [System.Init] before use.
func New(opts ...Option) *System {
	s := &System{
		alloc:  memory.Heap,
		logger: slog.Default(),
		hostFS: afero.NewOsFs(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Init creates a fresh file system instance. An existing instance is closed
// before. If both source and prefix are given, source is mounted at prefix.
// If that mount fails, the new instance is closed again and the error is
// returned.
func (s *System) Init(source, prefix string) error {
	s.Close()

	s.fsys = vfs.New(
		vfs.WithAllocator(s.alloc),
		vfs.WithLogger(s.logger),
		vfs.WithSourceFs(s.hostFS),
	)

	if source == "" || prefix == "" {
		return nil
	}

	err := s.Mount(source, prefix)
	if err != nil {
		s.Close()
		return err
	}

	return nil
}

// IsReady reports whether a file system instance exists.
func (s *System) IsReady() bool {
	return s.fsys != nil
}

// Close destroys the file system instance, if any. It is safe to call
// multiple times.
func (s *System) Close() {
	if s.fsys == nil {
		return
	}

	err := s.fsys.Destroy()
	if err != nil {
		s.logger.Warn("Failed to release file system resources", slog.Any("error", err))
	}

	s.fsys = nil
}

// FS returns the file system instance. It is nil unless the System is
// ready.
func (s *System) FS() *vfs.FS {
	return s.fsys
}

// Allocator returns the allocator used for loaded files.
func (s *System) Allocator() memory.Allocator {
	return s.alloc
}

// Mounts returns the active mounts. It is empty unless the System is ready.
func (s *System) Mounts() []vfs.MountInfo {
	if s.fsys == nil {
		return nil
	}

	return s.fsys.Mounts()
}

// Mount mounts the host path source at the virtual prefix.
//
// Regular files are read completely into memory and mounted as archive.
// Everything else is mounted by path, which supports directories. Failures
// leave existing mounts untouched.
func (s *System) Mount(source, prefix string) error {
	if source == "" || prefix == "" {
		s.logger.Error("Mount requires source and prefix",
			slog.String("source", source),
			slog.String("prefix", prefix),
		)

		return fmt.Errorf("%w: source %q, prefix %q", ErrInvalidArgument, source, prefix)
	}

	if s.fsys == nil {
		return ErrNotReady
	}

	err := s.mount(source, prefix)
	if err != nil {
		s.logger.Error("Failed to mount",
			slog.String("source", source),
			slog.String("prefix", prefix),
			slog.Any("error", err),
		)

		return err
	}

	return nil
}

func (s *System) mount(source, prefix string) error {
	if !hostfs.IsRegularFile(s.hostFS, source) {
		return s.fsys.Mount(source, prefix) //nolint:wrapcheck
	}

	contents, err := hostfs.ReadFile(s.hostFS, source, s.alloc, s.mmap, s.logger)
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}

	err = s.fsys.MountFromMemory(contents.Bytes(), prefix,
		vfs.WithLabel(source),
		vfs.WithRelease(contents.Close),
	)
	if err != nil {
		_ = contents.Close()
		return err //nolint:wrapcheck
	}

	return nil
}

// Dismount removes the newest mount of source at prefix.
func (s *System) Dismount(source, prefix string) error {
	if s.fsys == nil {
		return ErrNotReady
	}

	return s.fsys.Dismount(source, prefix) //nolint:wrapcheck
}

// LoadFileData loads the complete content of the file with the given virtual
// path. The caller owns the returned buffer and must release it. Empty files
// fail with [ErrUnreadable].
func (s *System) LoadFileData(name string) (*memory.Buffer, error) {
	return s.load(name, 0)
}

// LoadFileText loads the file with the given virtual path as NUL terminated
// text. The caller owns the returned text and must release it.
func (s *System) LoadFileText(name string) (*media.Text, error) {
	buf, err := s.load(name, textReserve)
	if err != nil {
		return nil, err
	}

	text, err := media.TextFrom(buf)
	if err != nil {
		_ = buf.Release()
		return nil, err //nolint:wrapcheck
	}

	return text, nil
}

// LoadImage loads and decodes the image file with the given virtual path.
// The decoder is selected by file extension. The intermediate buffer is
// released before returning.
func (s *System) LoadImage(name string) (media.Image, error) {
	buf, err := s.load(name, 0)
	if err != nil {
		return media.Image{}, err
	}

	img, err := media.ImageFrom(name, buf)
	if err != nil {
		s.logger.Warn("Failed to decode image",
			slog.String("path", name),
			slog.Any("error", err),
		)

		return media.Image{}, err //nolint:wrapcheck
	}

	return img, nil
}

func (s *System) load(name string, reserve int) (*memory.Buffer, error) {
	if s.fsys == nil {
		return nil, ErrNotReady
	}

	buf, err := bridge.Load(s.fsys, s.alloc, name, reserve)
	if err != nil {
		s.logger.Debug("Failed to load file",
			slog.String("path", name),
			slog.Any("error", err),
		)

		return nil, err //nolint:wrapcheck
	}

	return buf, nil
}

// FileExists reports whether a regular file with the given virtual path
// exists in any mount.
func (s *System) FileExists(name string) bool {
	if s.fsys == nil {
		return false
	}

	_, err := s.fsys.Resolve(name)

	return err == nil
}

// DirectoryFiles returns the virtual paths of the regular files directly
// inside the virtual directory dir, sorted by name.
func (s *System) DirectoryFiles(dir string) ([]string, error) {
	if s.fsys == nil {
		return nil, ErrNotReady
	}

	vpath, err := vfs.CleanPath(dir)
	if err != nil {
		return nil, &vfs.PathError{Op: "readdir", Path: dir, Err: err}
	}

	fsName := strings.TrimPrefix(vpath, "/")
	if fsName == "" {
		fsName = "."
	}

	entries, err := s.fsys.ReadDir(fsName)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	files := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, path.Join(vpath, entry.Name()))
		}
	}

	return files, nil
}
