// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: MIT

package pack

import (
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/cavaliergopher/cpio"
)

// Permissions of packed entries. Directories match the read-only view the
// virtual file system presents.
const (
	dirPerm  = 0o555
	linkPerm = 0o777
)

var _ Writer = (*CPIOWriter)(nil)

// CPIOWriter packs entries into an SVR4 (newc) cpio archive that can be
// mounted again as memory image.
type CPIOWriter struct {
	archive *cpio.Writer
}

// NewCPIOWriter returns a [CPIOWriter] writing the archive to w. The archive
// is complete only after [CPIOWriter.Close].
func NewCPIOWriter(w io.Writer) *CPIOWriter {
	return &CPIOWriter{archive: cpio.NewWriter(w)}
}

// Close appends the trailer entry and flushes the archive.
func (w *CPIOWriter) Close() error {
	err := w.archive.Close()
	if err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return nil
}

// entry writes hdr followed by hdr.Size bytes from body, if any.
func (w *CPIOWriter) entry(hdr *cpio.Header, body io.Reader) error {
	err := w.archive.WriteHeader(hdr)
	if err != nil {
		return fmt.Errorf("header of %s: %w", hdr.Name, err)
	}

	if body == nil {
		return nil
	}

	_, err = io.CopyN(w.archive, body, hdr.Size)
	if err != nil {
		return fmt.Errorf("body of %s: %w", hdr.Name, err)
	}

	return nil
}

// WriteDirectory packs a read-only directory.
func (w *CPIOWriter) WriteDirectory(path string) error {
	return w.entry(&cpio.Header{
		Name:  path,
		Mode:  cpio.TypeDir | dirPerm,
		Links: 2,
	}, nil)
}

// WriteLink packs a symbolic link. The target is stored as body.
func (w *CPIOWriter) WriteLink(path, target string) error {
	return w.entry(&cpio.Header{
		Name:  path,
		Mode:  cpio.TypeSymlink | linkPerm,
		Size:  int64(len(target)),
		Links: 1,
	}, strings.NewReader(target))
}

// WriteRegular packs the content of source. The permission bits are taken
// from mode, or from source if mode is 0.
func (w *CPIOWriter) WriteRegular(path string, source fs.File, mode fs.FileMode) error {
	info, err := source.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}

	perm := info.Mode().Perm()
	if mode != 0 {
		perm = mode.Perm()
	}

	return w.entry(&cpio.Header{
		Name:    path,
		Mode:    cpio.TypeReg | cpio.FileMode(perm),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Links:   1,
	}, source)
}
