// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bridge_test

import (
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibor/assetfs/internal/bridge"
	"github.com/aibor/assetfs/memory"
	"github.com/aibor/assetfs/vfs"
)

const testText = "Hello, World!\n"

// shortSource reports a larger size than it loads.
type shortSource struct {
	*vfs.FS
}

func (s shortSource) Load(h vfs.Handle, buf []byte) (int, error) {
	n, err := s.FS.Load(h, buf)
	return n / 2, err
}

func newFS(t *testing.T) *vfs.FS {
	t.Helper()

	source := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(source, "/assets/resources/test.txt", []byte(testText), 0o644))
	require.NoError(t, afero.WriteFile(source, "/assets/resources/empty.txt", nil, 0o644))

	fsys := vfs.New(vfs.WithSourceFs(source))
	t.Cleanup(func() { _ = fsys.Destroy() })

	require.NoError(t, fsys.Mount("/assets", "/"))

	return fsys
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name            string
		reserve         int
		expectedLen     int
		expectedCap     int
		expectedTrailer []byte
	}{
		{
			name:            "generic",
			reserve:         0,
			expectedLen:     14,
			expectedCap:     14,
			expectedTrailer: []byte{},
		},
		{
			name:            "text",
			reserve:         1,
			expectedLen:     14,
			expectedCap:     15,
			expectedTrailer: []byte{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := memory.NewTracker(nil)

			buf, err := bridge.Load(newFS(t), tracker, "/resources/test.txt", tt.reserve)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedLen, buf.Len())
			assert.Equal(t, tt.expectedCap, buf.Cap())
			assert.Equal(t, testText, string(buf.Bytes()))
			assert.Equal(t, tt.expectedTrailer, buf.Raw()[buf.Len():])
			assert.Equal(t, 1, tracker.Outstanding())

			require.NoError(t, buf.Release())
			assert.Zero(t, tracker.Outstanding())
			assert.Zero(t, tracker.DoubleFrees())
		})
	}
}

func TestLoadFailure(t *testing.T) {
	fsys := newFS(t)

	destroyed := vfs.New()
	require.NoError(t, destroyed.Destroy())

	tests := []struct {
		name        string
		src         bridge.Source
		alloc       memory.Allocator
		path        string
		expectedErr error
	}{
		{
			name:        "no instance",
			path:        "/resources/test.txt",
			expectedErr: bridge.ErrNoInstance,
		},
		{
			name:        "nil instance",
			src:         (*vfs.FS)(nil),
			path:        "/resources/test.txt",
			expectedErr: bridge.ErrNoInstance,
		},
		{
			name:        "destroyed instance",
			src:         destroyed,
			path:        "/resources/test.txt",
			expectedErr: vfs.ErrClosed,
		},
		{
			name:        "empty path",
			src:         fsys,
			expectedErr: bridge.ErrInvalidArgument,
		},
		{
			name:        "not found",
			src:         fsys,
			path:        "/resources/missing.txt",
			expectedErr: vfs.ErrNotExist,
		},
		{
			name:        "empty file",
			src:         fsys,
			path:        "/resources/empty.txt",
			expectedErr: bridge.ErrUnreadable,
		},
		{
			name:        "allocation failure",
			src:         fsys,
			alloc:       memory.NewLimit(nil, 8),
			path:        "/resources/test.txt",
			expectedErr: memory.ErrAllocation,
		},
		{
			name:        "short load",
			src:         shortSource{fsys},
			path:        "/resources/test.txt",
			expectedErr: bridge.ErrUnreadable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := memory.NewTracker(tt.alloc)

			buf, err := bridge.Load(tt.src, tracker, tt.path, 1)
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, buf)

			assert.Zero(t, tracker.Outstanding(), "outstanding allocations")
			assert.Zero(t, tracker.DoubleFrees(), "double frees")
		})
	}
}

func TestLoadRepeated(t *testing.T) {
	fsys := newFS(t)
	tracker := memory.NewTracker(nil)

	for range 3 {
		buf, err := bridge.Load(fsys, tracker, "resources/test.txt", 0)
		require.NoError(t, err)
		assert.Equal(t, testText, string(buf.Bytes()))
		require.NoError(t, buf.Release())
	}

	assert.EqualValues(t, 3, tracker.Allocs())
	assert.EqualValues(t, 3, tracker.Frees())
}

func TestLoadShortReportsCount(t *testing.T) {
	tracker := memory.NewTracker(nil)

	_, err := bridge.Load(shortSource{newFS(t)}, tracker, "/resources/test.txt", 0)
	require.ErrorIs(t, err, bridge.ErrUnreadable)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.ErrorContains(t, err, "read 7 of 14 bytes")
	assert.Zero(t, tracker.Outstanding())
}
