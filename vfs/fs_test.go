// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs_test

import (
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibor/assetfs/vfs"
)

func hostFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	hostFS := afero.NewMemMapFs()

	for name, content := range files {
		require.NoError(t, afero.WriteFile(hostFS, name, []byte(content), 0o644))
	}

	return hostFS
}

func TestMountDirectory(t *testing.T) {
	source := hostFS(t, map[string]string{
		"/assets/resources/test.txt":  testText,
		"/assets/resources/sub/x.txt": "x",
	})

	fsys := vfs.New(vfs.WithSourceFs(source))
	t.Cleanup(func() { _ = fsys.Destroy() })

	require.NoError(t, fsys.Mount("/assets", "/"))

	assert.Equal(t, []vfs.MountInfo{{
		Source: "/assets",
		Prefix: "/",
		Kind:   vfs.KindDirectory,
		Files:  2,
	}}, fsys.Mounts())

	assert.Equal(t, testText, string(loadAll(t, fsys, "/resources/test.txt")))
	assert.Equal(t, testText, string(loadAll(t, fsys, "resources/./sub/../test.txt")))
	assert.Equal(t, "x", string(loadAll(t, fsys, "/resources/sub/x.txt")))
}

func TestMountDirectoryReadsOnLoad(t *testing.T) {
	source := hostFS(t, map[string]string{
		"/assets/file": "old",
	})

	fsys := vfs.New(vfs.WithSourceFs(source))
	t.Cleanup(func() { _ = fsys.Destroy() })

	require.NoError(t, fsys.Mount("/assets", "/data"))

	handle, err := fsys.Resolve("/data/file")
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(source, "/assets/file", []byte("new"), 0o644))

	buf := make([]byte, fsys.Size(handle))
	_, err = fsys.Load(handle, buf)
	require.NoError(t, err)
	assert.Equal(t, "new", string(buf))
}

func TestMountArchiveFile(t *testing.T) {
	source := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(source, "/assets.tar", buildTar(t), 0o644))

	fsys := vfs.New(vfs.WithSourceFs(source))
	t.Cleanup(func() { _ = fsys.Destroy() })

	require.NoError(t, fsys.Mount("/assets.tar", "/pak"))

	mounts := fsys.Mounts()
	require.Len(t, mounts, 1)
	assert.Equal(t, "/assets.tar", mounts[0].Source)
	assert.Equal(t, vfs.KindMemory, mounts[0].Kind)
	assert.Equal(t, vfs.FormatTar, mounts[0].Format)

	assert.Equal(t, testText, string(loadAll(t, fsys, "/pak/"+testTextPath)))

	require.NoError(t, fsys.Dismount("/assets.tar", "/pak"))
	assert.Empty(t, fsys.Mounts())
}

func TestMountFailure(t *testing.T) {
	source := hostFS(t, map[string]string{
		"/assets/file": "content",
		"/plain.txt":   "no archive",
	})

	tests := []struct {
		name        string
		source      string
		prefix      string
		expectedErr error
	}{
		{
			name:        "empty source",
			prefix:      "/",
			expectedErr: vfs.ErrInvalidArgument,
		},
		{
			name:        "empty prefix",
			source:      "/assets",
			expectedErr: vfs.ErrInvalidArgument,
		},
		{
			name:        "invalid prefix",
			source:      "/assets",
			prefix:      `\data`,
			expectedErr: vfs.ErrInvalid,
		},
		{
			name:        "missing source",
			source:      "/missing",
			prefix:      "/",
			expectedErr: vfs.ErrNotExist,
		},
		{
			name:        "file not an archive",
			source:      "/plain.txt",
			prefix:      "/",
			expectedErr: vfs.ErrUnknownFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := vfs.New(vfs.WithSourceFs(source))
			t.Cleanup(func() { _ = fsys.Destroy() })

			err := fsys.Mount(tt.source, tt.prefix)
			require.ErrorIs(t, err, tt.expectedErr)

			var pathErr *vfs.PathError
			require.ErrorAs(t, err, &pathErr)
			assert.Equal(t, "mount", pathErr.Op)

			assert.Empty(t, fsys.Mounts())
		})
	}
}

func TestShadowing(t *testing.T) {
	source := hostFS(t, map[string]string{
		"/base/resources/test.txt":  "base",
		"/base/resources/only.txt":  "only base",
		"/patch/resources/test.txt": "patch",
	})

	fsys := vfs.New(vfs.WithSourceFs(source))
	t.Cleanup(func() { _ = fsys.Destroy() })

	require.NoError(t, fsys.Mount("/base", "/"))
	require.NoError(t, fsys.Mount("/patch", "/"))

	assert.Equal(t, "patch", string(loadAll(t, fsys, "/resources/test.txt")))
	assert.Equal(t, "only base", string(loadAll(t, fsys, "/resources/only.txt")))

	entries, err := fsys.ReadDir("resources")
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	assert.Equal(t, []string{"only.txt", "test.txt"}, names)

	require.NoError(t, fsys.Dismount("/patch", "/"))

	assert.Equal(t, "base", string(loadAll(t, fsys, "/resources/test.txt")))

	err = fsys.Dismount("/patch", "/")
	require.ErrorIs(t, err, vfs.ErrNotMounted)
}

func TestHandleInvalidation(t *testing.T) {
	source := hostFS(t, map[string]string{
		"/assets/file": "content",
	})

	t.Run("dismount", func(t *testing.T) {
		fsys := vfs.New(vfs.WithSourceFs(source))
		t.Cleanup(func() { _ = fsys.Destroy() })

		require.NoError(t, fsys.Mount("/assets", "/"))

		handle, err := fsys.Resolve("/file")
		require.NoError(t, err)
		assert.Equal(t, "/file", handle.Name())
		assert.EqualValues(t, 7, fsys.Size(handle))

		require.NoError(t, fsys.Dismount("/assets", "/"))

		assert.EqualValues(t, -1, fsys.Size(handle))

		_, err = fsys.Load(handle, make([]byte, 7))
		require.ErrorIs(t, err, vfs.ErrInvalid)

		_, err = fsys.Resolve("/file")
		require.ErrorIs(t, err, vfs.ErrNotExist)
	})

	t.Run("destroy", func(t *testing.T) {
		fsys := vfs.New(vfs.WithSourceFs(source))

		require.NoError(t, fsys.Mount("/assets", "/"))

		handle, err := fsys.Resolve("/file")
		require.NoError(t, err)

		require.NoError(t, fsys.Destroy())

		assert.EqualValues(t, -1, fsys.Size(handle))

		_, err = fsys.Load(handle, make([]byte, 7))
		require.ErrorIs(t, err, vfs.ErrClosed)

		_, err = fsys.Resolve("/file")
		require.ErrorIs(t, err, vfs.ErrClosed)

		require.ErrorIs(t, fsys.Mount("/assets", "/"), vfs.ErrClosed)
		require.ErrorIs(t, fsys.Destroy(), vfs.ErrClosed)
	})

	t.Run("other instance", func(t *testing.T) {
		first := vfs.New(vfs.WithSourceFs(source))
		t.Cleanup(func() { _ = first.Destroy() })

		second := vfs.New(vfs.WithSourceFs(source))
		t.Cleanup(func() { _ = second.Destroy() })

		require.NoError(t, first.Mount("/assets", "/"))
		require.NoError(t, second.Mount("/assets", "/"))
		assert.NotEqual(t, first.ID(), second.ID())

		handle, err := first.Resolve("/file")
		require.NoError(t, err)

		assert.EqualValues(t, -1, second.Size(handle))
	})

	t.Run("zero handle", func(t *testing.T) {
		fsys := vfs.New(vfs.WithSourceFs(source))
		t.Cleanup(func() { _ = fsys.Destroy() })

		var handle vfs.Handle

		assert.True(t, handle.IsZero())
		assert.EqualValues(t, -1, fsys.Size(handle))
	})
}

func TestNilFS(t *testing.T) {
	var fsys *vfs.FS

	require.NotPanics(t, func() {
		assert.Equal(t, uuid.Nil, fsys.ID())
		assert.Nil(t, fsys.Mounts())

		_, err := fsys.Resolve("/file")
		require.ErrorIs(t, err, vfs.ErrClosed)

		assert.EqualValues(t, -1, fsys.Size(vfs.Handle{}))

		_, err = fsys.Load(vfs.Handle{}, make([]byte, 1))
		require.ErrorIs(t, err, vfs.ErrClosed)

		_, err = fsys.Open(".")
		require.ErrorIs(t, err, vfs.ErrClosed)

		_, err = fsys.Stat("file")
		require.ErrorIs(t, err, vfs.ErrClosed)

		_, err = fsys.ReadDir(".")
		require.ErrorIs(t, err, vfs.ErrClosed)

		_, err = fsys.Files()
		require.ErrorIs(t, err, vfs.ErrClosed)

		require.ErrorIs(t, fsys.Mount("/assets", "/"), vfs.ErrClosed)
		require.ErrorIs(t, fsys.MountFromMemory([]byte("PK\x05\x06"), "/"), vfs.ErrClosed)
		require.ErrorIs(t, fsys.Dismount("/assets", "/"), vfs.ErrClosed)
		require.ErrorIs(t, fsys.Destroy(), vfs.ErrClosed)
	})
}

func TestResolveFailure(t *testing.T) {
	source := hostFS(t, map[string]string{
		"/assets/dir/file": "content",
	})

	fsys := vfs.New(vfs.WithSourceFs(source))
	t.Cleanup(func() { _ = fsys.Destroy() })

	require.NoError(t, fsys.Mount("/assets", "/mnt"))

	tests := []struct {
		name        string
		path        string
		expectedErr error
	}{
		{
			name:        "empty",
			expectedErr: vfs.ErrInvalidArgument,
		},
		{
			name:        "missing",
			path:        "/mnt/dir/missing",
			expectedErr: vfs.ErrNotExist,
		},
		{
			name:        "outside mount",
			path:        "/dir/file",
			expectedErr: vfs.ErrNotExist,
		},
		{
			name:        "directory",
			path:        "/mnt/dir",
			expectedErr: vfs.ErrIsDir,
		},
		{
			name:        "below file",
			path:        "/mnt/dir/file/sub",
			expectedErr: vfs.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fsys.Resolve(tt.path)
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestLoadShortBuffer(t *testing.T) {
	source := hostFS(t, map[string]string{
		"/assets/file": "content",
	})

	fsys := vfs.New(vfs.WithSourceFs(source))
	t.Cleanup(func() { _ = fsys.Destroy() })

	require.NoError(t, fsys.Mount("/assets", "/"))

	handle, err := fsys.Resolve("/file")
	require.NoError(t, err)

	_, err = fsys.Load(handle, make([]byte, 3))
	require.ErrorIs(t, err, io.ErrShortBuffer)

	buf := []byte("0123456789")
	n, err := fsys.Load(handle, buf)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, "content789", string(buf))
}

func TestFSInterface(t *testing.T) {
	source := hostFS(t, map[string]string{
		"/assets/resources/test.txt": testText,
		"/assets/resources/a/b.txt":  "b",
	})

	fsys := vfs.New(vfs.WithSourceFs(source))
	t.Cleanup(func() { _ = fsys.Destroy() })

	require.NoError(t, fsys.Mount("/assets", "/game/data"))
	require.NoError(t, fsys.MountFromMemory(buildZip(t), "/game/pak"))

	err := fstest.TestFS(fsys,
		"game/data/resources/test.txt",
		"game/data/resources/a/b.txt",
		"game/pak/resources/sub/a.bin",
		"game/pak/resources/dir",
	)
	require.NoError(t, err)

	entries, err := fs.ReadDir(fsys, ".")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "game", entries[0].Name())
	assert.True(t, entries[0].IsDir())

	files, err := fsys.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/game/data/resources/a/b.txt",
		"/game/data/resources/test.txt",
		"/game/pak/resources/empty.file",
		"/game/pak/resources/sub/a.bin",
		"/game/pak/resources/sub/b.bin",
		"/game/pak/resources/test.txt",
	}, files)

	_, err = fsys.Open("/game")
	require.ErrorIs(t, err, vfs.ErrInvalid)

	_, err = fsys.ReadDir("game/data/resources/test.txt")
	require.ErrorIs(t, err, vfs.ErrNotDir)
}
