// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package hostfs_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/aibor/assetfs/internal/hostfs"
	"github.com/aibor/assetfs/memory"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRegularFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("resources", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "resources/test.txt", []byte("x"), 0o644))

	assert.True(t, hostfs.IsRegularFile(fsys, "resources/test.txt"))
	assert.False(t, hostfs.IsRegularFile(fsys, "resources"))
	assert.False(t, hostfs.IsRegularFile(fsys, "missing"))
}

func TestReadFile(t *testing.T) {
	content := []byte("Hello, World!\n")

	dir := t.TempDir()
	osPath := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(osPath, content, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), nil, 0o600))

	memFS := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFS, "test.txt", content, 0o644))
	require.NoError(t, afero.WriteFile(memFS, "empty", nil, 0o644))

	tests := []struct {
		name        string
		fsys        afero.Fs
		path        string
		mmap        bool
		allocated   int64
		expectedErr error
	}{
		{
			name:      "memory fs",
			fsys:      memFS,
			path:      "test.txt",
			allocated: 1,
		},
		{
			name:      "memory fs ignores mmap",
			fsys:      memFS,
			path:      "test.txt",
			mmap:      true,
			allocated: 1,
		},
		{
			name:      "os fs read",
			fsys:      afero.NewOsFs(),
			path:      osPath,
			allocated: 1,
		},
		{
			name: "os fs mmap",
			fsys: afero.NewOsFs(),
			path: osPath,
			mmap: true,
		},
		{
			name:        "empty file",
			fsys:        memFS,
			path:        "empty",
			expectedErr: hostfs.ErrEmptyFile,
		},
		{
			name:        "empty file mmap falls back",
			fsys:        afero.NewOsFs(),
			path:        filepath.Join(dir, "empty"),
			mmap:        true,
			expectedErr: hostfs.ErrEmptyFile,
		},
		{
			name:        "missing",
			fsys:        memFS,
			path:        "missing",
			expectedErr: os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := memory.NewTracker(nil)

			contents, err := hostfs.ReadFile(tt.fsys, tt.path, tracker, tt.mmap, nil)
			require.ErrorIs(t, err, tt.expectedErr)

			if tt.expectedErr != nil {
				assert.Zero(t, tracker.Outstanding())
				return
			}

			assert.Equal(t, content, contents.Bytes())
			assert.Equal(t, tt.allocated, tracker.Allocs())

			require.NoError(t, contents.Close())
			require.NoError(t, contents.Close())
			assert.Zero(t, tracker.Outstanding())
			assert.Zero(t, tracker.DoubleFrees())
		})
	}
}

func TestReadFileLogsMmapFallback(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	var output bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&output, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	_, err := hostfs.ReadFile(afero.NewOsFs(), empty, nil, true, logger)
	require.ErrorIs(t, err, hostfs.ErrEmptyFile)

	assert.Contains(t, output.String(), "Memory mapping failed")
	assert.Contains(t, output.String(), "path="+empty)
}
