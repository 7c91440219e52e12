// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		name        string
		expected    string
		expectedErr error
	}{
		{name: "/", expected: "/"},
		{name: ".", expected: "/"},
		{name: "a/b", expected: "/a/b"},
		{name: "/a/../../b/", expected: "/b"},
		{name: "//a//b", expected: "/a/b"},
		{name: "", expectedErr: ErrInvalidArgument},
		{name: `a\b`, expectedErr: ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := CleanPath(tt.name)
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestRelativeTo(t *testing.T) {
	tests := []struct {
		prefix, name string
		expected     string
		within       bool
	}{
		{"/", "/", "", true},
		{"/", "/a/b", "a/b", true},
		{"/data", "/data", "", true},
		{"/data", "/data/a", "a", true},
		{"/data", "/database/a", "", false},
		{"/data", "/", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.prefix+" "+tt.name, func(t *testing.T) {
			actual, within := relativeTo(tt.prefix, tt.name)
			assert.Equal(t, tt.within, within)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestChildOf(t *testing.T) {
	tests := []struct {
		dir, prefix string
		expected    string
		isChild     bool
	}{
		{"/", "/", "", false},
		{"/", "/data", "data", true},
		{"/", "/data/sub", "data", true},
		{"/data", "/data/sub/deep", "sub", true},
		{"/data", "/data", "", false},
		{"/data", "/database", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.dir+" "+tt.prefix, func(t *testing.T) {
			actual, isChild := childOf(tt.dir, tt.prefix)
			assert.Equal(t, tt.isChild, isChild)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestArchiveName(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
		valid    bool
	}{
		{"file", "file", true},
		{"./dir/file", "dir/file", true},
		{"/abs/file", "abs/file", true},
		{"dir/", "dir", true},
		{`win\style`, "win/style", true},
		{"../escape", "escape", true},
		{".", "", false},
		{"./", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			actual, valid := archiveName(tt.raw)
			assert.Equal(t, tt.valid, valid)
			assert.Equal(t, tt.expected, actual)
		})
	}
}
