// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibor/assetfs/media"
	"github.com/aibor/assetfs/memory"
)

func filledBuffer(t *testing.T, alloc memory.Allocator, content []byte, reserve int) *memory.Buffer {
	t.Helper()

	buf, err := memory.NewBuffer(alloc, len(content), reserve)
	require.NoError(t, err)

	copy(buf.Raw(), content)

	return buf
}

func TestTextFrom(t *testing.T) {
	tracker := memory.NewTracker(nil)

	buf := filledBuffer(t, tracker, []byte("Hello, World!\n"), 1)
	buf.Raw()[buf.Len()] = 'X'

	text, err := media.TextFrom(buf)
	require.NoError(t, err)

	assert.True(t, buf.Released(), "ownership moved")
	assert.Equal(t, "Hello, World!\n", text.String())
	assert.Equal(t, 14, text.Len())
	assert.Equal(t, []byte("Hello, World!\n\x00"), text.Terminated())

	require.NoError(t, text.Release())
	require.ErrorIs(t, text.Release(), memory.ErrReleased)

	assert.Nil(t, text.Bytes())
	assert.Nil(t, text.Terminated())
	assert.Zero(t, tracker.Outstanding())
	assert.Zero(t, tracker.DoubleFrees())
}

func TestTextFromFailure(t *testing.T) {
	t.Run("no reserve", func(t *testing.T) {
		buf := filledBuffer(t, nil, []byte("text"), 0)

		_, err := media.TextFrom(buf)
		require.ErrorIs(t, err, media.ErrNoTerminatorSpace)

		assert.False(t, buf.Released(), "ownership stays")
		require.NoError(t, buf.Release())
	})

	t.Run("nil", func(t *testing.T) {
		_, err := media.TextFrom(nil)
		require.ErrorIs(t, err, media.ErrInvalidArgument)
	})

	t.Run("released", func(t *testing.T) {
		buf := filledBuffer(t, nil, []byte("text"), 1)
		require.NoError(t, buf.Release())

		_, err := media.TextFrom(buf)
		require.ErrorIs(t, err, media.ErrInvalidArgument)
	})
}
