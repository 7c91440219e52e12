// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"path"
	"strings"

	"github.com/aibor/assetfs/memory"
)

// Image is a decoded image along with the name of its format.
type Image struct {
	image.Image

	Format string
}

// IsValid reports whether the image holds decoded data.
func (i Image) IsValid() bool {
	return i.Image != nil
}

// Width returns the width in pixels. It is 0 for invalid images.
func (i Image) Width() int {
	if !i.IsValid() {
		return 0
	}

	return i.Bounds().Dx()
}

// Height returns the height in pixels. It is 0 for invalid images.
func (i Image) Height() int {
	if !i.IsValid() {
		return 0
	}

	return i.Bounds().Dy()
}

// FileExtension returns the lower case extension of name including the
// leading dot, like ".png".
func FileExtension(name string) string {
	return strings.ToLower(path.Ext(name))
}

// Decode decodes an image from r with the decoder registered for the given
// file extension.
func Decode(ext string, r io.Reader) (Image, error) {
	entry, exists := lookupDecoder(ext)
	if !exists {
		return Image{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	img, err := entry.decode(r)
	if err != nil {
		return Image{}, fmt.Errorf("decode %s: %w", entry.format, err)
	}

	if img == nil {
		return Image{}, fmt.Errorf("decode %s: %w: no image", entry.format, ErrInvalidArgument)
	}

	return Image{Image: img, Format: entry.format}, nil
}

// ImageFrom decodes the content of buf as image. The decoder is selected by
// the extension of name.
//
// ImageFrom takes ownership of buf and releases it exactly once before
// returning, regardless of the decoding result.
func ImageFrom(name string, buf *memory.Buffer) (img Image, err error) {
	if buf.Released() {
		return Image{}, fmt.Errorf("%w: nil or released buffer", ErrInvalidArgument)
	}

	defer func() {
		err = errors.Join(err, buf.Release())
	}()

	return Decode(FileExtension(name), bytes.NewReader(buf.Bytes()))
}
