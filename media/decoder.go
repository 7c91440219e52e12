// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"slices"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// DecodeFunc decodes an image from r.
type DecodeFunc func(r io.Reader) (image.Image, error)

type decoder struct {
	format string
	decode DecodeFunc
}

var decoders = xsync.NewMap[string, decoder]()

func init() {
	RegisterDecoder(".png", png.Decode)
	RegisterDecoder(".jpg", jpeg.Decode)
	RegisterDecoder(".jpeg", jpeg.Decode)
	RegisterDecoder(".gif", gif.Decode)
	RegisterDecoder(".bmp", bmp.Decode)
	RegisterDecoder(".tif", tiff.Decode)
	RegisterDecoder(".tiff", tiff.Decode)
	RegisterDecoder(".webp", webp.Decode)
}

// RegisterDecoder registers fn for files with the given extension, like
// ".qoi". Extensions are matched case-insensitively. A decoder registered
// for an extension that is already known replaces the previous one. It is
// safe for concurrent use.
func RegisterDecoder(ext string, fn DecodeFunc) {
	ext = normalizeExtension(ext)
	if ext == "." || fn == nil {
		return
	}

	decoders.Store(ext, decoder{
		format: strings.TrimPrefix(ext, "."),
		decode: fn,
	})
}

// Extensions returns all extensions a decoder is registered for, sorted.
func Extensions() []string {
	exts := make([]string, 0, decoders.Size())

	decoders.Range(func(ext string, _ decoder) bool {
		exts = append(exts, ext)
		return true
	})

	slices.Sort(exts)

	return exts
}

func lookupDecoder(ext string) (decoder, bool) {
	return decoders.Load(normalizeExtension(ext))
}

func normalizeExtension(ext string) string {
	return "." + strings.TrimPrefix(strings.ToLower(ext), ".")
}
