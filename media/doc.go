// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package media turns loaded file buffers into text and decoded images.
//
// Both adapters take over the buffer they are given. [TextFrom] keeps it
// alive as backing memory of the returned [Text]. [ImageFrom] releases it
// once decoding finished, whether decoding succeeded or not.
package media
