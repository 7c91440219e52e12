// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package hostfs provides access to mount sources on the host file system.
//
// Sources are accessed via an [afero.Fs], so tests can run completely in
// memory. Files on the real OS file system can be memory mapped instead of
// being copied.
package hostfs
