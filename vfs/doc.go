// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package vfs provides a mountable, read-only virtual file system.
//
// Host directories and in-memory archives (zip, tar, compressed tar, cpio) are
// mounted at virtual prefixes. Mounts are searched newest first, so later
// mounts shadow files of earlier ones. Files are addressed by absolute,
// slash separated virtual paths like "/textures/wall.png".
//
// Content is accessed in two steps: [FS.Resolve] looks up a [Handle] and
// [FS.Load] copies the complete content into a caller provided buffer.
// Additionally, [FS] implements [io/fs.FS], [io/fs.StatFS] and
// [io/fs.ReadDirFS] over the merged view of all mounts.
//
// Archive entries that must be decompressed are extracted at mount time into
// memory obtained from the allocator given with [WithAllocator]. That memory
// is freed on [FS.Dismount] and [FS.Destroy].
package vfs
