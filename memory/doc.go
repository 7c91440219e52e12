// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package memory provides the allocator capability shared by the virtual file
// system and the host adapters, and the [Buffer] type that carries ownership
// of allocated file content between them.
//
// An [Allocator] is passed at creation time to every component that allocates
// on behalf of another one. This way the virtual file system and each host
// adapter can be routed to a different allocator without any global state.
// Allocators can be stacked: [Heap] at the bottom, [Limit] for bounding
// memory usage, [Tracker] for ownership diagnostics and [Instrumented] for
// metrics.
package memory
