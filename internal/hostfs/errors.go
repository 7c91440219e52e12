// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package hostfs

import "io/fs"

// PathError records an error and the operation and file path that caused it.
type PathError = fs.PathError
