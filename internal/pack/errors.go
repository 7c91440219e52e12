// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package pack

import "errors"

// ErrNotRegularFile is returned if a regular file is expected but the source
// is something else.
var ErrNotRegularFile = errors.New("not a regular file")
