// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !unix

package hostfs

import "errors"

var errMmapUnsupported = errors.New("memory mapping not supported on this platform")

func mmapFile(string) ([]byte, func() error, error) {
	return nil, nil, errMmapUnsupported
}
