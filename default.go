// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package assetfs

import (
	"github.com/aibor/assetfs/media"
	"github.com/aibor/assetfs/memory"
)

// defaultSystem backs the package level functions. It is not synchronized.
var defaultSystem = New()

// Default returns the [System] used by the package level functions.
func Default() *System {
	return defaultSystem
}

// Init calls [System.Init] on the default [System].
func Init(source, prefix string) error {
	return defaultSystem.Init(source, prefix)
}

// Mount calls [System.Mount] on the default [System].
func Mount(source, prefix string) error {
	return defaultSystem.Mount(source, prefix)
}

// IsReady calls [System.IsReady] on the default [System].
func IsReady() bool {
	return defaultSystem.IsReady()
}

// Close calls [System.Close] on the default [System].
func Close() {
	defaultSystem.Close()
}

// LoadFileData calls [System.LoadFileData] on the default [System].
func LoadFileData(name string) (*memory.Buffer, error) {
	return defaultSystem.LoadFileData(name)
}

// LoadFileText calls [System.LoadFileText] on the default [System].
func LoadFileText(name string) (*media.Text, error) {
	return defaultSystem.LoadFileText(name)
}

// LoadImage calls [System.LoadImage] on the default [System].
func LoadImage(name string) (media.Image, error) {
	return defaultSystem.LoadImage(name)
}

// FileExists calls [System.FileExists] on the default [System].
func FileExists(name string) bool {
	return defaultSystem.FileExists(name)
}

// Dismount calls [System.Dismount] on the default [System].
func Dismount(source, prefix string) error {
	return defaultSystem.Dismount(source, prefix)
}

// DirectoryFiles calls [System.DirectoryFiles] on the default [System].
func DirectoryFiles(dir string) ([]string, error) {
	return defaultSystem.DirectoryFiles(dir)
}
