// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config provides the configuration of an asset system: what to
// mount where and how memory is handled. It can be loaded from YAML or JSON
// files and merged with overrides from other sources like command line flags.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/aibor/assetfs"
	"github.com/aibor/assetfs/memory"
	"github.com/aibor/assetfs/vfs"
)

var (
	// ErrUnsupportedFileType is returned for config files with an unknown
	// extension.
	ErrUnsupportedFileType = errors.New("unsupported config file type")

	// ErrInvalidMount is returned for mounts without source or with invalid
	// prefix.
	ErrInvalidMount = errors.New("invalid mount")

	// ErrInvalidValue is returned for invalid config values.
	ErrInvalidValue = errors.New("invalid value")
)

// Mount is a host source mounted at a virtual prefix.
type Mount struct {
	Source string `yaml:"source" json:"source"`
	Prefix string `yaml:"prefix" json:"prefix"`
}

// ParseMount parses a mount given as "source:prefix". The string is split at
// the last colon. Without colon, the source is mounted at the root.
func ParseMount(s string) (Mount, error) {
	idx := strings.LastIndexByte(s, ':')
	if idx < 0 {
		s += ":/"
		idx = len(s) - 2
	}

	mount := Mount{
		Source: s[:idx],
		Prefix: s[idx+1:],
	}

	err := mount.Validate()
	if err != nil {
		return Mount{}, err
	}

	return mount, nil
}

// String returns the mount in the form accepted by [ParseMount].
func (m Mount) String() string {
	return m.Source + ":" + m.Prefix
}

// Validate checks that source is set and prefix is a valid virtual path.
func (m Mount) Validate() error {
	if m.Source == "" {
		return fmt.Errorf("%w: empty source in %q", ErrInvalidMount, m.String())
	}

	_, err := vfs.CleanPath(m.Prefix)
	if err != nil {
		return fmt.Errorf("%w: prefix of %q: %w", ErrInvalidMount, m.String(), err)
	}

	return nil
}

// Config is the complete configuration.
type Config struct {
	// Mounts are mounted in order, so later mounts shadow earlier ones.
	Mounts []Mount

	// Mmap enables memory mapping of archive files.
	Mmap bool

	// MaxMemory limits the bytes allocated for loaded files and extracted
	// archive entries at a time. 0 means unlimited.
	MaxMemory int64

	// Debug enables debug logging.
	Debug bool
}

// Override uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type Override struct {
	Mounts    []Mount `yaml:"mounts,omitempty" json:"mounts,omitempty"`
	Mmap      *bool   `yaml:"mmap,omitempty" json:"mmap,omitempty"`
	MaxMemory *int64  `yaml:"max_memory,omitempty" json:"max_memory,omitempty"`
	Debug     *bool   `yaml:"debug,omitempty" json:"debug,omitempty"`
}

// Default returns the default configuration without any mounts.
func Default() *Config {
	return &Config{}
}

// New returns the default configuration merged with the given override. A
// nil override is allowed.
func New(override *Override) *Config {
	cfg := Default()
	cfg.Merge(override)

	return cfg
}

// Merge applies non-nil values from override onto the config. Mounts of the
// override are appended.
func (c *Config) Merge(override *Override) {
	if override == nil {
		return
	}

	c.Mounts = append(c.Mounts, override.Mounts...)

	if override.Mmap != nil {
		c.Mmap = *override.Mmap
	}

	if override.MaxMemory != nil {
		c.MaxMemory = *override.MaxMemory
	}

	if override.Debug != nil {
		c.Debug = *override.Debug
	}
}

// Validate checks all values.
func (c *Config) Validate() error {
	if c.MaxMemory < 0 {
		return fmt.Errorf("%w: negative max memory %d", ErrInvalidValue, c.MaxMemory)
	}

	for _, mount := range c.Mounts {
		err := mount.Validate()
		if err != nil {
			return err
		}
	}

	return nil
}

// Allocator returns parent limited to MaxMemory, if set.
func (c *Config) Allocator(parent memory.Allocator) memory.Allocator {
	if c.MaxMemory > 0 {
		return memory.NewLimit(parent, c.MaxMemory)
	}

	return memory.OrHeap(parent)
}

// Options returns the [assetfs.Option]s for the config. Options given as
// argument are applied after the config's options.
func (c *Config) Options(parent memory.Allocator, opts ...assetfs.Option) []assetfs.Option {
	return append([]assetfs.Option{
		assetfs.WithAllocator(c.Allocator(parent)),
		assetfs.WithMmap(c.Mmap),
	}, opts...)
}

// Apply initializes sys and mounts all configured mounts in order. On
// failure sys is closed.
func (c *Config) Apply(sys *assetfs.System) error {
	err := sys.Init("", "")
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	for _, mount := range c.Mounts {
		err := sys.Mount(mount.Source, mount.Prefix)
		if err != nil {
			sys.Close()
			return fmt.Errorf("mount %s: %w", mount, err)
		}
	}

	return nil
}

// LoadOverrideFile loads a configuration override from a file in fsys
// without merging. Supports YAML (.yaml, .yml) and JSON (.json). Unknown
// fields are rejected.
func LoadOverrideFile(fsys afero.Fs, path string) (*Override, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var override Override

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)

		err = decoder.Decode(&override)
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()

		err = decoder.Decode(&override)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}

	// Empty files are valid and override nothing.
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &override, nil
}

// NewFromFile loads the config file and merges it onto the defaults.
func NewFromFile(fsys afero.Fs, path string) (*Config, error) {
	override, err := LoadOverrideFile(fsys, path)
	if err != nil {
		return nil, err
	}

	return New(override), nil
}
