// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/aibor/assetfs/config"
)

var (
	_ pflag.Value = (*byteSize)(nil)
	_ pflag.Value = (*mountList)(nil)
)

var sizeUnits = map[byte]int64{
	'K': 1 << 10,
	'M': 1 << 20,
	'G': 1 << 30,
}

// byteSize is a non-negative number of bytes with optional binary unit
// suffix K, M or G.
type byteSize int64

func (s *byteSize) String() string {
	return strconv.FormatInt(int64(*s), 10)
}

func (s *byteSize) Set(value string) error {
	factor := int64(1)
	number := strings.ToUpper(value)

	if number != "" {
		if unit, ok := sizeUnits[number[len(number)-1]]; ok {
			factor = unit
			number = number[:len(number)-1]
		}
	}

	n, err := strconv.ParseInt(number, 10, 64)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if n < 0 || n > math.MaxInt64/factor {
		return fmt.Errorf("%w: %s", ErrInvalidSize, value)
	}

	*s = byteSize(n * factor)

	return nil
}

func (*byteSize) Type() string {
	return "size"
}

// mountList collects mounts given as "source:prefix". An empty value clears
// the list.
type mountList []config.Mount

func (l *mountList) String() string {
	mounts := make([]string, len(*l))
	for idx, mount := range *l {
		mounts[idx] = mount.String()
	}

	return "[" + strings.Join(mounts, ",") + "]"
}

func (l *mountList) Set(value string) error {
	if value == "" {
		*l = nil
		return nil
	}

	mount, err := config.ParseMount(value)
	if err != nil {
		return err //nolint:wrapcheck
	}

	*l = append(*l, mount)

	return nil
}

func (*mountList) Type() string {
	return "source:prefix"
}
