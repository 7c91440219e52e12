// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"runtime"

	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"

	"github.com/aibor/assetfs/stream"
	"github.com/aibor/assetfs/vfs"
)

func runHash(ctx context.Context, e *env, args []string) error {
	names := args
	if len(names) == 0 {
		files, err := e.sys.FS().Files()
		if err != nil {
			return err //nolint:wrapcheck
		}

		names = files
	}

	sums, err := hashFiles(ctx, e.sys.FS(), names, stream.WithAllocator(e.alloc))
	if err != nil {
		return err
	}

	for idx, name := range names {
		fmt.Fprintf(e.stdout, "%s  %s\n", sums[idx], name)
	}

	return nil
}

// hashFiles computes the BLAKE3 sums of the named files concurrently. The
// sums are returned in the order of names.
func hashFiles(
	ctx context.Context,
	fsys *vfs.FS,
	names []string,
	opts ...stream.Option,
) ([]string, error) {
	sums := make([]string, len(names))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for idx, name := range names {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err //nolint:wrapcheck
			}

			sum, err := hashFile(fsys, name, opts...)
			if err != nil {
				return err
			}

			sums[idx] = sum

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return sums, nil
}

func hashFile(fsys *vfs.FS, name string, opts ...stream.Option) (string, error) {
	s, err := stream.Open(fsys, name, opts...)
	if err != nil {
		return "", err //nolint:wrapcheck
	}
	defer s.Close()

	hasher := blake3.New()

	_, err = s.WriteTo(hasher)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", name, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
