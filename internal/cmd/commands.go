// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/aibor/assetfs"
	"github.com/aibor/assetfs/internal/pack"
	"github.com/aibor/assetfs/memory"
	"github.com/aibor/assetfs/stream"
	"github.com/aibor/assetfs/vfs"
)

// env is what commands operate on.
type env struct {
	sys    *assetfs.System
	alloc  memory.Allocator
	hostFS afero.Fs
	stdout io.Writer
	logger *slog.Logger
}

type command struct {
	args    string
	help    string
	minArgs int
	run     func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"mounts": {
		help: "list active mounts, newest last",
		run:  runMounts,
	},
	"ls": {
		args: "[dir]",
		help: "list directory entries",
		run:  runList,
	},
	"files": {
		help: "list all regular files",
		run:  runFiles,
	},
	"stat": {
		args:    "path...",
		help:    "show file information",
		minArgs: 1,
		run:     runStat,
	},
	"cat": {
		args:    "path...",
		help:    "write file content to stdout",
		minArgs: 1,
		run:     runCat,
	},
	"hash": {
		args: "[path...]",
		help: "print BLAKE3 sums of the files, all files if none given",
		run:  runHash,
	},
	"image": {
		args:    "path...",
		help:    "decode images and print format and dimensions",
		minArgs: 1,
		run:     runImage,
	},
	"pack": {
		args:    "file",
		help:    "write the merged file tree into a newc cpio archive",
		minArgs: 1,
		run:     runPack,
	},
}

func commandNames() []string {
	return slices.Sorted(maps.Keys(commands))
}

// fsName converts a virtual path into a name valid for [fs.FS] methods.
func fsName(name string) (string, error) {
	vpath, err := vfs.CleanPath(name)
	if err != nil {
		return "", &vfs.PathError{Op: "clean", Path: name, Err: err}
	}

	if vpath == "/" {
		return ".", nil
	}

	return strings.TrimPrefix(vpath, "/"), nil
}

func runMounts(_ context.Context, e *env, _ []string) error {
	for _, info := range e.sys.Mounts() {
		format := "-"
		if info.Kind == vfs.KindMemory {
			format = info.Format.String()
		}

		fmt.Fprintf(e.stdout, "%s\t%s\t%s\t%d\t%s\n",
			info.Prefix, info.Kind, format, info.Files, info.Source)
	}

	return nil
}

func runList(_ context.Context, e *env, args []string) error {
	dir := "/"
	if len(args) > 0 {
		dir = args[0]
	}

	name, err := fsName(dir)
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(e.sys.FS(), name)
	if err != nil {
		return err //nolint:wrapcheck
	}

	for _, entry := range entries {
		suffix := ""
		if entry.IsDir() {
			suffix = "/"
		}

		fmt.Fprintln(e.stdout, entry.Name()+suffix)
	}

	return nil
}

func runFiles(_ context.Context, e *env, _ []string) error {
	files, err := e.sys.FS().Files()
	if err != nil {
		return err //nolint:wrapcheck
	}

	for _, file := range files {
		fmt.Fprintln(e.stdout, file)
	}

	return nil
}

func runStat(_ context.Context, e *env, args []string) error {
	for _, arg := range args {
		name, err := fsName(arg)
		if err != nil {
			return err
		}

		info, err := fs.Stat(e.sys.FS(), name)
		if err != nil {
			return err //nolint:wrapcheck
		}

		fmt.Fprintf(e.stdout, "%s\t%d\t%s\t%s\n",
			info.Mode(),
			info.Size(),
			info.ModTime().UTC().Format(time.RFC3339),
			arg,
		)
	}

	return nil
}

func runCat(ctx context.Context, e *env, args []string) error {
	for _, arg := range args {
		if err := ctx.Err(); err != nil {
			return err //nolint:wrapcheck
		}

		err := catFile(e, arg)
		if err != nil {
			return err
		}
	}

	return nil
}

func catFile(e *env, name string) error {
	s, err := stream.Open(e.sys.FS(), name, stream.WithAllocator(e.alloc))
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = s.WriteTo(e.stdout)

	closeErr := s.Close()
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	return closeErr //nolint:wrapcheck
}

func runImage(_ context.Context, e *env, args []string) error {
	for _, arg := range args {
		img, err := e.sys.LoadImage(arg)
		if err != nil {
			return err //nolint:wrapcheck
		}

		fmt.Fprintf(e.stdout, "%s\t%dx%d\t%s\n",
			img.Format, img.Width(), img.Height(), arg)
	}

	return nil
}

func runPack(_ context.Context, e *env, args []string) error {
	file, err := e.hostFS.Create(args[0])
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer file.Close()

	writer := pack.NewCPIOWriter(file)

	stats, err := pack.WriteFS(writer, e.sys.FS())
	if err != nil {
		_ = writer.Close()
		return fmt.Errorf("pack: %w", err)
	}

	err = writer.Close()
	if err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("close archive file: %w", err)
	}

	e.logger.Debug("Packed archive",
		slog.String("path", args[0]),
		slog.Int("directories", stats.Directories),
		slog.Int("files", stats.Files),
		slog.Int("links", stats.Links),
		slog.Int64("bytes", stats.Bytes),
		slog.Int("skipped", stats.Skipped),
	)

	fmt.Fprintf(e.stdout, "%d directories, %d files, %d links, %d bytes\n",
		stats.Directories, stats.Files, stats.Links, stats.Bytes)

	return nil
}
