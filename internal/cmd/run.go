// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/spf13/afero"

	"github.com/aibor/assetfs"
	"github.com/aibor/assetfs/config"
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func loadConfig(flags *flags, hostFS afero.Fs) (*config.Config, error) {
	cfg := config.Default()

	if flags.configFile != "" {
		override, err := config.LoadOverrideFile(hostFS, flags.configFile)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}

		cfg.Merge(override)
	}

	// Flags take precedence over the config file.
	cfg.Merge(flags.override())

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func run(ctx context.Context, flags *flags, cfg IO, hostFS afero.Fs) error {
	conf, err := loadConfig(flags, hostFS)
	if err != nil {
		return err
	}

	logger := setupLogging(cfg.Stderr, conf.Debug)

	metrics, err := newMetrics(flags.stats)
	if err != nil {
		return err
	}

	sys := assetfs.New(conf.Options(metrics.allocator(),
		assetfs.WithLogger(logger),
		assetfs.WithHostFS(hostFS),
	)...)
	defer sys.Close()

	err = conf.Apply(sys)
	if err != nil {
		return err //nolint:wrapcheck
	}

	logger.Debug("Mounted sources", slog.Int("mounts", len(sys.Mounts())))

	e := &env{
		sys:    sys,
		alloc:  sys.Allocator(),
		hostFS: hostFS,
		stdout: cfg.Stdout,
		logger: logger,
	}

	err = commands[flags.command].run(ctx, e, flags.args)

	// Close before printing so outstanding memory shows up as leak.
	sys.Close()

	if flags.stats {
		err = errors.Join(err, metrics.print(cfg.Stderr))
	}

	return err
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// Parse errors are printed by the flag set already.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return -1
}

func handleRunError(err error) int {
	if errors.Is(err, context.Canceled) {
		slog.Warn("Interrupted")
		return -1
	}

	slog.Error(err.Error())

	return -1
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr, false)

	flags := newFlags(cfg.Stderr)

	err := flags.parseArgs(args)
	if err != nil {
		return handleParseArgsError(err)
	}

	if flags.version {
		buildInfo, err := getBuildInfo()
		if err != nil {
			slog.Error(err.Error())
			return -1
		}

		fmt.Fprintf(cfg.Stdout, "Version: %s\n", buildInfo.Main.Version)

		return 0
	}

	err = run(ctx, flags, cfg, afero.NewOsFs())
	if err != nil {
		return handleRunError(err)
	}

	return 0
}

func getBuildInfo() (*debug.BuildInfo, error) {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, ErrReadBuildInfo
	}

	return buildInfo, nil
}
