// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/aibor/assetfs/config"
)

const (
	name = "assetfs"

	usageMessage = `Usage of 'assetfs':
    assetfs [flags...] command [args...]

Mounts host directories and archives into a virtual file system and runs the
command on it. Later mounts shadow earlier ones.

Example:
	assetfs -m resources:/res -m patch.zip:/res cat /res/test.txt

Commands:
`
)

type flags struct {
	mounts     mountList
	configFile string
	mmap       bool
	maxMemory  byteSize
	debug      bool
	stats      bool
	version    bool

	command string
	args    []string

	flagSet *pflag.FlagSet
}

func newFlags(output io.Writer) *flags {
	f := &flags{}

	f.initFlagset(output)

	return f
}

func (f *flags) initFlagset(output io.Writer) {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = f.usage

	// Everything after the command belongs to the command.
	flagSet.SetInterspersed(false)

	flagSet.VarP(
		&f.mounts,
		"mount",
		"m",
		"mount host directory or archive at virtual prefix. Flag may be used "+
			"more than once. Empty value clears the list.",
	)

	flagSet.StringVarP(
		&f.configFile,
		"config",
		"c",
		f.configFile,
		"YAML or JSON config file. Flags take precedence, mounts are appended.",
	)

	flagSet.BoolVar(
		&f.mmap,
		"mmap",
		f.mmap,
		"memory map archive files instead of reading them",
	)

	flagSet.Var(
		&f.maxMemory,
		"max-memory",
		"limit memory for loaded files, e.g. 64M (0 is unlimited)",
	)

	flagSet.BoolVar(
		&f.stats,
		"stats",
		f.stats,
		"print memory metrics on stderr when done",
	)

	flagSet.BoolVarP(
		&f.debug,
		"debug",
		"d",
		f.debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	f.flagSet = flagSet
}

func (f *flags) parseArgs(args []string) error {
	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	if f.version {
		return nil
	}

	positionalArgs := f.flagSet.Args()
	if len(positionalArgs) < 1 {
		return f.fail("command", ErrNoCommand)
	}

	f.command = positionalArgs[0]
	f.args = positionalArgs[1:]

	cmd, exists := commands[f.command]
	if !exists {
		return f.fail(f.command, ErrUnknownCommand)
	}

	if len(f.args) < cmd.minArgs {
		return f.fail(f.command+" "+cmd.args, ErrMissingArgument)
	}

	return nil
}

// override returns the values of all flags that are set explicitly.
func (f *flags) override() *config.Override {
	override := &config.Override{
		Mounts: f.mounts,
	}

	if f.flagSet.Changed("mmap") {
		override.Mmap = &f.mmap
	}

	if f.flagSet.Changed("max-memory") {
		maxMemory := int64(f.maxMemory)
		override.MaxMemory = &maxMemory
	}

	if f.flagSet.Changed("debug") {
		override.Debug = &f.debug
	}

	return override
}

// fail fails like pflag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) usage() {
	output := f.flagSet.Output()

	fmt.Fprint(output, usageMessage)

	for _, name := range commandNames() {
		cmd := commands[name]
		fmt.Fprintf(output, "    %-8s %-12s %s\n", name, cmd.args, cmd.help)
	}

	fmt.Fprintln(output, "\nFlags:")
	f.flagSet.PrintDefaults()
}
