// Copyright 2015 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

// Package utils contains internal helper functions for witness commands.
package utils

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bnb-chain/zkwitness/core/witness"
	"github.com/bnb-chain/zkwitness/log"
)

const (
	WitnessCategory = "WITNESS"
	LoggingCategory = "LOGGING AND DEBUGGING"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	ConfigFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}

	// Witness settings
	VerifyFlag = &cli.BoolFlag{
		Name:     "verify",
		Usage:    "Cross check every generated value against the trace",
		Category: WitnessCategory,
	}
	PreimagesFlag = &cli.BoolFlag{
		Name:     "preimages",
		Usage:    "Record the preimage of every hashed input",
		Category: WitnessCategory,
	}
	MaxMemoryFlag = &cli.Uint64Flag{
		Name:     "memory.max",
		Usage:    "Maximum size in bytes a call frame's memory may grow to",
		Value:    witness.DefaultConfig.MaxMemorySize,
		Category: WitnessCategory,
	}
	WorkersFlag = &cli.IntFlag{
		Name:     "workers",
		Usage:    "Number of trace files replayed concurrently (0 = one per CPU)",
		Value:    runtime.NumCPU(),
		Category: WitnessCategory,
	}
	OutputDirFlag = &cli.StringFlag{
		Name:     "output",
		Usage:    "Directory the witness of every trace file is written to as JSON",
		Category: WitnessCategory,
	}

	// Logging settings
	VerbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    log.DefaultConfig.Verbosity,
		Category: LoggingCategory,
	}
	LogJSONFlag = &cli.BoolFlag{
		Name:     "log.json",
		Usage:    "Format logs with JSON",
		Category: LoggingCategory,
	}
	LogFileFlag = &cli.StringFlag{
		Name:     "log.file",
		Usage:    "Write logs to a file",
		Category: LoggingCategory,
	}
	LogMaxSizeMBsFlag = &cli.IntFlag{
		Name:     "log.maxsize",
		Usage:    "Maximum size in megabytes of the log file before it gets rotated",
		Value:    log.DefaultConfig.MaxSizeMB,
		Category: LoggingCategory,
	}
	LogMaxBackupsFlag = &cli.IntFlag{
		Name:     "log.maxbackups",
		Usage:    "Maximum number of log files to retain",
		Value:    log.DefaultConfig.MaxBackups,
		Category: LoggingCategory,
	}
	LogCompressFlag = &cli.BoolFlag{
		Name:     "log.compress",
		Usage:    "Compress the rotated log files",
		Category: LoggingCategory,
	}
	MetricsEnabledFlag = &cli.BoolFlag{
		Name:     "metrics",
		Usage:    "Enable metrics collection and print them after the run",
		Category: LoggingCategory,
	}
	LogEveryFlag = &cli.UintFlag{
		Name:     "log.every",
		Usage:    "Log replay progress every N trace steps (0 = every step)",
		Value:    uint(witness.DefaultConfig.LogEvery),
		Category: LoggingCategory,
	}
)

var (
	// WitnessFlags is the flag group of witness generation.
	WitnessFlags = []cli.Flag{
		VerifyFlag,
		PreimagesFlag,
		MaxMemoryFlag,
		WorkersFlag,
		OutputDirFlag,
	}
	// LogFlags is the flag group of logging.
	LogFlags = []cli.Flag{
		VerbosityFlag,
		LogJSONFlag,
		LogFileFlag,
		LogMaxSizeMBsFlag,
		LogMaxBackupsFlag,
		LogCompressFlag,
		LogEveryFlag,
		MetricsEnabledFlag,
	}
)

// SetWitnessConfig applies witness related command line flags to the config.
func SetWitnessConfig(ctx *cli.Context, cfg *witness.Config) {
	if ctx.IsSet(VerifyFlag.Name) {
		cfg.Verify = ctx.Bool(VerifyFlag.Name)
	}
	if ctx.IsSet(PreimagesFlag.Name) {
		cfg.EnablePreimageRecording = ctx.Bool(PreimagesFlag.Name)
	}
	if ctx.IsSet(MaxMemoryFlag.Name) {
		cfg.MaxMemorySize = ctx.Uint64(MaxMemoryFlag.Name)
	}
	if ctx.IsSet(LogEveryFlag.Name) {
		cfg.LogEvery = uint32(ctx.Uint(LogEveryFlag.Name))
	}
}

// SetLogConfig applies logging related command line flags to the config.
func SetLogConfig(ctx *cli.Context, cfg *log.Config) {
	if ctx.IsSet(VerbosityFlag.Name) {
		cfg.Verbosity = ctx.Int(VerbosityFlag.Name)
	}
	if ctx.IsSet(LogJSONFlag.Name) {
		cfg.JSON = ctx.Bool(LogJSONFlag.Name)
	}
	if ctx.IsSet(LogFileFlag.Name) {
		cfg.File = ctx.String(LogFileFlag.Name)
	}
	if ctx.IsSet(LogMaxSizeMBsFlag.Name) {
		cfg.MaxSizeMB = ctx.Int(LogMaxSizeMBsFlag.Name)
	}
	if ctx.IsSet(LogMaxBackupsFlag.Name) {
		cfg.MaxBackups = ctx.Int(LogMaxBackupsFlag.Name)
	}
	if ctx.IsSet(LogCompressFlag.Name) {
		cfg.Compress = ctx.Bool(LogCompressFlag.Name)
	}
}

// Fatalf formats a message to standard error and exits the program.
// The message is also printed to standard output if standard error
// is redirected to a different file.
func Fatalf(format string, args ...interface{}) {
	w := io.MultiWriter(os.Stdout, os.Stderr)
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		}
	}
	fmt.Fprintf(w, "Fatal: "+format+"\n", args...)
	os.Exit(1)
}

// SplitArgs splits comma separated command arguments into a flat list,
// dropping empty entries.
func SplitArgs(args []string) []string {
	var out []string
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
