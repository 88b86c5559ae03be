package log

import (
	"io"
	"os"

	gethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"golang.org/x/exp/slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the root log handler.
type Config struct {
	Verbosity  int    // legacy geth levels, 0=silent .. 5=trace
	JSON       bool   // emit JSON instead of terminal output
	File       string // also write to this file, rotated by size
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

// DefaultConfig logs at info level to stderr.
var DefaultConfig = Config{
	Verbosity:  3,
	MaxSizeMB:  100,
	MaxBackups: 10,
}

// Setup installs the root logger described by cfg. The returned closer
// releases the log file, if any.
func Setup(cfg Config) io.Closer {
	var (
		output   io.Writer = os.Stderr
		useColor           = (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		closer   io.Closer = nopCloser{}
	)
	if useColor {
		output = colorable.NewColorableStderr()
	}
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
		}
		output = io.MultiWriter(os.Stderr, file)
		useColor = false
		closer = file
	}
	var handler slog.Handler
	if cfg.JSON {
		handler = gethlog.JSONHandler(output)
	} else {
		handler = gethlog.NewTerminalHandler(output, useColor)
	}
	glogger := gethlog.NewGlogHandler(handler)
	glogger.Verbosity(gethlog.FromLegacyLevel(cfg.Verbosity))
	gethlog.SetDefault(gethlog.NewLogger(glogger))
	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
