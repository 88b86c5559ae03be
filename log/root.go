// Package log is a thin layer over go-ethereum's structured logger adding
// sampled logging and the CLI handler setup.
package log

import (
	gethlog "github.com/ethereum/go-ethereum/log"
)

// Trace is a convenient alias for Root().Trace
func Trace(msg string, ctx ...interface{}) {
	gethlog.Root().Trace(msg, ctx...)
}

// Debug is a convenient alias for Root().Debug
func Debug(msg string, ctx ...interface{}) {
	gethlog.Root().Debug(msg, ctx...)
}

// Info is a convenient alias for Root().Info
func Info(msg string, ctx ...interface{}) {
	gethlog.Root().Info(msg, ctx...)
}

// Warn is a convenient alias for Root().Warn
func Warn(msg string, ctx ...interface{}) {
	gethlog.Root().Warn(msg, ctx...)
}

// Error is a convenient alias for Root().Error
func Error(msg string, ctx ...interface{}) {
	gethlog.Root().Error(msg, ctx...)
}
