package log

import (
	"sync/atomic"

	gethlog "github.com/ethereum/go-ethereum/log"
	"golang.org/x/exp/slog"
)

// LoggerFilter is used to print log when check func returns true.
type LoggerFilter interface {
	check() bool
}

// EveryN passes one out of every N checks. A nil or zero EveryN passes all.
type EveryN struct {
	N       uint32
	counter uint32
}

func (e *EveryN) check() bool {
	if e == nil || e.N == 0 {
		return true
	}
	c := atomic.AddUint32(&e.counter, 1)
	return c%e.N == 0
}

var _ LoggerFilter = &EveryN{}

type ifCondition struct {
	Condition bool
}

func (i *ifCondition) check() bool {
	return i == nil || i.Condition
}

var _ LoggerFilter = &ifCondition{}

func DebugBy(filter LoggerFilter, msg string, ctx ...interface{}) {
	writeBy(filter, slog.LevelDebug, msg, ctx...)
}

func InfoBy(filter LoggerFilter, msg string, ctx ...interface{}) {
	writeBy(filter, slog.LevelInfo, msg, ctx...)
}

func WarnBy(filter LoggerFilter, msg string, ctx ...interface{}) {
	writeBy(filter, slog.LevelWarn, msg, ctx...)
}

func WarnIf(condition bool, msg string, ctx ...interface{}) {
	WarnBy(&ifCondition{condition}, msg, ctx...)
}

func writeBy(filter LoggerFilter, level slog.Level, msg string, ctx ...interface{}) {
	if filter == nil || filter.check() {
		gethlog.Root().Write(level, msg, ctx...)
	}
}
