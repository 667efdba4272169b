package logger

import (
	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var spewConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// Sdump renders values as a deep, deterministic dump.
func Sdump(a ...any) string {
	return spewConfig.Sdump(a...)
}

// Dump logs a deep dump of v at debug level. The dump is only built when
// debug logging is enabled.
func Dump(msg string, v any) {
	if ce := Log.Check(zapcore.DebugLevel, msg); ce != nil {
		ce.Write(zap.String("dump", Sdump(v)))
	}
}
