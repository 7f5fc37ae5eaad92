package dylib

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	logger atomic.Pointer[zap.Logger]
	nop    = zap.NewNop()
)

// Logger returns the dylib package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nop
}

// SetLogger configures the dylib package's logger. Libraries opened before
// the call keep the logger they were opened with.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
