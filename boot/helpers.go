package boot

import (
	"os"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func indexByHash(key string, numWorkers int) int {
	switch numWorkers {
	case 0:
		panic("number of workers cannot be 0")
	case 1:
		return 0
	default:
		return int(xxhash.Sum64String(key) % uint64(numWorkers))
	}
}

// NewTestLogger returns a debug-level console logger for use in tests and
// examples.
func NewTestLogger() *zap.Logger {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)
	return zap.New(consoleCore)
}
