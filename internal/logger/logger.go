// Package logger holds the process-wide zerolog logger. The first Get call
// fixes the level; later calls just return the configured logger.
package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	log  zerolog.Logger
)

func Get(debug ...bool) zerolog.Logger {
	once.Do(func() {
		level := zerolog.InfoLevel
		if len(debug) > 0 && debug[0] {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(os.Stderr).
			Level(level).
			With().
			Timestamp().
			Logger()
	})
	return log
}
