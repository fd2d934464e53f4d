// Package debug appends diagnostic lines to a size-rotated log file,
// independent of where the standard logger points.
package debug

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	initOnce sync.Once
	sink     *lumberjack.Logger
)

func start() {
	sink = &lumberjack.Logger{
		Filename:   "debug.log",
		MaxSize:    5, // megabytes
		MaxBackups: 3,
	}
}

// Log writes msg prefixed with a timestamp and the caller's position.
func Log(msg string) {
	initOnce.Do(start)
	timeStr := time.Now().Format("2006-01-02 15:04:05.000")
	if _, fullPath, line, ok := runtime.Caller(1); ok {
		LogRaw(fmt.Sprintf("%s %s:%d %s", timeStr, filepath.Base(fullPath), line, msg))
		return
	}
	LogRaw(timeStr + " " + msg)
}

// LogRaw writes msg as is.
func LogRaw(msg string) {
	initOnce.Do(start)
	sink.Write([]byte(msg + "\n"))
}

// Writer exposes the rotated file so the standard logger can be pointed
// at it too.
func Writer() io.Writer {
	initOnce.Do(start)
	return sink
}

// Close releases the log file.
func Close() error {
	initOnce.Do(start)
	return sink.Close()
}
