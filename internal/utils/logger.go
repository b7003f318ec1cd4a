package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Logger provides leveled logging for the CLI. Debug lines are dropped
// unless debug output is enabled.
type Logger struct {
	out     *log.Logger
	debug   bool
	nowFunc func() time.Time
}

// NewLogger creates a Logger writing to w (stderr when nil).
func NewLogger(w io.Writer, debug bool) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{out: log.New(w, "", 0), debug: debug, nowFunc: time.Now}
}

func (l *Logger) printf(level, format string, args ...any) {
	l.out.Printf("[%s] %-5s %s", l.nowFunc().Format("2006-01-02 15:04:05"), level, fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) { l.printf("INFO", format, args...) }

func (l *Logger) Warn(format string, args ...any) { l.printf("WARN", format, args...) }

func (l *Logger) Debug(format string, args ...any) {
	if !l.debug {
		return
	}
	l.printf("DEBUG", format, args...)
}
