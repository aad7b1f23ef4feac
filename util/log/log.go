// Package log wraps the standard logger with severity levels.
//
// Only messages at or above the configured level reach the sink. The
// default level is LevelWarn: DeskNote logs problems, never routine
// activity and never user-entered text.
package log

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"unicode/utf8"
)

// Level is a log severity.
type Level int32

// Severity levels, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelPrefix = map[Level]string{
	LevelDebug: "[DEBUG] ",
	LevelInfo:  "[INFO] ",
	LevelWarn:  "[WARN] ",
	LevelError: "[ERROR] ",
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int32(l))
}

var threshold atomic.Int32

func init() {
	threshold.Store(int32(LevelWarn))
}

// SetLevel sets the minimum severity written to the sink.
func SetLevel(l Level) {
	threshold.Store(int32(l))
}

// GetLevel returns the minimum severity written to the sink.
func GetLevel() Level {
	return Level(threshold.Load())
}

// Enabled reports whether messages of the given level are written.
func Enabled(l Level) bool {
	return l >= GetLevel()
}

func output(l Level, msg string) {
	if !Enabled(l) {
		return
	}
	// 3 = caller of the exported wrapper
	_ = log.Output(3, levelPrefix[l]+msg)
}

// Debug logs at debug level.
func Debug(v ...interface{}) {
	output(LevelDebug, fmt.Sprint(v...))
}

// Debugf logs at debug level.
func Debugf(format string, v ...interface{}) {
	output(LevelDebug, fmt.Sprintf(format, v...))
}

// Print logs at info level.
func Print(v ...interface{}) {
	output(LevelInfo, fmt.Sprint(v...))
}

// Printf logs at info level.
func Printf(format string, v ...interface{}) {
	output(LevelInfo, fmt.Sprintf(format, v...))
}

// Println logs at info level.
func Println(v ...interface{}) {
	output(LevelInfo, fmt.Sprintln(v...))
}

// Warnf logs at warn level.
func Warnf(format string, v ...interface{}) {
	output(LevelWarn, fmt.Sprintf(format, v...))
}

// Errorf logs at error level.
func Errorf(format string, v ...interface{}) {
	output(LevelError, fmt.Sprintf(format, v...))
}

// Fatal logs regardless of level and exits with status 1.
func Fatal(v ...interface{}) {
	_ = log.Output(2, levelPrefix[LevelError]+fmt.Sprint(v...))
	exit(1)
}

// Fatalf logs regardless of level and exits with status 1.
func Fatalf(format string, v ...interface{}) {
	_ = log.Output(2, levelPrefix[LevelError]+fmt.Sprintf(format, v...))
	exit(1)
}

// exit is swapped in tests.
var exit = os.Exit

// Redact describes user text without revealing it.
func Redact(s string) string {
	return fmt.Sprintf("<%d chars>", utf8.RuneCountInString(s))
}
