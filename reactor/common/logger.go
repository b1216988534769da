// Package common holds the reactor's small ambient pieces: the logger
// every other package logs through. Takes after rpc/common/logger.go's
// dKVLogger: same "%-5s | %-15s | %s" line format, same
// debug/info/warn/error levels gated by a configured threshold, same
// factory-by-package-name shape - minus the dragonboat logger.ILogger
// adapter, since this reactor has no Raft subsystem to plug into.
package common

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Level is a logging threshold. Levels compare by ordinal: DEBUG < INFO <
// WARN < ERROR.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a string level to a Level, defaulting to LevelInfo
// for anything unrecognized.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a level-gated, package-named logger writing one formatted
// line per call.
type Logger struct {
	name   string
	level  Level
	logger *log.Logger
}

// New returns a Logger tagged with name, logging to stdout with date and
// time prefixes.
func New(name string, level Level) *Logger {
	return &Logger{
		name:   name,
		level:  level,
		logger: log.New(os.Stdout, "", log.Ldate|log.Ltime),
	}
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.level <= LevelDebug {
		l.log("DEBUG", format, args...)
	}
}

func (l *Logger) Infof(format string, args ...interface{}) {
	if l.level <= LevelInfo {
		l.log("INFO", format, args...)
	}
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	if l.level <= LevelWarn {
		l.log("WARN", format, args...)
	}
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	if l.level <= LevelError {
		l.log("ERROR", format, args...)
	}
}

func (l *Logger) log(levelStr, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-15s | %s", levelStr, l.name, message)
}
