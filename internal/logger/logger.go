package logger

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

type Logger struct {
	level  Level
	logger *zap.SugaredLogger
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel maps a config string onto a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG, nil
	case "", "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

func New(out io.Writer, level Level) *Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(out),
		zap.NewAtomicLevelAt(level.zapLevel()),
	)

	return &Logger{
		level:  level,
		logger: zap.New(core).Sugar(),
	}
}

// Nop discards everything, used by tests and the one-shot subcommands
func Nop() *Logger {
	return &Logger{
		level:  ERROR,
		logger: zap.NewNop().Sugar(),
	}
}

func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) Debugf(format string, args ...any) {
	l.logger.Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.logger.Infof(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.logger.Warnf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.logger.Errorf(format, args...)
}

// Sync flushes any buffered entries
func (l *Logger) Sync() error {
	return l.logger.Sync()
}
