// pkg/logger/logger.go
// Structured logging with Zap. Logs go to stderr; stdout is reserved for scan output.

package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.Logger
	once sync.Once
)

// Config holds logger configuration
type Config struct {
	Level  string    // debug, info, warn, error
	Format string    // json, console
	File   string    // log file path (empty = Output)
	Output io.Writer // defaults to os.Stderr
}

// Init initializes the global logger. Only the first call has any effect.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		log, err = New(cfg)
	})
	return err
}

// New builds a standalone logger from cfg without touching the global one.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var writeSyncer zapcore.WriteSyncer
	switch {
	case cfg.File != "":
		//nolint:gosec // G302: 0644 is standard for log files
		file, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		writeSyncer = zapcore.AddSync(file)
	case cfg.Output != nil:
		writeSyncer = zapcore.AddSync(cfg.Output)
	default:
		writeSyncer = zapcore.Lock(os.Stderr)
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)

	return zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	), nil
}

// L returns the global logger
func L() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	L().Debug(msg, fields...)
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	L().Info(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	L().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	L().Error(msg, fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	if log != nil {
		return log.Sync()
	}
	return nil
}

// Field shortcuts
var (
	String   = zap.String
	Int      = zap.Int
	Bool     = zap.Bool
	Err      = zap.Error // Use Err instead of Error to avoid conflict
	Stringer = zap.Stringer
	Duration = zap.Duration
)
