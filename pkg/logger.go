package pkg

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var current atomic.Pointer[zap.Logger]

func init() {
	current.Store(zap.NewNop())
}

// NewLogger builds a zap logger.
// format is either "text" or "json"; level "none" disables logging.
func NewLogger(format, level string) (*zap.Logger, error) {
	if level == "none" {
		return zap.NewNop(), nil
	}

	lvl, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true

	switch format {
	case "text":
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case "json":
	default:
		return nil, fmt.Errorf("unknown log format: %s", format)
	}

	return cfg.Build()
}

func MustNewLogger(format, level string) *zap.Logger {
	l, err := NewLogger(format, level)
	if err != nil {
		panic(err)
	}
	return l
}

func ParseLogLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zap.DebugLevel, nil
	case "info":
		return zap.InfoLevel, nil
	case "warn":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	case "fatal":
		return zap.FatalLevel, nil
	}
	return zap.InfoLevel, fmt.Errorf("unknown log level: %s", level)
}

// SetLogger replaces the process wide logger used by the *Log helpers.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	current.Store(l)
}

func Logger() *zap.Logger { return current.Load() }

func sugar() *zap.SugaredLogger { return current.Load().WithOptions(zap.AddCallerSkip(1)).Sugar() }

func InfoLog(args ...any)  { sugar().Infoln(args...) }
func ErrorLog(args ...any) { sugar().Errorln(args...) }
func FatalLog(args ...any) { sugar().Fatalln(args...) }
func WarnLog(args ...any)  { sugar().Warnln(args...) }
func DebugLog(args ...any) { sugar().Debugln(args...) }
