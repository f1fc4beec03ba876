package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base *zap.SugaredLogger

func init() {
	base = build(os.Getenv("LOG_LEVEL"))
}

func build(level string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// Config sendiri yang salah, jangan sampai service gagal start karena logger
		return zap.NewExample().Sugar()
	}
	return l.Sugar()
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetLevel rebuilds the package logger, used by the CLI --log-level flag.
func SetLevel(level string) {
	base = build(level)
}

func Debug(msg string, v ...interface{}) {
	base.Debugf(msg, v...)
}

func Info(msg string, v ...interface{}) {
	base.Infof(msg, v...)
}

func Warn(msg string, v ...interface{}) {
	base.Warnf(msg, v...)
}

// Error logs msg with err attached as a structured field. Extra values
// (nil, a map of fields, or plain values) are appended as context.
func Error(msg string, err error, v ...interface{}) {
	fields := make([]interface{}, 0, 4)
	if err != nil {
		fields = append(fields, "error", err.Error())
	}
	for _, extra := range v {
		switch e := extra.(type) {
		case nil:
		case map[string]interface{}:
			for k, val := range e {
				fields = append(fields, k, val)
			}
		default:
			fields = append(fields, "context", fmt.Sprint(e))
		}
	}
	base.Errorw(msg, fields...)
}

func Sync() {
	_ = base.Sync()
}
