package logger

import (
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type Logger struct {
	appName string
	runID   string
	l       *zap.Logger
}

type Options struct {
	// Level is one of debug, info, warn, error. "off" or "" disables logging.
	Level string
	// Format is "json" or "console".
	Format string
}

// NewZapLogger builds a debug-level JSON logger writing to writers (stdout if none).
func NewZapLogger(appName string, writers ...io.Writer) *Logger {
	return New(appName, Options{Level: "debug", Format: "json"}, writers...)
}

// NewNop returns a logger that discards everything.
func NewNop(appName string) *Logger {
	return &Logger{
		appName: appName,
		runID:   uuid.NewString(),
		l:       zap.NewNop(),
	}
}

func New(appName string, opts Options, writers ...io.Writer) *Logger {
	level, enabled := parseLevel(opts.Level)
	if !enabled {
		return NewNop(appName)
	}

	var multiWriters []zapcore.WriteSyncer

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = timeEncoder(timeLayout, time.UTC)
	cfg.TimeKey = "timestamp"

	if len(writers) == 0 {
		multiWriters = append(multiWriters, os.Stdout)
	} else {
		for _, writer := range writers {
			multiWriters = append(multiWriters, zapcore.AddSync(writer))
		}
	}

	var encoder zapcore.Encoder
	if opts.Format == "console" {
		encoder = zapcore.NewConsoleEncoder(cfg)
	} else {
		encoder = zapcore.NewJSONEncoder(cfg)
	}

	core := zapcore.NewCore(
		encoder,
		zapcore.NewMultiWriteSyncer(multiWriters...),
		level,
	)

	return &Logger{
		appName: appName,
		runID:   uuid.NewString(),
		l:       zap.New(core),
	}
}

func parseLevel(level string) (zapcore.Level, bool) {
	switch strings.ToLower(level) {
	case "", "off":
		return zapcore.InvalidLevel, false
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel, true
	}
	return lvl, true
}

// RunID identifies every entry written during one invocation.
func (l *Logger) RunID() string {
	return l.runID
}

func (l *Logger) Stop() (err error) {
	if err = l.l.Sync(); err != nil {
		return
	}
	return
}

func (l *Logger) Error(err error, fields ...map[string]any) {
	file, line, funcName := getRuntimeParams()
	zapFields := []zapcore.Field{}
	if len(fields) > 0 {
		zapFields = mapToZapFields(fields[0])
	}
	l.l.WithOptions(zap.Fields(zapFields...)).Error(
		err.Error(),
		zap.String("app_name", l.appName),
		zap.String("run_id", l.runID),
		zap.String("error", err.Error()),
		zap.String("caller_file", file),
		zap.Int("caller_line", line),
		zap.String("caller_func", funcName),
	)
}

func (l *Logger) Info(msg string, fields ...map[string]any) {
	file, line, funcName := getRuntimeParams()
	zapFields := []zapcore.Field{}
	if len(fields) > 0 {
		zapFields = mapToZapFields(fields[0])
	}
	l.l.WithOptions(zap.Fields(zapFields...)).Info(
		msg,
		zap.String("app_name", l.appName),
		zap.String("run_id", l.runID),
		zap.Any("caller_file", file),
		zap.Any("caller_line", line),
		zap.Any("caller_func", funcName))
}

func (l *Logger) Warning(msg string, fields ...map[string]any) {
	file, line, funcName := getRuntimeParams()
	zapFields := []zapcore.Field{}
	if len(fields) > 0 {
		zapFields = mapToZapFields(fields[0])
	}
	l.l.WithOptions(zap.Fields(zapFields...)).Warn(
		msg,
		zap.String("app_name", l.appName),
		zap.String("run_id", l.runID),
		zap.Any("caller_file", file),
		zap.Any("caller_line", line),
		zap.Any("caller_func", funcName))

}

func (l *Logger) Debug(msg string, fields ...map[string]any) {
	file, line, funcName := getRuntimeParams()
	zapFields := []zapcore.Field{}
	if len(fields) > 0 {
		zapFields = mapToZapFields(fields[0])
	}
	l.l.WithOptions(zap.Fields(zapFields...)).Debug(
		msg,
		zap.String("app_name", l.appName),
		zap.String("run_id", l.runID),
		zap.Any("caller_file", file),
		zap.Any("caller_line", line),
		zap.Any("caller_func", funcName))
}

func mapToZapFields(data map[string]any) []zap.Field {
	zapFields := make([]zap.Field, 0, len(data))

	for k, v := range data {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return zapFields
}

func getRuntimeParams() (file string, line int, funcName string) {
	var ok bool
	var pc uintptr
	pc, file, line, ok = runtime.Caller(2)
	if !ok {
		file = "not_defined"
		line = 0
		funcName = "not_defined"
	} else {
		funcName = runtime.FuncForPC(pc).Name()
	}
	return

}

func timeEncoder(layout string, location *time.Location) func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		t = t.In(location)
		type appendTimeEncoder interface {
			AppendTimeLayout(time.Time, string)
		}
		if enc, ok := enc.(appendTimeEncoder); ok {
			enc.AppendTimeLayout(t, layout)
			return
		}
		enc.AppendString(t.Format(layout))
	}
}
