package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp layout of every log line.
const TimeLayout = "2006-01-02 15:04:05,000"

type Field = zap.Field

//go:generate mockgen -destination=../../generated/mocks/logger_mock.go -package=mocks dirmirror/internal/log Logger

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Sync() error
}

//New builds a logger that writes "<timestamp> - <LEVEL> - <message>" lines to the log file
//(appending to it) and, if logToStd is set, to the standard output as well.
func New(lvl Level, logFile string, logToStd bool) (Logger, error) {
	outputs := []string{logFile}
	if logToStd {
		outputs = append(outputs, "stdout")
	}
	return newConfig(lvl, outputs).Build()
}

//NewWithCore wraps an arbitrary core, e.g. an observer in tests.
func NewWithCore(core zapcore.Core) Logger {
	return zap.New(core)
}

func newConfig(lvl Level, outputs []string) zap.Config {
	return zap.Config{
		Level:             zap.NewAtomicLevelAt(lvl.zapLevel()),
		Encoding:          "console",
		DisableCaller:     true,
		DisableStacktrace: true,
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:       "msg",
			LevelKey:         "lvl",
			TimeKey:          "ts",
			NameKey:          zapcore.OmitKey,
			CallerKey:        zapcore.OmitKey,
			FunctionKey:      zapcore.OmitKey,
			StacktraceKey:    zapcore.OmitKey,
			LineEnding:       zapcore.DefaultLineEnding,
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			EncodeTime:       zapcore.TimeEncoderOfLayout(TimeLayout),
			EncodeDuration:   zapcore.StringDurationEncoder,
			ConsoleSeparator: " - ",
		},
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}
}
