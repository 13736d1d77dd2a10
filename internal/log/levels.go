package log

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level string

const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

//ParseLevel is case-insensitive. An unknown name is reported as not ok.
func ParseLevel(s string) (Level, bool) {
	lvl := Level(strings.ToLower(s))
	return lvl, lvl.IsValid()
}

func (l Level) IsValid() bool {
	_, ok := levelsMapping[Level(strings.ToLower(string(l)))]
	return ok
}

func (l Level) zapLevel() zapcore.Level {
	if zl, ok := levelsMapping[Level(strings.ToLower(string(l)))]; ok {
		return zl
	}
	return zap.InfoLevel
}

var levelsMapping = map[Level]zapcore.Level{
	DebugLevel: zap.DebugLevel,
	InfoLevel:  zap.InfoLevel,
	WarnLevel:  zap.WarnLevel,
	ErrorLevel: zap.ErrorLevel,
}
