package log

import (
	"time"

	"go.uber.org/zap"
)

func String(key, val string) Field { return zap.String(key, val) }

func Uint64(key string, val uint64) Field { return zap.Uint64(key, val) }

func Int(key string, val int) Field { return zap.Int(key, val) }

func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }
