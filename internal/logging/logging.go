/* ============================================================= *\
   logging.go

   zap logger construction, with an optional rotating file sink
   (lumberjack) alongside the usual stderr console output.
\* ============================================================= */

package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a zap logger at the given level (a zap level name such as
// "debug", "info", "warn" or "error"; a name zap does not recognise falls
// back to info). When filePath is non-empty,
// log lines are written to it too, rotated by lumberjack.
func New(level, filePath string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(zapcore.AddSync(os.Stderr)), lvl),
	}

	if filePath != "" {
		rotator := &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(rotator), lvl))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

// MustNew is New, panicking on error. Used at startup where there is no
// logger yet to report the failure through.
func MustNew(level, filePath string) *zap.Logger {
	logger, err := New(level, filePath)
	if err != nil {
		panic(fmt.Sprintf("logging: %v", err))
	}
	return logger
}
