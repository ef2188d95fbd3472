// Package logging wires the process-wide structured logger. Output goes to
// stderr so command results on stdout stay machine readable.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop().Sugar()

// Init builds the global logger. Debug mode switches to the development
// config with full debug output; otherwise only warnings and errors surface.
func Init(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	built, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = built.Sugar()
	return nil
}

// L returns the current logger. Safe to call before Init; it returns a
// no-op logger until then.
func L() *zap.SugaredLogger {
	return logger
}

// Sync flushes buffered log entries. Called once on shutdown.
func Sync() {
	_ = logger.Sync()
}
