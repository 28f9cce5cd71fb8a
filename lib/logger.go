package s3thumbnail

import (
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.Logger
	// RunID tags every entry of one run.
	RunID string
}

// NewLogger builds the run logger from the logging mode and output path of
// config. Every entry carries a fresh run ID and the bucket pair of the run.
func NewLogger(config *Config) (*Logger, error) {
	var zapConfig zap.Config
	if config.Logging == "development" {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zapConfig.OutputPaths = []string{config.LogOutputPath}

	runID := uuid.NewV4().String()
	zapLogger, err := zapConfig.Build(zap.Fields(
		zap.String("run", runID),
		zap.String("input", config.InputBucket),
		zap.String("output", config.OutputBucket),
	))
	if err != nil {
		return nil, err
	}

	_, err = zap.RedirectStdLogAt(zapLogger, zap.DebugLevel)
	if err != nil {
		return nil, err
	}

	return &Logger{Logger: zapLogger, RunID: runID}, nil
}

// NewNopLogger discards everything.
func NewNopLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// ForKey returns a logger that tags every entry with key.
func (l *Logger) ForKey(key ObjectKey) *Logger {
	return &Logger{Logger: l.With(zap.String("key", key)), RunID: l.RunID}
}

// For aws log library
func (l *Logger) Log(input ...interface{}) {
	l.Sugar().Debug(input...)
}
