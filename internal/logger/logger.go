package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds the process-wide logger and installs it as zap.L().
func Init(env string) error {
	l, err := New(env)
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(l)

	return nil
}

func New(env string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)

	switch env {
	case "local", "development", "test":
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = conf.Build()
	default:
		conf := zap.NewProductionConfig()
		conf.EncoderConfig.TimeKey = "timestamp"
		conf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err = conf.Build()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build %s logger -> %w", env, err)
	}

	return l.With(zap.String("env", env)), nil
}
