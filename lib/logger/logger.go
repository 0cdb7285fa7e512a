package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// level is shared by every logger built with New so SetLevel affects them all.
var level = zap.NewAtomicLevelAt(zap.InfoLevel)

func New(service string) (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.Level = level
	config.DisableStacktrace = true
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.InitialFields = map[string]interface{}{
		"service": service,
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}

// SetLevel accepts zap level names such as "debug", "info" or "error".
func SetLevel(name string) error {
	return level.UnmarshalText([]byte(name))
}
