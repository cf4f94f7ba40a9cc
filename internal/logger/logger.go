package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New - логгер сервиса. В окружении local - человекочитаемый вывод
func New(env string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if env == "local" {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build(
		zap.Fields(
			zap.String("service", "wingo_backend"),
			zap.String("env", env),
		),
	)
}
