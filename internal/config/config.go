package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// TrackConfig - конфигурация одной дорожки Wingo.
// Дорожки неизменяемы и задаются при деплое в config.yaml
type TrackConfig struct {
	Name     string
	Suffix   string
	Duration time.Duration
}

type WingoConfig interface {
	Tracks() []TrackConfig
	// PreCloseCutoff - за сколько до дедлайна закрывается окно ставок
	PreCloseCutoff() time.Duration
	// SweepInterval - период автоматического прохода по дорожкам
	SweepInterval() time.Duration
}

type HTTPConfig interface {
	Address() string
	MetricsAddress() string
}

type PGConfig interface {
	DSN() string
}

type RedisConfig interface {
	Address() string
	// RiskTTL - время жизни кэша среза риска
	RiskTTL() time.Duration
}

type KafkaConfig interface {
	Brokers() string
	AuditTopic() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}
