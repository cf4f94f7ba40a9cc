package env

import (
	"errors"
	"os"
	"time"

	"wingo_backend/internal/config"
)

const (
	redisAddressEnvName = "REDIS_ADDRESS"
	riskTTLEnvName      = "RISK_CACHE_TTL"
)

type redisConfig struct {
	address string
	riskTTL time.Duration
}

func NewRedisConfig() (config.RedisConfig, error) {
	address := os.Getenv(redisAddressEnvName)
	if len(address) == 0 {
		return nil, errors.New("redis address not found")
	}

	riskTTL := 2 * time.Second
	if v := os.Getenv(riskTTLEnvName); len(v) > 0 {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.New("invalid risk cache ttl")
		}
		riskTTL = parsed
	}

	return &redisConfig{
		address: address,
		riskTTL: riskTTL,
	}, nil
}

func (cfg *redisConfig) Address() string {
	return cfg.address
}

func (cfg *redisConfig) RiskTTL() time.Duration {
	return cfg.riskTTL
}
