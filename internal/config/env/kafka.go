package env

import (
	"errors"
	"os"

	"wingo_backend/internal/config"
)

const (
	kafkaBrokersEnvName = "KAFKA_BROKERS"
	auditTopicEnvName   = "KAFKA_TOPIC_AUDIT"
)

type kafkaConfig struct {
	brokers    string
	auditTopic string
}

func NewKafkaConfig() (config.KafkaConfig, error) {
	brokers := os.Getenv(kafkaBrokersEnvName)
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers not found")
	}

	topic := os.Getenv(auditTopicEnvName)
	if len(topic) == 0 {
		topic = "wingo_bet_settled"
	}

	return &kafkaConfig{
		brokers:    brokers,
		auditTopic: topic,
	}, nil
}

func (cfg *kafkaConfig) Brokers() string {
	return cfg.brokers
}

func (cfg *kafkaConfig) AuditTopic() string {
	return cfg.auditTopic
}
