package audit

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher - публикация записей реестра в Kafka
func NewKafkaPublisher(brokers string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaPublisher) PublishBetSettled(ctx context.Context, rec BetSettled) error {
	rec.TsUnixMs = time.Now().UnixMilli()

	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(rec.Period),
		Value: b,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
