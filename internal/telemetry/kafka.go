// v1
// internal/telemetry/kafka.go
package telemetry

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/nrg-champ/envstation/internal/circuitbreaker"
)

// KafkaPublisher writes readings keyed by station id so one station always
// lands on one partition. Writes go through a circuit breaker: when the
// cluster is away the station fast-fails instead of stalling every tick.
type KafkaPublisher struct {
	w   *kafka.Writer
	br  *circuitbreaker.Breaker
	log *slog.Logger
}

var _ Publisher = (*KafkaPublisher)(nil)

func NewKafka(brokers []string, topic string, br *circuitbreaker.Breaker, log *slog.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
	log.Info("kafka writer ready", "topic", topic, "brokers", brokers)
	return &KafkaPublisher{w: w, br: br, log: log.With(slog.String("component", "kafka_publisher"))}
}

func (p *KafkaPublisher) Publish(ctx context.Context, r Reading) error {
	b, err := json.Marshal(r)
	if err != nil {
		p.log.Error("marshal failed", "err", err)
		return err
	}
	return p.br.Execute(ctx, func(ctx context.Context) error {
		return p.w.WriteMessages(ctx, kafka.Message{Key: []byte(r.StationID), Value: b, Time: r.Timestamp})
	})
}

func (p *KafkaPublisher) Close() {
	if err := p.w.Close(); err != nil {
		p.log.Error("failed to close kafka writer", "err", err)
	}
}
