package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Aidin1998/laptrack/pkg/metrics"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes JSON encoded events to a Kafka topic keyed by entity id.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{writer: w, topic: topic, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.Actor == "" {
		event.Actor = ActorFrom(ctx)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		metrics.EventsPublished.WithLabelValues(event.Type, "error").Inc()
		return fmt.Errorf("marshal event %s: %w", event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EntityID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.EventsPublished.WithLabelValues(event.Type, "error").Inc()
		return fmt.Errorf("write event %s to %s: %w", event.Type, p.topic, err)
	}

	metrics.EventsPublished.WithLabelValues(event.Type, "ok").Inc()
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher logs events instead of shipping them. Used when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	if event.Actor == "" {
		event.Actor = ActorFrom(ctx)
	}
	p.logger.Info("domain event",
		zap.String("event_id", event.ID),
		zap.String("event_type", event.Type),
		zap.String("entity_id", event.EntityID),
		zap.String("actor", event.Actor),
	)
	metrics.EventsPublished.WithLabelValues(event.Type, "ok").Inc()
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// Fanout delivers each event to every publisher. It fails only when all of
// them fail.
type Fanout struct {
	publishers []Publisher
	logger     *zap.Logger
}

func NewFanout(logger *zap.Logger, publishers ...Publisher) *Fanout {
	return &Fanout{publishers: publishers, logger: logger}
}

func (f *Fanout) Publish(ctx context.Context, event Event) error {
	var lastErr error
	delivered := 0
	for i, p := range f.publishers {
		if err := p.Publish(ctx, event); err != nil {
			f.logger.Warn("failed to publish event",
				zap.Int("publisher_index", i),
				zap.String("event_type", event.Type),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		delivered++
	}
	if delivered == 0 && lastErr != nil {
		return fmt.Errorf("all publishers failed, last error: %w", lastErr)
	}
	return nil
}

func (f *Fanout) Close() error {
	var firstErr error
	for _, p := range f.publishers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
