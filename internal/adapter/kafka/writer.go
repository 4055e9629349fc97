package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/agrichain/advisory-service/internal/config"
	"github.com/agrichain/advisory-service/internal/domain"
	"github.com/agrichain/advisory-service/internal/observability"
)

// Writer publishes advisory events to a Kafka topic.
// It implements advisor.EventPublisher.
type Writer struct {
	writer  *kafkago.Writer
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewWriter creates a Kafka producer for the configured advisory topic.
func NewWriter(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAdvisoryTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger, metrics: metrics}
}

// Publish serializes and writes advisory events in a single WriteMessages call.
func (w *Writer) Publish(ctx context.Context, events ...domain.AdvisoryEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(events))
	for i := range events {
		msg, err := serializeToMessage(events[i])
		if err != nil {
			w.metrics.PublishErrors.Inc()
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		w.metrics.PublishErrors.Inc()
		return fmt.Errorf("write advisory events: %w", err)
	}
	w.metrics.EventsPublished.Add(float64(len(events)))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an AdvisoryEvent into a Kafka message.
func serializeToMessage(event domain.AdvisoryEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize advisory event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "engine", Value: []byte(event.Engine)},
			{Key: "served_at", Value: []byte(event.ServedAt.Format(time.RFC3339))},
		},
	}, nil
}
