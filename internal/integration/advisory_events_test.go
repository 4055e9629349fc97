//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrichain/advisory-service/internal/adapter/kafka"
	"github.com/agrichain/advisory-service/internal/config"
	"github.com/agrichain/advisory-service/internal/domain"
	"github.com/agrichain/advisory-service/internal/observability"
)

const testAdvisoryTopic = "test-advisory-events"

// publishedEvent holds a deserialized message read from the advisory topic.
type publishedEvent struct {
	Event   domain.AdvisoryEvent
	Key     string
	Headers map[string]string
}

// readEvent reads a single message from the consumer and deserializes it.
func readEvent(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedEvent {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from advisory topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var event domain.AdvisoryEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event), "unmarshal advisory event")

	return publishedEvent{
		Event:   event,
		Key:     string(msg.Key),
		Headers: headers,
	}
}

func newConsumer(t *testing.T, broker string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testAdvisoryTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

// TestWriterRoundTrip verifies that kafka.Writer publishes an advisory event
// with its key and headers intact through a real broker.
func TestWriterRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAdvisoryTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaAdvisoryTopic: testAdvisoryTopic,
	}

	writer := kafka.NewWriter(cfg, discardLogger(), observability.NewMetricsForTesting())
	t.Cleanup(func() { _ = writer.Close() })

	rec := domain.HarvestRecommendation{Crop: "Tomato", Confidence: domain.ConfidenceHigh}
	event, err := domain.NewAdvisoryEvent(domain.EngineHarvest, "Tomato", "Pune", rec)
	require.NoError(t, err)

	require.NoError(t, writer.Publish(ctx, event))

	pe := readEvent(ctx, t, newConsumer(t, broker))
	assert.Equal(t, event.ID, pe.Key)
	assert.Equal(t, domain.EngineHarvest, pe.Headers["engine"])
	_, err = time.Parse(time.RFC3339, pe.Headers["served_at"])
	assert.NoError(t, err, "served_at should be valid RFC3339")

	assert.Equal(t, domain.EngineHarvest, pe.Event.Engine)
	assert.Equal(t, "Tomato", pe.Event.Crop)
	assert.Equal(t, "Pune", pe.Event.District)

	var payload domain.HarvestRecommendation
	require.NoError(t, json.Unmarshal(pe.Event.Payload, &payload))
	assert.Equal(t, domain.ConfidenceHigh, payload.Confidence)
}

// TestWriterPublishesBatch verifies that a multi-engine batch lands as one
// message per event, each carrying its own engine header.
func TestWriterPublishesBatch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAdvisoryTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaAdvisoryTopic: testAdvisoryTopic,
	}

	writer := kafka.NewWriter(cfg, discardLogger(), observability.NewMetricsForTesting())
	t.Cleanup(func() { _ = writer.Close() })

	harvest, err := domain.NewAdvisoryEvent(domain.EngineHarvest, "Wheat", "Nashik",
		domain.HarvestRecommendation{Crop: "Wheat", Confidence: domain.ConfidenceMedium})
	require.NoError(t, err)
	mandi, err := domain.NewAdvisoryEvent(domain.EngineMandi, "Wheat", "Nashik",
		[]domain.MandiOption{{Market: "Nashik Mandi", NetPerQtl: 2100}})
	require.NoError(t, err)
	spoilage, err := domain.NewAdvisoryEvent(domain.EngineSpoilage, "Wheat", "Nashik",
		domain.SpoilageAssessment{Risk: domain.RiskLow, ProbabilityPct: 12})
	require.NoError(t, err)

	require.NoError(t, writer.Publish(ctx, harvest, mandi, spoilage))

	consumer := newConsumer(t, broker)
	received := make([]publishedEvent, 0, 3)
	for len(received) < 3 {
		received = append(received, readEvent(ctx, t, consumer))
	}

	engines := map[string]int{}
	keys := map[string]bool{}
	for _, pe := range received {
		engines[pe.Event.Engine]++
		keys[pe.Key] = true

		assert.Equal(t, pe.Event.Engine, pe.Headers["engine"], "engine header matches payload")
		assert.Contains(t, pe.Headers, "served_at")
		assert.Equal(t, "Wheat", pe.Event.Crop)
		assert.Equal(t, "Nashik", pe.Event.District)
		assert.False(t, pe.Event.ServedAt.IsZero(), "served_at should be set")
	}

	assert.Equal(t, 1, engines[domain.EngineHarvest])
	assert.Equal(t, 1, engines[domain.EngineMandi])
	assert.Equal(t, 1, engines[domain.EngineSpoilage])
	assert.Len(t, keys, 3, "event IDs should be unique")
}
