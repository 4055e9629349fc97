package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Advisory engine names used in events and metrics labels.
const (
	EngineHarvest  = "harvest"
	EngineMandi    = "mandi"
	EngineSpoilage = "spoilage"
	EngineContext  = "context"
)

// AdvisoryEvent is the record published for every served recommendation so
// downstream consumers can analyze advisory uptake.
type AdvisoryEvent struct {
	ID       string          `json:"id"`
	Engine   string          `json:"engine"`
	Crop     string          `json:"crop"`
	District string          `json:"district"`
	Payload  json.RawMessage `json:"payload"`
	ServedAt time.Time       `json:"served_at"`
}

// NewAdvisoryEvent wraps an engine result into an event. The payload is
// marshalled eagerly so serialization errors surface before publishing.
func NewAdvisoryEvent(engine, crop, district string, payload any) (AdvisoryEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return AdvisoryEvent{}, fmt.Errorf("marshal %s payload: %w", engine, err)
	}
	now := clock.Now().UTC()
	return AdvisoryEvent{
		ID:       fmt.Sprintf("%s-%d", engine, now.UnixNano()),
		Engine:   engine,
		Crop:     crop,
		District: district,
		Payload:  data,
		ServedAt: now,
	}, nil
}
