package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/user624-47/farmflow-sub000/pkg/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", ServiceName: "test", OutputPath: "stderr"})
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	return log
}

// cacheGeneration observes invalidation through the key: bumping the
// generation changes the key for identical params.
func cacheGeneration(qc *QueryCache, entity EntityType) string {
	return qc.Key(entity, struct{}{})
}

func TestSubscriberHandleValidEventInvalidates(t *testing.T) {
	qc := newTestCache(time.Minute, time.Minute)
	sub := NewSubscriber(nil, qc, newTestLogger(t))

	before := cacheGeneration(qc, EntityFarmers)

	payload, _ := json.Marshal(ChangeEvent{
		EventType: EventUpdate,
		Table:     "farmers",
		OrgID:     "org-1",
	})
	sub.handle("changes:farmers", payload)

	if after := cacheGeneration(qc, EntityFarmers); after == before {
		t.Error("expected a valid change event to invalidate the entity family")
	}
}

func TestSubscriberHandleTableFallsBackToChannel(t *testing.T) {
	qc := newTestCache(time.Minute, time.Minute)
	sub := NewSubscriber(nil, qc, newTestLogger(t))

	before := cacheGeneration(qc, EntityCrops)

	payload, _ := json.Marshal(ChangeEvent{
		EventType: EventDelete,
		OrgID:     "org-1",
	})
	sub.handle("changes:crops", payload)

	if after := cacheGeneration(qc, EntityCrops); after == before {
		t.Error("expected the table to be derived from the channel name")
	}
}

func TestSubscriberHandleDropsBadEvents(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		payload []byte
	}{
		{
			name:    "malformed payload",
			channel: "changes:farmers",
			payload: []byte("{not json"),
		},
		{
			name:    "unknown table",
			channel: "changes:warehouses",
			payload: mustEvent(t, ChangeEvent{EventType: EventInsert, Table: "warehouses", OrgID: "org-1"}),
		},
		{
			name:    "missing org scope",
			channel: "changes:farmers",
			payload: mustEvent(t, ChangeEvent{EventType: EventInsert, Table: "farmers"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qc := newTestCache(time.Minute, time.Minute)
			sub := NewSubscriber(nil, qc, newTestLogger(t))

			before := cacheGeneration(qc, EntityFarmers)
			sub.handle(tt.channel, tt.payload)

			if after := cacheGeneration(qc, EntityFarmers); after != before {
				t.Error("expected the event to be dropped without invalidating")
			}
		})
	}
}

func TestSubscriberHandleScopedToOneFamily(t *testing.T) {
	qc := newTestCache(time.Minute, time.Minute)
	sub := NewSubscriber(nil, qc, newTestLogger(t))

	farmersBefore := cacheGeneration(qc, EntityFarmers)
	cropsBefore := cacheGeneration(qc, EntityCrops)

	sub.handle("changes:livestock", mustEvent(t, ChangeEvent{
		EventType: EventUpdate,
		Table:     "livestock",
		OrgID:     "org-1",
	}))

	if cacheGeneration(qc, EntityFarmers) != farmersBefore {
		t.Error("livestock event must not invalidate farmers")
	}
	if cacheGeneration(qc, EntityCrops) != cropsBefore {
		t.Error("livestock event must not invalidate crops")
	}
}

func TestPublisherNilSafe(t *testing.T) {
	var p *Publisher
	// must not panic with no publisher wired
	p.Publish(context.Background(), ChangeEvent{EventType: EventInsert, Table: "farmers", OrgID: "org-1"})

	p = NewPublisher(nil, newTestLogger(t))
	p.Publish(context.Background(), ChangeEvent{EventType: EventInsert, Table: "farmers", OrgID: "org-1"})
}

func mustEvent(t *testing.T, event ChangeEvent) []byte {
	t.Helper()
	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to encode event: %v", err)
	}
	return payload
}
