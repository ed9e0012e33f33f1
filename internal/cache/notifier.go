package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/user624-47/farmflow-sub000/pkg/logger"
	"github.com/user624-47/farmflow-sub000/pkg/redis"
)

// Change event types
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// channelPrefix namespaces the pub/sub channels used for change notifications
const channelPrefix = "changes:"

// ChangeEvent is the payload published after every successful mutation and
// consumed by peer processes to invalidate their query caches. Delivery is
// best-effort: there is no replay for subscribers that were offline.
type ChangeEvent struct {
	EventType string          `json:"event_type"`
	Schema    string          `json:"schema"`
	Table     string          `json:"table"`
	OrgID     string          `json:"org_id"`
	New       json.RawMessage `json:"new,omitempty"`
	Old       json.RawMessage `json:"old,omitempty"`
}

// Publisher publishes change events over Redis pub/sub
type Publisher struct {
	client *redis.Client
	log    *logger.Logger
}

// NewPublisher creates a Publisher
func NewPublisher(client *redis.Client, log *logger.Logger) *Publisher {
	return &Publisher{client: client, log: log}
}

// Publish sends the event on the table's channel. A publish failure is
// logged and swallowed: the local cache was already invalidated by the
// mutation path, and remote staleness resolves at TTL expiry.
func (p *Publisher) Publish(ctx context.Context, event ChangeEvent) {
	if p == nil || p.client == nil {
		return
	}
	if event.Schema == "" {
		event.Schema = "public"
	}
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.ErrorContext(ctx, "failed to encode change event", zap.Error(err))
		return
	}
	channel := channelPrefix + event.Table
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		p.log.WarnContext(ctx, "failed to publish change event",
			zap.String("channel", channel),
			zap.Error(err))
	}
}

// Subscriber maintains a standing pattern subscription over every change
// channel and invalidates the query cache when events arrive. Reconnection
// after a dropped connection is go-redis's responsibility.
type Subscriber struct {
	client *redis.Client
	cache  *QueryCache
	log    *logger.Logger
}

// NewSubscriber creates a Subscriber
func NewSubscriber(client *redis.Client, qc *QueryCache, log *logger.Logger) *Subscriber {
	return &Subscriber{client: client, cache: qc, log: log}
}

// Start launches the subscription goroutine. It runs until ctx is cancelled.
func (s *Subscriber) Start(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("redis client is required")
	}

	pubsub := s.client.PSubscribe(ctx, channelPrefix+"*")
	// force the subscription before we report readiness
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return fmt.Errorf("failed to subscribe to change channels: %w", err)
	}

	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				s.handle(msg.Channel, []byte(msg.Payload))
			}
		}
	}()

	return nil
}

// handle validates one incoming event and invalidates the matching entity
// family. The subscription is organization-agnostic, so the org scope on the
// payload is checked before acting.
func (s *Subscriber) handle(channel string, payload []byte) {
	var event ChangeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.log.Warn("dropping malformed change event",
			zap.String("channel", channel),
			zap.Error(err))
		return
	}

	table := event.Table
	if table == "" {
		table = strings.TrimPrefix(channel, channelPrefix)
	}

	entity, ok := EntityForTable(table)
	if !ok {
		s.log.Warn("change event for unknown table", zap.String("table", table))
		return
	}

	if event.OrgID == "" {
		// events without a tenant scope cannot be trusted to target our rows
		s.log.Warn("dropping change event without org scope", zap.String("table", table))
		return
	}

	s.cache.Invalidate(entity)
	s.log.Debug("cache invalidated by change event",
		zap.String("entity", string(entity)),
		zap.String("event_type", event.EventType),
		zap.String("org_id", event.OrgID))
}
