package service

import (
	"context"
	"encoding/json"

	"github.com/user624-47/farmflow-sub000/internal/cache"
)

// publishChange emits a change event after a successful mutation. Encoding
// failures degrade to an event without the row payload; subscribers only need
// the table and org scope to invalidate.
func publishChange(ctx context.Context, pub *cache.Publisher, eventType, table, orgID string, newRow, oldRow interface{}) {
	if pub == nil {
		return
	}
	event := cache.ChangeEvent{
		EventType: eventType,
		Table:     table,
		OrgID:     orgID,
	}
	if newRow != nil {
		if raw, err := json.Marshal(newRow); err == nil {
			event.New = raw
		}
	}
	if oldRow != nil {
		if raw, err := json.Marshal(oldRow); err == nil {
			event.Old = raw
		}
	}
	pub.Publish(ctx, event)
}
