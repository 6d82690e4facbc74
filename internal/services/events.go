package services

import (
	"context"
	"time"

	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/logging"
)

// publish appends to the lifecycle feed. The feed is advisory: failures are logged, never returned.
func publish(ctx context.Context, events common.EventPublisher, eventType, actorID, entityID string, data map[string]interface{}) {
	if events == nil {
		return
	}

	err := events.Publish(ctx, common.LifecycleEvent{
		Type:       eventType,
		ActorID:    actorID,
		EntityID:   entityID,
		Data:       data,
		OccurredAt: time.Now(),
	})
	if err != nil {
		logging.Warn("Failed to publish lifecycle event", "type", eventType, "entity_id", entityID, "error", err)
	}
}
