package command

import (
	"context"

	"github.com/mams-platform/mams/kafka"
	"github.com/mams-platform/mams/pkg/logger"
)

// MovementPublisher publishes committed ledger movements to the audit stream
type MovementPublisher interface {
	PublishAssetMovement(ctx context.Context, event kafka.AssetMovementEvent) error
}

// publish sends the event best effort. The mutation already committed; a
// broker outage must not fail the operation.
func publish(ctx context.Context, publisher MovementPublisher, event kafka.AssetMovementEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.PublishAssetMovement(ctx, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("event_type", event.EventType).
			Msg("Failed to publish asset movement event")
	}
}
