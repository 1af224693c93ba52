package commands

import (
	"context"
	"log/slog"
	"time"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/ports"
)

const publishTimeout = 5 * time.Second

// publishAfterCommit sends a lifecycle event once the change is durable. A failed
// publish is logged and never undoes the committed change. The caller's
// cancellation is detached so an aborted request still gets its event out, but
// the publish is bounded by publishTimeout.
func publishAfterCommit(
	ctx context.Context,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	eventType ports.EventType,
	c *cargo.Cargo,
	code string,
	occurredAt time.Time,
) {
	if publisher == nil {
		return
	}

	event := ports.CargoEvent{
		Type:          eventType,
		CargoID:       c.ID(),
		DistributorID: c.DistributorID(),
		DriverID:      c.DriverID(),
		Code:          code,
		OccurredAt:    occurredAt,
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := publisher.Publish(publishCtx, event); err != nil {
		logger.WarnContext(ctx, "failed to publish cargo event",
			"event", string(eventType),
			"cargo_id", c.ID().String(),
			"error", err,
		)
	}
}

func orDefaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func orSystemClock(clock Clock) Clock {
	if clock == nil {
		return SystemClock
	}
	return clock
}
