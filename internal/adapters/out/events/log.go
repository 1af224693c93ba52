package events

import (
	"context"
	"log/slog"

	"cargo/internal/core/ports"
)

// LogPublisher stands in for a broker in development. It never logs the
// verification code itself.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With("component", "LogPublisher")}
}

func (p *LogPublisher) Publish(ctx context.Context, event ports.CargoEvent) error {
	attrs := []any{
		"event_type", string(event.Type),
		"routing_key", RoutingKey(event),
		"cargo_id", event.CargoID.String(),
		"has_code", event.Code != "",
		"occurred_at", event.OccurredAt,
	}
	if event.DriverID != nil {
		attrs = append(attrs, "driver_id", event.DriverID.String())
	}

	p.logger.InfoContext(ctx, "cargo event", attrs...)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
