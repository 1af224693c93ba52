package ports

import (
	"context"
	"time"

	"cargo/internal/core/domain/model/kernel"
)

type EventType string

const (
	CargoTaken     EventType = "cargo.taken"
	CargoDelivered EventType = "cargo.delivered"
	CargoCancelled EventType = "cargo.cancelled"
	CargoFailed    EventType = "cargo.failed"
	CargoExpired   EventType = "cargo.expired"
)

// CargoEvent is published after a lifecycle change has been committed.
// Code is only filled for CargoTaken: it is how the verification code reaches
// the distributor without being returned from take.
type CargoEvent struct {
	Type          EventType
	CargoID       kernel.UUID
	DistributorID kernel.UUID
	DriverID      *kernel.UUID
	Code          string
	OccurredAt    time.Time
}

// EventPublisher delivers committed lifecycle events to interested parties.
type EventPublisher interface {
	Publish(ctx context.Context, event CargoEvent) error
}
