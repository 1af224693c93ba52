package commands_test

import (
	"context"
	"sync"
	"time"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/completion"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/ports"
	"cargo/internal/pkg/errs"
)

// memoryStore keeps cargo as snapshots so every read hands out a fresh aggregate,
// and applies the same status-conditional writes as the SQL repository.
type memoryStore struct {
	mu     sync.Mutex
	cargo  map[kernel.UUID]cargo.Snapshot
	ledger map[kernel.UUID][]*completion.ShipmentCompletion
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		cargo:  make(map[kernel.UUID]cargo.Snapshot),
		ledger: make(map[kernel.UUID][]*completion.ShipmentCompletion),
	}
}

func snapshotOf(c *cargo.Cargo) cargo.Snapshot {
	return cargo.Snapshot{
		ID:            c.ID(),
		DistributorID: c.DistributorID(),
		DriverID:      c.DriverID(),
		Details:       c.Details(),
		Status:        c.Status(),
		Code:          c.VerificationCode(),
		TakingTime:    c.TakingTime(),
		DeliveredTime: c.DeliveredTime(),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
}

func (s *memoryStore) completions(cargoID kernel.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ledger[cargoID])
}

func (s *memoryStore) status(cargoID kernel.UUID) cargo.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cargo[cargoID].Status
}

func (s *memoryStore) Create() commands.CargoUoW { return memoryUoW{store: s} }

type deliveryFactory struct{ store *memoryStore }

func (f deliveryFactory) Create() commands.DeliveryUoW { return memoryUoW{store: f.store} }

type memoryUoW struct{ store *memoryStore }

func (memoryUoW) Begin(context.Context) error    { return nil }
func (memoryUoW) Commit(context.Context) error   { return nil }
func (memoryUoW) Rollback(context.Context) error { return nil }

func (u memoryUoW) CargoRepository() ports.CargoRepository           { return memoryCargoRepo(u) }
func (u memoryUoW) CompletionRepository() ports.CompletionRepository { return memoryLedger(u) }

type memoryCargoRepo struct{ store *memoryStore }

func (r memoryCargoRepo) Add(_ context.Context, c *cargo.Cargo) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.cargo[c.ID()] = snapshotOf(c)
	return nil
}

func (r memoryCargoRepo) Get(_ context.Context, id kernel.UUID) (*cargo.Cargo, error) {
	r.store.mu.Lock()
	snapshot, ok := r.store.cargo[id]
	r.store.mu.Unlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("cargo", id)
	}
	return cargo.RestoreCargo(snapshot)
}

func (r memoryCargoRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*cargo.Cargo, error) {
	return r.Get(ctx, id)
}

func (r memoryCargoRepo) UpdateFromStatus(_ context.Context, c *cargo.Cargo, expected cargo.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.cargo[c.ID()]
	if !ok || current.Status != expected {
		return errs.NewInvalidStateError("cargo", current.Status.String(), "update")
	}
	r.store.cargo[c.ID()] = snapshotOf(c)
	return nil
}

func (r memoryCargoRepo) DeleteInStatus(_ context.Context, id kernel.UUID, expected cargo.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.cargo[id]
	if !ok || current.Status != expected {
		return errs.NewInvalidStateError("cargo", current.Status.String(), "remove")
	}
	delete(r.store.cargo, id)
	return nil
}

func (r memoryCargoRepo) GetCreatedBefore(context.Context, time.Time, int) ([]*cargo.Cargo, error) {
	return nil, nil
}

type memoryLedger struct{ store *memoryStore }

func (l memoryLedger) Exists(_ context.Context, cargoID kernel.UUID) (bool, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return len(l.store.ledger[cargoID]) > 0, nil
}

func (l memoryLedger) Append(_ context.Context, record *completion.ShipmentCompletion) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	if len(l.store.ledger[record.CargoID()]) > 0 {
		return errs.NewAlreadyDeliveredError(record.CargoID().String())
	}
	l.store.ledger[record.CargoID()] = append(l.store.ledger[record.CargoID()], record)
	return nil
}

// recordingPublisher captures events, standing in for the distributor's inbox.
type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.CargoEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event ports.CargoEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) lastCode(cargoID kernel.UUID) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := len(p.events) - 1; i >= 0; i-- {
		if p.events[i].Type == ports.CargoTaken && p.events[i].CargoID.IsEqual(cargoID) {
			return p.events[i].Code
		}
	}
	return ""
}
