package commands

import (
	"context"
	"log/slog"

	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/completion"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/core/ports"
	"cargo/internal/pkg/errs"
)

// DeliverCargoCommandHandler completes a cargo and appends it to the completion ledger.
//
// Steps, all inside one transaction holding the cargo row lock:
//  1. load the cargo (ObjectNotFoundError) bound to the caller (AccessDeniedError)
//  2. compare the presented code exactly (VerificationError)
//  3. look the cargo up in the ledger (AlreadyDeliveredError), whatever its status says
//  4. mark it DELIVERED with a write conditional on PICKED_UP
//  5. append the completion record; the ledger unique index is the last guard
type DeliverCargoCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
	clock      Clock
}

func NewDeliverCargoCommandHandler(
	uowFactory DeliveryUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
	clock Clock,
) DeliverCargoCommandHandler {
	return DeliverCargoCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     orDefaultLogger(logger).With("component", "DeliverCargoCommandHandler"),
		clock:      orSystemClock(clock),
	}
}

func (h DeliverCargoCommandHandler) Handle(ctx context.Context, cmd DeliverCargoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Principal().Authorize(user.DeliverCargo); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cargoRepo := uow.CargoRepository()
	ledger := uow.CompletionRepository()

	c, err := cargoRepo.GetForUpdate(ctx, cmd.CargoID())
	if err != nil {
		return err
	}

	if err = c.EnsureDrivenBy(cmd.Principal().ID, "deliver"); err != nil {
		return err
	}

	if err = c.VerifyCode(cmd.Code()); err != nil {
		return err
	}

	delivered, err := ledger.Exists(ctx, c.ID())
	if err != nil {
		return err
	}
	if delivered {
		return errs.NewAlreadyDeliveredError(c.ID().String())
	}

	if err = c.Deliver(h.clock()); err != nil {
		return err
	}

	if err = cargoRepo.UpdateFromStatus(ctx, c, cargo.PickedUp); err != nil {
		return err
	}

	record, err := completion.FromDeliveredCargo(kernel.NewUUID(), c)
	if err != nil {
		return err
	}

	if err = ledger.Append(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "cargo delivered",
		"cargo_id", c.ID().String(),
		"driver_id", cmd.Principal().ID.String(),
	)
	publishAfterCommit(ctx, h.publisher, h.logger, ports.CargoDelivered, c, "", record.DeliveredAt())
	return nil
}
