package commands_test

import (
	"context"
	"time"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/completion"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockCargoRepository struct{ mock.Mock }

func (m *MockCargoRepository) Add(ctx context.Context, c *cargo.Cargo) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCargoRepository) Get(ctx context.Context, id kernel.UUID) (*cargo.Cargo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cargo.Cargo), args.Error(1)
}

func (m *MockCargoRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*cargo.Cargo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cargo.Cargo), args.Error(1)
}

func (m *MockCargoRepository) UpdateFromStatus(ctx context.Context, c *cargo.Cargo, expected cargo.Status) error {
	args := m.Called(ctx, c, expected)
	return args.Error(0)
}

func (m *MockCargoRepository) DeleteInStatus(ctx context.Context, id kernel.UUID, expected cargo.Status) error {
	args := m.Called(ctx, id, expected)
	return args.Error(0)
}

func (m *MockCargoRepository) GetCreatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*cargo.Cargo, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cargo.Cargo), args.Error(1)
}

type MockCompletionRepository struct{ mock.Mock }

func (m *MockCompletionRepository) Exists(ctx context.Context, cargoID kernel.UUID) (bool, error) {
	args := m.Called(ctx, cargoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompletionRepository) Append(ctx context.Context, record *completion.ShipmentCompletion) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CargoRepository() ports.CargoRepository {
	args := m.Called()
	return args.Get(0).(ports.CargoRepository)
}

func (m *MockUoW) CompletionRepository() ports.CompletionRepository {
	args := m.Called()
	return args.Get(0).(ports.CompletionRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockCargoUoWFactory struct{ mock.Mock }

func (m *MockCargoUoWFactory) Create() commands.CargoUoW {
	args := m.Called()
	return args.Get(0).(commands.CargoUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockCodeGenerator struct{ mock.Mock }

func (m *MockCodeGenerator) Generate() (cargo.VerificationCode, error) {
	args := m.Called()
	return args.Get(0).(cargo.VerificationCode), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.CargoEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
