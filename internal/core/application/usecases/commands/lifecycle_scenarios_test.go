package commands_test

import (
	"errors"
	"sync"
	"testing"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/cargo"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lifecycle struct {
	store     *memoryStore
	publisher *recordingPublisher
	create    commands.CreateCargoCommandHandler
	edit      commands.EditCargoCommandHandler
	remove    commands.RemoveCargoCommandHandler
	take      commands.TakeCargoCommandHandler
	deliver   commands.DeliverCargoCommandHandler
}

func newLifecycle() lifecycle {
	store := newMemoryStore()
	publisher := &recordingPublisher{}

	return lifecycle{
		store:     store,
		publisher: publisher,
		create:    commands.NewCreateCargoCommandHandler(store, fixedClock),
		edit:      commands.NewEditCargoCommandHandler(store, fixedClock),
		remove:    commands.NewRemoveCargoCommandHandler(store),
		take: commands.NewTakeCargoCommandHandler(
			store, cargo.NewRandomCodeGenerator(), publisher, nil, fixedClock),
		deliver: commands.NewDeliverCargoCommandHandler(deliveryFactory{store: store}, publisher, nil, fixedClock),
	}
}

func (l lifecycle) postCargo(t *testing.T, owner user.Principal) kernel.UUID {
	t.Helper()

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateCargoCommand(owner, id, testDetails(t))
	require.NoError(t, err)
	require.NoError(t, l.create.Handle(t.Context(), cmd))
	return id
}

func (l lifecycle) takeCargo(t *testing.T, driver user.Principal, id kernel.UUID) error {
	t.Helper()

	cmd, err := commands.NewTakeCargoCommand(driver, id)
	require.NoError(t, err)
	return l.take.Handle(t.Context(), cmd)
}

func (l lifecycle) deliverCargo(t *testing.T, driver user.Principal, id kernel.UUID, code string) error {
	t.Helper()

	cmd, err := commands.NewDeliverCargoCommand(driver, id, code)
	require.NoError(t, err)
	return l.deliver.Handle(t.Context(), cmd)
}

func TestLifecycle_TakeDeliverScenario(t *testing.T) {
	l := newLifecycle()
	distributor := distributorPrincipal(t)
	d1, d2 := driverPrincipal(t), driverPrincipal(t)

	c1 := l.postCargo(t, distributor)
	assert.Equal(t, cargo.Created, l.store.status(c1))

	require.NoError(t, l.takeCargo(t, d1, c1))
	assert.Equal(t, cargo.PickedUp, l.store.status(c1))

	code := l.publisher.lastCode(c1)
	require.Len(t, code, 6)

	require.ErrorIs(t, l.takeCargo(t, d2, c1), errs.ErrInvalidState)

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	require.ErrorIs(t, l.deliverCargo(t, d1, c1, wrong), errs.ErrVerificationFailed)
	assert.Equal(t, cargo.PickedUp, l.store.status(c1))
	assert.Zero(t, l.store.completions(c1))

	require.ErrorIs(t, l.deliverCargo(t, d2, c1, code), errs.ErrAccessDenied)

	require.NoError(t, l.deliverCargo(t, d1, c1, code))
	assert.Equal(t, cargo.Delivered, l.store.status(c1))
	assert.Equal(t, 1, l.store.completions(c1))

	require.ErrorIs(t, l.deliverCargo(t, d1, c1, code), errs.ErrAlreadyDelivered)
	assert.Equal(t, 1, l.store.completions(c1))
}

func TestLifecycle_ForeignDistributorCannotEdit(t *testing.T) {
	l := newLifecycle()
	u1, u2 := distributorPrincipal(t), distributorPrincipal(t)

	c2 := l.postCargo(t, u1)

	cmd, err := commands.NewEditCargoCommand(u2, c2, testDetails(t))
	require.NoError(t, err)

	require.ErrorIs(t, l.edit.Handle(t.Context(), cmd), errs.ErrAccessDenied)
}

func TestLifecycle_EditAndRemoveAfterTakeAreInvalidState(t *testing.T) {
	l := newLifecycle()
	owner := distributorPrincipal(t)
	id := l.postCargo(t, owner)
	require.NoError(t, l.takeCargo(t, driverPrincipal(t), id))

	for _, caller := range []user.Principal{owner, distributorPrincipal(t)} {
		edit, _ := commands.NewEditCargoCommand(caller, id, testDetails(t))
		require.ErrorIs(t, l.edit.Handle(t.Context(), edit), errs.ErrInvalidState)

		remove, _ := commands.NewRemoveCargoCommand(caller, id)
		require.ErrorIs(t, l.remove.Handle(t.Context(), remove), errs.ErrInvalidState)
	}

	assert.Equal(t, cargo.PickedUp, l.store.status(id))
}

func TestLifecycle_ConcurrentTakesHaveExactlyOneWinner(t *testing.T) {
	const drivers = 32

	l := newLifecycle()
	id := l.postCargo(t, distributorPrincipal(t))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []kernel.UUID
		lost    int
		other   []error
	)

	start := make(chan struct{})
	for range drivers {
		driver := driverPrincipal(t)
		cmd, err := commands.NewTakeCargoCommand(driver, id)
		require.NoError(t, err)

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			err := l.take.Handle(t.Context(), cmd)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners = append(winners, driver.ID)
			case errors.Is(err, errs.ErrInvalidState):
				lost++
			default:
				other = append(other, err)
			}
		}()
	}

	close(start)
	wg.Wait()

	require.Empty(t, other)
	require.Len(t, winners, 1)
	assert.Equal(t, drivers-1, lost)

	stored, err := memoryCargoRepo{store: l.store}.Get(t.Context(), id)
	require.NoError(t, err)
	assert.True(t, stored.DriverID().IsEqual(winners[0]))
}

func TestLifecycle_RetakeIsImpossible(t *testing.T) {
	l := newLifecycle()
	driver := driverPrincipal(t)
	id := l.postCargo(t, distributorPrincipal(t))

	require.NoError(t, l.takeCargo(t, driver, id))
	code := l.publisher.lastCode(id)

	require.ErrorIs(t, l.takeCargo(t, driver, id), errs.ErrInvalidState)
	assert.Equal(t, code, l.publisher.lastCode(id))
}
