package commands

import (
	"errors"
	"fmt"
	"time"

	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/guard"
)

const DefaultExpireBatchSize = 100

var ErrExpireStaleCargoCommandIsNotConstructed = errors.New(
	"ExpireStaleCargoCommand must be created via NewExpireStaleCargoCommand constructor",
)

// ExpireStaleCargoCommand closes CREATED cargo that nobody took within ttl.
type ExpireStaleCargoCommand struct {
	ttl       time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

// NewExpireStaleCargoCommand uses DefaultExpireBatchSize when batchSize is not positive.
func NewExpireStaleCargoCommand(ttl time.Duration, batchSize int) (ExpireStaleCargoCommand, error) {
	if ttl <= 0 {
		return ExpireStaleCargoCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"ttl", fmt.Errorf("%s is not greater than 0", ttl))
	}
	if batchSize <= 0 {
		batchSize = DefaultExpireBatchSize
	}

	return ExpireStaleCargoCommand{
		ttl:       ttl,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireStaleCargoCommand) Validate() error {
	return c.guard.Validate(ErrExpireStaleCargoCommandIsNotConstructed)
}

func (c ExpireStaleCargoCommand) TTL() time.Duration {
	return c.ttl
}

func (c ExpireStaleCargoCommand) BatchSize() int {
	return c.batchSize
}
