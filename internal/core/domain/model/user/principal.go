package user

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
)

// Principal is the authenticated caller of a core operation.
type Principal struct {
	ID   kernel.UUID
	Role Role
}

func NewPrincipal(id kernel.UUID, role Role) (Principal, error) {
	p := Principal{ID: id, Role: role}
	if err := p.Validate(); err != nil {
		return Principal{}, err
	}
	return p, nil
}

func (p Principal) Validate() error {
	return errors.Join(p.ID.Validate(), p.Role.Validate())
}

// Authorize fails with an AccessDeniedError when the role lacks the capability.
func (p Principal) Authorize(c Capability) error {
	if !p.Role.Can(c) {
		return errs.NewAccessDeniedError(string(p.Role)+" "+p.ID.String(), string(c))
	}
	return nil
}

func (p Principal) String() string {
	return string(p.Role) + ":" + p.ID.String()
}
