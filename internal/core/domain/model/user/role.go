package user

import (
	"fmt"
	"strings"

	"cargo/internal/pkg/errs"
)

type Role string

const (
	RoleDriver      Role = "DRIVER"
	RoleDistributor Role = "DISTRIBUTOR"
)

// ParseRole accepts the role name in any letter case.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

func (r Role) Validate() error {
	if r != RoleDriver && r != RoleDistributor {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a role", string(r)))
	}
	return nil
}

func (r Role) String() string {
	return string(r)
}

// Capability names an operation a role may perform.
type Capability string

const (
	CreateCargo  Capability = "create cargo"
	EditCargo    Capability = "edit cargo"
	RemoveCargo  Capability = "remove cargo"
	CancelCargo  Capability = "cancel cargo"
	ListOwnCargo Capability = "list own cargo"
	TakeCargo    Capability = "take cargo"
	DeliverCargo Capability = "deliver cargo"
	FailCargo    Capability = "fail cargo"
	ListAllCargo Capability = "list all cargo"
)

func roleCapabilities() map[Role][]Capability {
	return map[Role][]Capability{
		RoleDistributor: {CreateCargo, EditCargo, RemoveCargo, CancelCargo, ListOwnCargo},
		RoleDriver:      {TakeCargo, DeliverCargo, FailCargo, ListOwnCargo, ListAllCargo},
	}
}

func (r Role) Can(c Capability) bool {
	for _, granted := range roleCapabilities()[r] {
		if granted == c {
			return true
		}
	}
	return false
}
