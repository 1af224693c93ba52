package user

import (
	"fmt"
	"regexp"
	"strings"

	"cargo/internal/pkg/errs"
)

var taxIDPattern = regexp.MustCompile(`^[0-9]{9,12}$`)

// Profile is the role specific payload of a user. It is implemented only by
// DriverProfile and DistributorProfile.
type Profile interface {
	Role() Role
	Validate() error
	isProfile()
}

type DriverProfile struct {
	VehicleType string
}

func (DriverProfile) Role() Role { return RoleDriver }
func (DriverProfile) isProfile() {}

func (p DriverProfile) Validate() error {
	if strings.TrimSpace(p.VehicleType) == "" {
		return errs.NewValueIsRequiredError("vehicle type")
	}
	return nil
}

type DistributorProfile struct {
	TaxID string
}

func (DistributorProfile) Role() Role { return RoleDistributor }
func (DistributorProfile) isProfile() {}

func (p DistributorProfile) Validate() error {
	if !taxIDPattern.MatchString(p.TaxID) {
		return errs.NewValueIsInvalidErrorWithCause("tax id", fmt.Errorf("%q is not 9 to 12 digits", p.TaxID))
	}
	return nil
}
