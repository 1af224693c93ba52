package cargo

import (
	"fmt"

	"cargo/internal/pkg/errs"
)

const entityName = "cargo"

// Status is the lifecycle state of a cargo. It is persisted as its integer value
// and exposed to clients by its String form.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Created is the initial state: the cargo waits for a driver.
	Created

	// PickedUp means a driver took the cargo and a verification code was issued.
	PickedUp

	// Delivered means the driver presented the correct code. Terminal.
	Delivered

	// Cancelled means the owning distributor withdrew the cargo. Terminal.
	Cancelled

	// Expired means nobody took the cargo in time. Terminal.
	Expired

	// Failed means the bound driver reported the cargo undeliverable. Terminal.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Created:   "CREATED",
		PickedUp:  "PICKED_UP",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
		Expired:   "EXPIRED",
		Failed:    "FAILED",
	}
}

// ParseStatus converts the external name of a status back to its value.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and any value outside the declared range.
func (s Status) Validate() error {
	if s <= Unknown || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Expired || s == Failed
}

// ValidateEdit allows changes to the cargo details only while it waits for a driver.
func (s Status) ValidateEdit() error {
	return s.require("edit", Created)
}

// ValidateRemove allows deletion only while the cargo was never claimed.
func (s Status) ValidateRemove() error {
	return s.require("remove", Created)
}

// ValidateCanHaveDriver checks the consistency between the status and the driver binding.
//
// Business rules:
//   - Created and Expired cargo never have a driver
//   - PickedUp, Delivered and Failed cargo always have one
//   - Cancelled cargo keeps whatever binding it had
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	switch {
	case hasDriver && (s == Created || s == Expired):
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not a valid status to have a driver", s))
	case !hasDriver && (s == PickedUp || s == Delivered || s == Failed):
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not a valid status to have no driver", s))
	}
	return nil
}

// ValidateCanHaveCode checks that a verification code exists from pickup onwards.
func (s Status) ValidateCanHaveCode(hasCode bool) error {
	switch {
	case hasCode && (s == Created || s == Expired):
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not a valid status to have a verification code", s))
	case !hasCode && (s == PickedUp || s == Delivered || s == Failed):
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%s is not a valid status to have no verification code", s))
	}
	return nil
}

// Take transitions Created to PickedUp.
func (s Status) Take() (Status, error) {
	if err := s.require("take", Created); err != nil {
		return Unknown, err
	}
	return PickedUp, nil
}

// Deliver transitions PickedUp to Delivered.
func (s Status) Deliver() (Status, error) {
	if err := s.require("deliver", PickedUp); err != nil {
		return Unknown, err
	}
	return Delivered, nil
}

// Cancel transitions Created or PickedUp to Cancelled.
func (s Status) Cancel() (Status, error) {
	if err := s.require("cancel", Created, PickedUp); err != nil {
		return Unknown, err
	}
	return Cancelled, nil
}

// Expire transitions Created to Expired.
func (s Status) Expire() (Status, error) {
	if err := s.require("expire", Created); err != nil {
		return Unknown, err
	}
	return Expired, nil
}

// Fail transitions PickedUp to Failed.
func (s Status) Fail() (Status, error) {
	if err := s.require("fail", PickedUp); err != nil {
		return Unknown, err
	}
	return Failed, nil
}

func (s Status) require(action string, allowed ...Status) error {
	for _, a := range allowed {
		if s == a {
			return nil
		}
	}
	return errs.NewInvalidStateError(entityName, s.String(), action)
}
