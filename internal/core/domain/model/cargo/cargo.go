package cargo

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/guard"
)

const DescriptionMaxLength = 1000

var (
	// ErrCargoIsNotConstructed is returned when a Cargo was not created through
	// NewCargo or RestoreCargo.
	ErrCargoIsNotConstructed = errs.NewValueIsRequiredError("cargo must be created via NewCargo or RestoreCargo")

	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{5,19}$`)
)

// Details groups the attributes a distributor supplies on creation and may
// change while the cargo is still CREATED.
type Details struct {
	Description  string
	Pickup       kernel.Location
	Dropoff      kernel.Location
	Measure      Measure
	ContactPhone string
}

// Validate reports every missing or malformed field at once.
func (d Details) Validate() error {
	var phoneErr error
	switch phone := strings.TrimSpace(d.ContactPhone); {
	case phone == "":
		phoneErr = errs.NewValueIsRequiredError("contact phone")
	case !phonePattern.MatchString(phone):
		phoneErr = errs.NewValueIsInvalidErrorWithCause("contact phone", fmt.Errorf("%q is not a phone number", phone))
	}

	var descriptionErr error
	if n := utf8.RuneCountInString(d.Description); n > DescriptionMaxLength {
		descriptionErr = errs.NewValueIsOutOfRangeError("description length", n, 0, DescriptionMaxLength)
	}

	return errors.Join(
		wrapRequired("pickup location", d.Pickup.Validate()),
		wrapRequired("drop-off location", d.Dropoff.Validate()),
		wrapRequired("measure", d.Measure.Validate()),
		phoneErr,
		descriptionErr,
	)
}

func wrapRequired(param string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsRequiredErrorWithCause(param, err)
}

// Cargo is the aggregate root of a shipment. It enforces the lifecycle state
// machine, the immutable distributor ownership and the one-time driver binding.
//
// Invariants:
//   - the driver is unset while CREATED and set from PICKED_UP onwards
//   - the verification code is set from PICKED_UP onwards
//   - deliveredTime is never before takingTime
//   - the status never moves back to an earlier state
type Cargo struct {
	id            kernel.UUID
	distributorID kernel.UUID
	driverID      *kernel.UUID

	details Details
	status  Status
	code    *VerificationCode

	takingTime    *time.Time
	deliveredTime *time.Time
	createdAt     time.Time
	updatedAt     time.Time

	guard guard.ConstructorGuard
}

// NewCargo creates a CREATED cargo owned by distributorID with no driver and no code.
//
// Example:
//
//	pickup, _ := kernel.NewLocation(41.31, 69.24)
//	dropoff, _ := kernel.NewLocation(39.65, 66.96)
//	measure, _ := cargo.NewMeasure(120, 1.2, cargo.SizeMedium)
//	c, err := cargo.NewCargo(kernel.NewUUID(), distributorID, cargo.Details{
//		Pickup: pickup, Dropoff: dropoff, Measure: measure, ContactPhone: "+998901234567",
//	}, time.Now())
func NewCargo(id, distributorID kernel.UUID, details Details, now time.Time) (*Cargo, error) {
	c := &Cargo{
		status:    Created,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setDistributorID(distributorID),
		c.setDetails(details),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Snapshot is the full persisted state of a cargo, used to rebuild the aggregate.
type Snapshot struct {
	ID            kernel.UUID
	DistributorID kernel.UUID
	DriverID      *kernel.UUID
	Details       Details
	Status        Status
	Code          *VerificationCode
	TakingTime    *time.Time
	DeliveredTime *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RestoreCargo rebuilds a cargo from storage, checking that the stored state
// still satisfies the aggregate invariants.
func RestoreCargo(s Snapshot) (*Cargo, error) {
	c := &Cargo{
		takingTime:    s.TakingTime,
		deliveredTime: s.DeliveredTime,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(s.ID),
		c.setDistributorID(s.DistributorID),
		c.setDetails(s.Details),
		c.setStatus(s.Status),
		c.setDriverID(s.Status, s.DriverID),
		c.setCode(s.Status, s.Code),
		validateTimes(s.TakingTime, s.DeliveredTime),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Cargo) Validate() error {
	if c == nil {
		return ErrCargoIsNotConstructed
	}
	return c.guard.Validate(ErrCargoIsNotConstructed)
}

func (c *Cargo) IsEqual(other *Cargo) bool {
	return other != nil && c.id.IsEqual(other.id)
}

func (c *Cargo) ID() kernel.UUID {
	return c.id
}

func (c *Cargo) DistributorID() kernel.UUID {
	return c.distributorID
}

// DriverID returns nil until the cargo is taken.
func (c *Cargo) DriverID() *kernel.UUID {
	if c.driverID == nil {
		return nil
	}
	id := *c.driverID
	return &id
}

func (c *Cargo) Details() Details {
	return c.details
}

func (c *Cargo) Status() Status {
	return c.status
}

// VerificationCode returns nil until the cargo is taken.
func (c *Cargo) VerificationCode() *VerificationCode {
	if c.code == nil {
		return nil
	}
	code := *c.code
	return &code
}

func (c *Cargo) TakingTime() *time.Time {
	return copyTime(c.takingTime)
}

func (c *Cargo) DeliveredTime() *time.Time {
	return copyTime(c.deliveredTime)
}

func (c *Cargo) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Cargo) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Cargo) IsOwnedBy(distributorID kernel.UUID) bool {
	return c.distributorID.IsEqual(distributorID)
}

func (c *Cargo) IsDrivenBy(driverID kernel.UUID) bool {
	return c.driverID != nil && c.driverID.IsEqual(driverID)
}

// EnsureOwnedBy fails with an AccessDeniedError unless distributorID owns the cargo.
func (c *Cargo) EnsureOwnedBy(distributorID kernel.UUID, action string) error {
	if !c.IsOwnedBy(distributorID) {
		return errs.NewAccessDeniedError("distributor "+distributorID.String(), action+" cargo "+c.id.String())
	}
	return nil
}

// EnsureDrivenBy fails with an AccessDeniedError unless the cargo is bound to driverID.
func (c *Cargo) EnsureDrivenBy(driverID kernel.UUID, action string) error {
	if !c.IsDrivenBy(driverID) {
		return errs.NewAccessDeniedError("driver "+driverID.String(), action+" cargo "+c.id.String())
	}
	return nil
}

// Edit replaces the cargo details. The state is checked before ownership so
// that editing a claimed cargo fails the same way for every caller.
func (c *Cargo) Edit(editorID kernel.UUID, details Details, now time.Time) error {
	if err := c.status.ValidateEdit(); err != nil {
		return err
	}
	if err := c.EnsureOwnedBy(editorID, "edit"); err != nil {
		return err
	}
	if err := c.setDetails(details); err != nil {
		return err
	}

	c.touch(now)
	return nil
}

// EnsureRemovableBy checks that the cargo may be deleted by distributorID.
// Like Edit, the state is checked first.
func (c *Cargo) EnsureRemovableBy(distributorID kernel.UUID) error {
	if err := c.status.ValidateRemove(); err != nil {
		return err
	}
	return c.EnsureOwnedBy(distributorID, "remove")
}

// Take binds the cargo to driverID, stores the freshly generated code and stamps
// the taking time. Only a CREATED cargo can be taken.
func (c *Cargo) Take(driverID kernel.UUID, code VerificationCode, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if code.IsZero() {
		return errs.NewValueIsRequiredError("verification code")
	}

	newStatus, err := c.status.Take()
	if err != nil {
		return err
	}

	takenAt := now.UTC()
	c.status = newStatus
	c.driverID = &driverID
	c.code = &code
	c.takingTime = &takenAt
	c.touch(now)
	return nil
}

// VerifyCode compares the presented code with the stored one. The error never
// reveals the stored code.
func (c *Cargo) VerifyCode(presented string) error {
	if c.code == nil || !c.code.Matches(presented) {
		return errs.NewVerificationError("verification code")
	}
	return nil
}

// Deliver moves a PICKED_UP cargo to DELIVERED. A clock running behind the
// taking time is clamped so deliveredTime never precedes takingTime.
func (c *Cargo) Deliver(now time.Time) error {
	newStatus, err := c.status.Deliver()
	if err != nil {
		return err
	}

	deliveredAt := now.UTC()
	if c.takingTime != nil && deliveredAt.Before(*c.takingTime) {
		deliveredAt = *c.takingTime
	}

	c.status = newStatus
	c.deliveredTime = &deliveredAt
	c.touch(deliveredAt)
	return nil
}

// Cancel withdraws a CREATED or PICKED_UP cargo on behalf of its owner.
func (c *Cargo) Cancel(distributorID kernel.UUID, now time.Time) error {
	newStatus, err := c.status.Cancel()
	if err != nil {
		return err
	}
	if err := c.EnsureOwnedBy(distributorID, "cancel"); err != nil {
		return err
	}

	c.status = newStatus
	c.touch(now)
	return nil
}

// Fail records that the bound driver could not deliver the cargo.
func (c *Cargo) Fail(driverID kernel.UUID, now time.Time) error {
	newStatus, err := c.status.Fail()
	if err != nil {
		return err
	}
	if err := c.EnsureDrivenBy(driverID, "fail"); err != nil {
		return err
	}

	c.status = newStatus
	c.touch(now)
	return nil
}

// Expire closes a CREATED cargo nobody took in time.
func (c *Cargo) Expire(now time.Time) error {
	newStatus, err := c.status.Expire()
	if err != nil {
		return err
	}

	c.status = newStatus
	c.touch(now)
	return nil
}

// IsStale reports whether a CREATED cargo has waited longer than ttl.
func (c *Cargo) IsStale(now time.Time, ttl time.Duration) bool {
	return c.status == Created && c.createdAt.Add(ttl).Before(now)
}

func (c *Cargo) touch(now time.Time) {
	now = now.UTC()
	if now.After(c.updatedAt) {
		c.updatedAt = now
	}
}

func (c *Cargo) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Cargo) setDistributorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("distributor", err)
	}
	c.distributorID = id
	return nil
}

func (c *Cargo) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	details.ContactPhone = strings.TrimSpace(details.ContactPhone)
	c.details = details
	return nil
}

func (c *Cargo) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *Cargo) setDriverID(status Status, driverID *kernel.UUID) error {
	if err := status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return err
	}
	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return err
		}
		id := *driverID
		c.driverID = &id
	}
	return nil
}

func (c *Cargo) setCode(status Status, code *VerificationCode) error {
	if code != nil && code.IsZero() {
		code = nil
	}
	if err := status.ValidateCanHaveCode(code != nil); err != nil {
		return err
	}
	if code != nil {
		value := *code
		c.code = &value
	}
	return nil
}

func validateTimes(takingTime, deliveredTime *time.Time) error {
	if deliveredTime == nil {
		return nil
	}
	if takingTime == nil {
		return errs.NewValueIsInvalidErrorWithCause("delivered time", errors.New("set without taking time"))
	}
	if deliveredTime.Before(*takingTime) {
		return errs.NewValueIsInvalidErrorWithCause("delivered time", errors.New("before taking time"))
	}
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
