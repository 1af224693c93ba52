package user

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

const (
	UsernameMinLength = 3
	UsernameMaxLength = 64
)

var (
	ErrUserIsNotConstructed = errs.NewValueIsRequiredError("user must be created via NewUser or RestoreUser")

	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{5,19}$`)
)

// User is a registered driver or distributor.
type User struct {
	id        kernel.UUID
	username  string
	phone     string
	role      Role
	profile   Profile
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewUser registers a participant. profile may be nil; when given, it must match role.
func NewUser(id kernel.UUID, username, phone string, role Role, profile Profile, now time.Time) (*User, error) {
	return build(id, username, phone, role, profile, now.UTC())
}

// RestoreUser rebuilds a user loaded from storage.
func RestoreUser(id kernel.UUID, username, phone string, role Role, profile Profile, createdAt time.Time) (*User, error) {
	return build(id, username, phone, role, profile, createdAt)
}

func build(id kernel.UUID, username, phone string, role Role, profile Profile, createdAt time.Time) (*User, error) {
	u := &User{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setUsername(username),
		u.setPhone(phone),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	if err := u.setProfile(profile); err != nil {
		return nil, err
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) Phone() string {
	return u.phone
}

func (u *User) Role() Role {
	return u.role
}

// Profile returns nil when the user registered without role specific data.
func (u *User) Profile() Profile {
	return u.profile
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// Principal returns the identity the user acts under.
func (u *User) Principal() Principal {
	return Principal{ID: u.id, Role: u.role}
}

// ChangeProfile replaces the contact details and, when profile is non nil, the
// role specific profile. The role itself never changes. On error the user is
// left untouched.
func (u *User) ChangeProfile(username, phone string, profile Profile) error {
	if err := u.Validate(); err != nil {
		return err
	}

	next := &User{role: u.role, profile: u.profile}
	if err := errors.Join(
		next.setUsername(username),
		next.setPhone(phone),
	); err != nil {
		return err
	}
	if err := next.setProfile(profile); err != nil {
		return err
	}

	u.username = next.username
	u.phone = next.phone
	u.profile = next.profile
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	if n := utf8.RuneCountInString(username); n < UsernameMinLength || n > UsernameMaxLength {
		return errs.NewValueIsOutOfRangeError("username length", n, UsernameMinLength, UsernameMaxLength)
	}
	u.username = username
	return nil
}

func (u *User) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	if !phonePattern.MatchString(phone) {
		return errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("%q is not a phone number", phone))
	}
	u.phone = phone
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setProfile(profile Profile) error {
	if profile == nil {
		return nil
	}
	if profile.Role() != u.role {
		return errs.NewValueIsInvalidErrorWithCause(
			"profile", fmt.Errorf("%s profile does not fit role %s", profile.Role(), u.role))
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	u.profile = profile
	return nil
}
