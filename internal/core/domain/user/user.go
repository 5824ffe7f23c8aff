package user

import (
	"fmt"
	"time"
	c "userable/internal/core/domain/common"
	e "userable/internal/core/domain/errors"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

// Salt is a random per-credential string mixed into the password before
// hashing. It is generated once and never reused across credentials.
type Salt string

type SessionToken string

// Credential is the hashed-password state owned by a single user.
// PasswordHash is meaningless without Salt, the two are only ever
// mutated through a CredentialStore.
type Credential struct {
	PasswordHash c.Optional[PasswordHash]
	Salt         Salt
}

type User struct {
	ID          ID
	Email       c.Email
	Credential  Credential
	CreatedAt   time.Time
	ActivatedAt c.Optional[time.Time]
	LastLoginAt c.Optional[time.Time]
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %d", u.ID))
	}
	if u.Credential.PasswordHash.IsPresent && u.Credential.Salt == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash without salt for user %d", u.ID))
	}
	return nil
}

func (u *User) IsActive() bool {
	return u.ActivatedAt.IsPresent
}
