package token

import (
	"time"
	"userable/internal/core/domain/user"
)

// Code is a single-use random identifier mailed to a user. It must come
// from a cryptographically secure source with enough entropy to be
// unguessable.
type Code string

// Purpose distinguishes the pending action a code proves. A user holds at
// most one live token per purpose at a time.
type Purpose string

const (
	PurposeActivation    Purpose = "activation"
	PurposePasswordReset Purpose = "password-reset"
)

// DefaultCreatedBy tags tokens issued by the regular web flows.
const DefaultCreatedBy = "web"

// DefaultValidFor is how long a freshly issued token lives unless the
// caller overrides it.
const DefaultValidFor = 3 * 24 * time.Hour

type Token struct {
	Code       Code
	OwnerID    user.ID
	Purpose    Purpose
	CreatedBy  string
	IssuedAt   time.Time
	ValidUntil time.Time
}

// IsExpired treats the exact boundary as expired, a token is valid only
// while now < ValidUntil.
func (t Token) IsExpired(now time.Time) bool {
	return !now.Before(t.ValidUntil)
}
