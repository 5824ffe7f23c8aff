package events

import (
	"context"
	"time"
	c "userable/internal/core/domain/common"
	"userable/internal/core/domain/user"
)

type Type string

const (
	UserSignedUp      Type = "user.signed_up"
	UserActivated     Type = "user.activated"
	UserPasswordReset Type = "user.password_reset"
	UserEmailChanged  Type = "user.email_changed"
)

type Event struct {
	Type   Type
	UserID user.ID
	Email  c.Email
	At     time.Time
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
