package user

import (
	"context"
	"time"
	c "userable/internal/core/domain/common"
)

type CreateUserInput struct {
	Email       c.Email
	Credential  Credential
	CreatedAt   time.Time
	ActivatedAt c.Optional[time.Time]
}

type UpdateUserInput struct {
	ID            ID
	DoEmailUpdate bool
	Email         c.Email
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// Activate marks the user active. ErrUserAlreadyActive is returned if
	// the user was activated before.
	Activate(ctx context.Context, id ID, at time.Time) (User, error)
	SetCredential(ctx context.Context, id ID, credential Credential) error
	SetLastLoginAt(ctx context.Context, id ID, at time.Time) error
	Update(ctx context.Context, input UpdateUserInput) (User, error)
}

type CreateSessionInput struct {
	UserID    ID
	Token     SessionToken
	CreatedAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) error
	GetUserByToken(ctx context.Context, token SessionToken) (User, error)
	Delete(ctx context.Context, token SessionToken) (userID ID, err error)
}
