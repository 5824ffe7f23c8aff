package uow

import (
	"context"
	"userable/internal/core/domain/group"
	"userable/internal/core/domain/user"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Users() user.UserRepository
	Sessions() user.SessionRepository
	Groups() group.Repository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
