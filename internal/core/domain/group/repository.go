package group

import (
	"context"
	"time"
	c "userable/internal/core/domain/common"
	"userable/internal/core/domain/user"
)

type CreateGroupInput struct {
	Name        Name
	Description c.Optional[string]
	CreatedAt   time.Time
}

type Repository interface {
	Create(ctx context.Context, input CreateGroupInput) (Group, error)
	GetByName(ctx context.Context, name Name) (Group, error)
	// AddUser is idempotent, adding a member twice is not an error.
	AddUser(ctx context.Context, groupID ID, userID user.ID) error
	ListUserGroups(ctx context.Context, userID user.ID) ([]Group, error)
}
