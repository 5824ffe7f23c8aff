package group

import (
	"time"
	c "userable/internal/core/domain/common"
)

type ID int64

type Name string

// DefaultName is the group every freshly activated user joins.
const DefaultName Name = "users"

type Group struct {
	ID          ID
	Name        Name
	Description c.Optional[string]
	CreatedAt   time.Time
}
