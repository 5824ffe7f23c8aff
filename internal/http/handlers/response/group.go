package response

import (
	"time"
	"userable/internal/core/domain/group"
)

type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (g *Group) FromDomainGroup(dg group.Group) {
	g.ID = int64(dg.ID)
	g.Name = string(dg.Name)
	if dg.Description.IsPresent {
		g.Description = &dg.Description.Value
	}
	g.CreatedAt = dg.CreatedAt
}
