package response

import (
	"time"
	"userable/internal/core/domain/user"
)

type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Email = string(du.Email)
	u.CreatedAt = du.CreatedAt
	if du.ActivatedAt.IsPresent {
		u.ActivatedAt = &du.ActivatedAt.Value
	}
	if du.LastLoginAt.IsPresent {
		u.LastLoginAt = &du.LastLoginAt.Value
	}
}
