package group

import (
	"context"
	"fmt"
	"sync"
	"userable/internal/core/domain/user"
)

type membership struct {
	groupID ID
	userID  user.ID
}

type FakeRepository struct {
	Groups      []Group
	Memberships []membership
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateGroupInput) (g Group, err error) {
	if r.ReturnError {
		return g, fmt.Errorf("could not create group %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, g := range r.Groups {
		if g.Name == input.Name {
			return g, ErrGroupNameAlreadyExists
		}
		maxID = g.ID
	}
	g = Group{
		ID:          maxID + 1,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   input.CreatedAt,
	}
	r.Groups = append(r.Groups, g)
	return g, nil
}

func (r *FakeRepository) GetByName(ctx context.Context, name Name) (g Group, err error) {
	if r.ReturnError {
		return g, fmt.Errorf("could not get group by name")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, g := range r.Groups {
		if g.Name == name {
			return g, nil
		}
	}
	return g, ErrGroupDoesNotExist
}

func (r *FakeRepository) AddUser(ctx context.Context, groupID ID, userID user.ID) error {
	if r.ReturnError {
		return fmt.Errorf("could not add user %d to group %d", userID, groupID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, m := range r.Memberships {
		if m.groupID == groupID && m.userID == userID {
			return nil
		}
	}
	r.Memberships = append(r.Memberships, membership{groupID: groupID, userID: userID})
	return nil
}

func (r *FakeRepository) ListUserGroups(ctx context.Context, userID user.ID) ([]Group, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list groups for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	groups := make([]Group, 0)
	for _, m := range r.Memberships {
		if m.userID != userID {
			continue
		}
		for _, g := range r.Groups {
			if g.ID == m.groupID {
				groups = append(groups, g)
			}
		}
	}
	return groups, nil
}
