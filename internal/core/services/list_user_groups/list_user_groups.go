package listusergroups

import (
	"context"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/group"
	"userable/internal/core/domain/logging"
	"userable/internal/core/domain/user"
	"userable/internal/core/services"
	"userable/internal/core/services/auth"
)

type Input struct {
	UserID user.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Groups []group.Group
}

type service struct {
	log             logging.Logger
	groupRepository group.Repository
}

func New(
	log logging.Logger,
	groupRepository group.Repository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if groupRepository == nil {
		panic(e.NewNilArgumentError("groupRepository"))
	}
	return &service{
		log:             log,
		groupRepository: groupRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	groups, err := s.groupRepository.ListUserGroups(ctx, input.UserID)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not list user groups.",
			logging.Entry("userID", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}
	return Result{Groups: groups}, nil
}
