package getuserbysessiontoken

import (
	"context"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/logging"
	"userable/internal/core/domain/user"
	"userable/internal/core/services"
)

type Input struct {
	Token user.SessionToken
}

type Result struct {
	User user.User
}

type service struct {
	log               logging.Logger
	sessionRepository user.SessionRepository
}

// New returns the session-token lookup behind GET /profile/me. It is a
// plain repository read, the interesting error mapping happens in the
// handler.
func New(
	log logging.Logger,
	sessionRepository user.SessionRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	return &service{
		log:               log,
		sessionRepository: sessionRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.sessionRepository.GetUserByToken(ctx, input.Token)
	return Result{User: u}, err
}
