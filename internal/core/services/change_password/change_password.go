package changepassword

import (
	"context"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/logging"
	"userable/internal/core/domain/user"
	"userable/internal/core/services"
	"userable/internal/core/services/auth"
)

type Input struct {
	CurrentPassword user.RawPassword
	NewPassword     user.RawPassword
	User            user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct{}

type service struct {
	log             logging.Logger
	userRepository  user.UserRepository
	credentialStore user.CredentialStore
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	credentialStore user.CredentialStore,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if credentialStore == nil {
		panic(e.NewNilArgumentError("credentialStore"))
	}
	return &service{
		log:             log,
		userRepository:  userRepository,
		credentialStore: credentialStore,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if !s.credentialStore.CheckPassword(input.User.Credential, input.CurrentPassword) {
		return result, user.ErrInvalidCredentials
	}

	credential := input.User.Credential
	if err := s.credentialStore.SetPassword(&credential, input.NewPassword); err != nil {
		return result, err
	}
	if err := s.userRepository.SetCredential(ctx, input.User.ID, credential); err != nil {
		s.log.Error(
			ctx,
			"Could not update user credential.",
			logging.Entry("userID", input.User.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"User password successfully changed.",
		logging.Entry("userID", input.User.ID),
	)
	return result, nil
}
