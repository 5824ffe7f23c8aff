package loginwithemail

import (
	"context"
	"errors"
	"time"
	c "userable/internal/core/domain/common"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/logging"
	"userable/internal/core/domain/user"
	"userable/internal/core/services"
)

type Input struct {
	Email    c.Email
	Password user.RawPassword
}

func (i Input) GetRateLimitKey() string {
	return "log-in-with-email::" + string(i.Email)
}

type Result struct {
	Token user.SessionToken
}

type service struct {
	log                   logging.Logger
	userRepository        user.UserRepository
	sessionRepository     user.SessionRepository
	credentialStore       user.CredentialStore
	sessionTokenGenerator user.SessionTokenGenerator
	now                   func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	sessionRepository user.SessionRepository,
	credentialStore user.CredentialStore,
	sessionTokenGenerator user.SessionTokenGenerator,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if credentialStore == nil {
		panic(e.NewNilArgumentError("credentialStore"))
	}
	if sessionTokenGenerator == nil {
		panic(e.NewNilArgumentError("sessionTokenGenerator"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                   log,
		userRepository:        userRepository,
		sessionRepository:     sessionRepository,
		credentialStore:       credentialStore,
		sessionTokenGenerator: sessionTokenGenerator,
		now:                   now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Burn roughly the same hashing time as the known-email path so
		// account existence can't be probed through response timing.
		discarded := user.Credential{}
		s.credentialStore.SetPassword(&discarded, input.Password)
		return result, user.ErrInvalidCredentials
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by email.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	if !s.credentialStore.CheckPassword(u.Credential, input.Password) {
		return result, user.ErrInvalidCredentials
	}
	if !u.IsActive() {
		return result, user.ErrUserIsNotActive
	}

	sessionToken := s.sessionTokenGenerator.GenerateSessionToken()
	err = s.sessionRepository.Create(ctx, user.CreateSessionInput{
		UserID:    u.ID,
		Token:     sessionToken,
		CreatedAt: s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create session token for user.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := s.userRepository.SetLastLoginAt(ctx, u.ID, s.now()); err != nil {
		s.log.Error(
			ctx,
			"Could not update last login time.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
	}

	s.log.Info(
		ctx,
		"User successfully authenticated, session token created.",
		logging.Entry("userID", u.ID),
	)
	return Result{Token: sessionToken}, nil
}
