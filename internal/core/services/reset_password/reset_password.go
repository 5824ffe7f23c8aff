package resetpassword

import (
	"context"
	"errors"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/events"
	"userable/internal/core/domain/logging"
	"userable/internal/core/domain/token"
	"userable/internal/core/domain/user"
	"userable/internal/core/services"
	"time"
)

type Input struct {
	Code        token.Code
	NewPassword user.RawPassword
}

type Result struct {
	User user.User
}

type service struct {
	log             logging.Logger
	ledger          *token.Ledger
	userRepository  user.UserRepository
	credentialStore user.CredentialStore
	publisher       events.Publisher
	now             func() time.Time
}

func New(
	log logging.Logger,
	ledger *token.Ledger,
	userRepository user.UserRepository,
	credentialStore user.CredentialStore,
	publisher events.Publisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if ledger == nil {
		panic(e.NewNilArgumentError("ledger"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if credentialStore == nil {
		panic(e.NewNilArgumentError("credentialStore"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		ledger:          ledger,
		userRepository:  userRepository,
		credentialStore: credentialStore,
		publisher:       publisher,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	ownerID, err := s.ledger.Redeem(ctx, input.Code)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, token.ErrTokenDoesNotExist) || errors.Is(err, token.ErrTokenExpired) {
		s.log.Info(
			ctx,
			"Password reset attempt with invalid code.",
			logging.Entry("code", input.Code),
			logging.Entry("err", err),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not redeem password reset code.",
			logging.Entry("code", input.Code),
			logging.Entry("err", err),
		)
		return result, err
	}

	u, err := s.userRepository.GetByID(ctx, ownerID)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("userID", ownerID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// The salt survives password changes, only the hash is replaced.
	credential := u.Credential
	if err := s.credentialStore.SetPassword(&credential, input.NewPassword); err != nil {
		return result, err
	}
	if err := s.userRepository.SetCredential(ctx, u.ID, credential); err != nil {
		s.log.Error(
			ctx,
			"Could not update user credential.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	u.Credential = credential

	if err := s.publisher.Publish(ctx, events.Event{
		Type:   events.UserPasswordReset,
		UserID: u.ID,
		Email:  u.Email,
		At:     s.now(),
	}); err != nil {
		s.log.Error(
			ctx,
			"Could not publish password reset event.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("userID", u.ID),
	)
	return Result{User: u}, nil
}
