package signupwithemail

import (
	"context"
	"errors"
	"time"
	c "userable/internal/core/domain/common"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/events"
	"userable/internal/core/domain/logging"
	"userable/internal/core/domain/token"
	uow "userable/internal/core/domain/unit_of_work"
	"userable/internal/core/domain/user"
	"userable/internal/core/services"
)

type Input struct {
	Email    c.Email
	Password user.RawPassword
}

func (i Input) GetRateLimitKey() string {
	return "sign-up-with-email::" + string(i.Email)
}

type Result struct {
	User user.User
	// ActivationCode is set by the activation code sending decorator.
	ActivationCode token.Code
}

type service struct {
	log             logging.Logger
	unitOfWork      uow.UnitOfWork
	credentialStore user.CredentialStore
	publisher       events.Publisher
	now             func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	credentialStore user.CredentialStore,
	publisher events.Publisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
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
		unitOfWork:      unitOfWork,
		credentialStore: credentialStore,
		publisher:       publisher,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	credential := user.Credential{}
	if err := s.credentialStore.SetPassword(&credential, input.Password); err != nil {
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not begin unit of work.",
			logging.Entry("input", input),
			logging.Entry("err", err),
		)
		return result, err
	}
	defer uow.Rollback(ctx)

	createdUser, err := uow.Users().Create(ctx, user.CreateUserInput{
		Email:      input.Email,
		Credential: credential,
		CreatedAt:  s.now(),
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		s.log.Info(
			ctx,
			"User with the email already exists.",
			logging.Entry("email", input.Email),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create new user.",
			logging.Entry("input", input),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		s.log.Error(
			ctx,
			"Could not commit unit of work.",
			logging.Entry("input", input),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "New user has been created.", logging.Entry("userID", createdUser.ID))
	if err := s.publisher.Publish(ctx, events.Event{
		Type:   events.UserSignedUp,
		UserID: createdUser.ID,
		Email:  createdUser.Email,
		At:     s.now(),
	}); err != nil {
		s.log.Error(
			ctx,
			"Could not publish sign up event.",
			logging.Entry("userID", createdUser.ID),
			logging.Entry("err", err),
		)
	}

	return Result{User: createdUser}, nil
}
