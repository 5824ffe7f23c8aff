package activateuser

import (
	"context"
	"errors"
	"time"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/events"
	"userable/internal/core/domain/group"
	"userable/internal/core/domain/logging"
	"userable/internal/core/domain/token"
	uow "userable/internal/core/domain/unit_of_work"
	"userable/internal/core/domain/user"
	"userable/internal/core/services"
)

type Input struct {
	Code token.Code
}

type Result struct {
	User user.User
}

type service struct {
	log       logging.Logger
	ledger    *token.Ledger
	uow       uow.UnitOfWork
	publisher events.Publisher
	now       func() time.Time
}

func New(
	log logging.Logger,
	ledger *token.Ledger,
	unitOfWork uow.UnitOfWork,
	publisher events.Publisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if ledger == nil {
		panic(e.NewNilArgumentError("ledger"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:       log,
		ledger:    ledger,
		uow:       unitOfWork,
		publisher: publisher,
		now:       now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	ownerID, err := s.ledger.Redeem(ctx, input.Code)
	if errors.Is(err, token.ErrTokenDoesNotExist) || errors.Is(err, token.ErrTokenExpired) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not redeem activation code.",
			logging.Entry("err", err),
		)
		return result, err
	}

	uow, err := s.uow.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not begin unit of work.",
			logging.Entry("userID", ownerID),
			logging.Entry("err", err),
		)
		return result, err
	}
	defer uow.Rollback(ctx)

	u, err := uow.Users().Activate(ctx, ownerID, s.now())
	if errors.Is(err, user.ErrUserDoesNotExist) || errors.Is(err, user.ErrUserAlreadyActive) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not activate user.",
			logging.Entry("userID", ownerID),
			logging.Entry("err", err),
		)
		return result, err
	}

	defaultGroup, err := uow.Groups().GetByName(ctx, group.DefaultName)
	if errors.Is(err, group.ErrGroupDoesNotExist) {
		s.log.Warning(
			ctx,
			"Default group does not exist, activated user gets no membership.",
			logging.Entry("userID", u.ID),
			logging.Entry("group", group.DefaultName),
		)
	} else if err != nil {
		s.log.Error(
			ctx,
			"Could not get default group.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	} else if err := uow.Groups().AddUser(ctx, defaultGroup.ID, u.ID); err != nil {
		s.log.Error(
			ctx,
			"Could not add the activated user to the default group.",
			logging.Entry("userID", u.ID),
			logging.Entry("groupID", defaultGroup.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err = uow.Commit(ctx); err != nil {
		s.log.Error(
			ctx,
			"Could not commit unit of work.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "User successfully activated.", logging.Entry("userID", u.ID))
	if err := s.publisher.Publish(ctx, events.Event{
		Type:   events.UserActivated,
		UserID: u.ID,
		Email:  u.Email,
		At:     s.now(),
	}); err != nil {
		s.log.Error(
			ctx,
			"Could not publish activation event.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
	}

	return Result{User: u}, nil
}
