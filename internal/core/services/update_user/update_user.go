package updateuser

import (
	"context"
	"errors"
	c "userable/internal/core/domain/common"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/events"
	"userable/internal/core/domain/logging"
	"userable/internal/core/domain/user"
	"userable/internal/core/services"
	"userable/internal/core/services/auth"
	"time"
)

type Input struct {
	UserID        user.ID
	DoEmailUpdate bool
	Email         c.Email
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	User user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	publisher      events.Publisher
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	publisher events.Publisher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		publisher:      publisher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	updatedUser, err := s.userRepository.Update(
		ctx,
		user.UpdateUserInput{
			ID:            input.UserID,
			DoEmailUpdate: input.DoEmailUpdate,
			Email:         input.Email,
		},
	)
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user.",
			logging.Entry("userID", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if input.DoEmailUpdate {
		if err := s.publisher.Publish(ctx, events.Event{
			Type:   events.UserEmailChanged,
			UserID: updatedUser.ID,
			Email:  updatedUser.Email,
			At:     s.now(),
		}); err != nil {
			s.log.Error(
				ctx,
				"Could not publish email changed event.",
				logging.Entry("userID", updatedUser.ID),
				logging.Entry("err", err),
			)
		}
	}

	s.log.Info(
		ctx,
		"User successfully updated.",
		logging.Entry("userID", updatedUser.ID),
	)
	result.User = updatedUser
	return result, nil
}
