package sendpasswordresettoken

import (
	"context"
	"errors"
	c "userable/internal/core/domain/common"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/logging"
	"userable/internal/core/domain/token"
	"userable/internal/core/domain/user"
	"userable/internal/core/services"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "send-password-reset-token::" + string(i.Email)
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	ledger         *token.Ledger
	sender         token.PasswordResetCodeSender
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	ledger *token.Ledger,
	sender token.PasswordResetCodeSender,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if ledger == nil {
		panic(e.NewNilArgumentError("ledger"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		ledger:         ledger,
		sender:         sender,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Do not leak account existence to the caller, callers see
		// the same result for known and unknown emails.
		s.log.Info(
			ctx,
			"Password reset requested for unknown email.",
			logging.Entry("email", input.Email),
		)
		return result, nil
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

	t, err := s.ledger.Issue(
		ctx,
		u.ID,
		token.PurposePasswordReset,
		token.WithCreatedBy("password-reset"),
	)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue password reset code.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}
	if err := s.sender.SendPasswordResetCode(ctx, u, t.Code); err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset code.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset code successfully sent.",
		logging.Entry("userID", u.ID),
	)
	return result, nil
}
