package signupwithemail

import (
	"context"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/logging"
	"userable/internal/core/domain/token"
	"userable/internal/core/services"
)

type serviceWithActivationCodeSending struct {
	log    logging.Logger
	ledger *token.Ledger
	sender token.ActivationCodeSender
	inner  services.Service[Input, Result]
}

// NewWithActivationCodeSending issues an activation code for the created
// user and emails it. Neither an issue nor a sending failure fails the
// sign up: the account is already committed at that point, so returning
// an error would leave the caller retrying into ErrEmailAlreadyExists.
// The user can request the code again instead.
func NewWithActivationCodeSending(
	log logging.Logger,
	ledger *token.Ledger,
	sender token.ActivationCodeSender,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if ledger == nil {
		panic(e.NewNilArgumentError("ledger"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithActivationCodeSending{
		log:    log,
		ledger: ledger,
		sender: sender,
		inner:  inner,
	}
}

func (s *serviceWithActivationCodeSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if err != nil {
		return result, err
	}

	t, err := s.ledger.Issue(ctx, result.User.ID, token.PurposeActivation)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue activation code for the new user.",
			logging.Entry("userID", result.User.ID),
			logging.Entry("err", err),
		)
		return result, nil
	}
	result.ActivationCode = t.Code

	if err := s.sender.SendActivationCode(ctx, result.User, t.Code); err != nil {
		s.log.Error(
			ctx,
			"Could not send activation code.",
			logging.Entry("userID", result.User.ID),
			logging.Entry("err", err),
		)
		return result, nil
	}

	s.log.Info(
		ctx,
		"Activation code has been sent.",
		logging.Entry("userID", result.User.ID),
		logging.Entry("email", result.User.Email),
	)
	return result, nil
}
