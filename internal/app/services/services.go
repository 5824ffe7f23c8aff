package services

import (
	"userable/internal/app/deps"
	drl "userable/internal/core/domain/rate_limiter"
	"userable/internal/core/services"
	activateuser "userable/internal/core/services/activate_user"
	"userable/internal/core/services/auth"
	changepassword "userable/internal/core/services/change_password"
	getuserbysessiontoken "userable/internal/core/services/get_user_by_session_token"
	listusergroups "userable/internal/core/services/list_user_groups"
	loginwithemail "userable/internal/core/services/log_in_with_email"
	logout "userable/internal/core/services/log_out"
	ratelimiting "userable/internal/core/services/rate_limiting"
	resetpassword "userable/internal/core/services/reset_password"
	sendpasswordresettoken "userable/internal/core/services/send_password_reset_token"
	signupwithemail "userable/internal/core/services/sign_up_with_email"
	updateuser "userable/internal/core/services/update_user"
)

type Services struct {
	SignUpWithEmail        services.Service[signupwithemail.Input, signupwithemail.Result]
	ActivateUser           services.Service[activateuser.Input, activateuser.Result]
	LogInWithEmail         services.Service[loginwithemail.Input, loginwithemail.Result]
	LogOut                 services.Service[logout.Input, logout.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
	ChangePassword         services.Service[changepassword.Input, changepassword.Result]
	GetUserBySessionToken  services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	UpdateUser             services.Service[updateuser.Input, updateuser.Result]
	ListUserGroups         services.Service[listusergroups.Input, listusergroups.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 5},
		signupwithemail.NewWithActivationCodeSending(
			deps.Logger,
			deps.TokenLedger,
			deps.ActivationCodeSender,
			signupwithemail.New(
				deps.Logger,
				deps.UnitOfWork,
				deps.CredentialStore,
				deps.EventPublisher,
				deps.Now,
			),
		),
	)
	s.ActivateUser = activateuser.New(
		deps.Logger,
		deps.TokenLedger,
		deps.UnitOfWork,
		deps.EventPublisher,
		deps.Now,
	)
	s.LogInWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		loginwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.CredentialStore,
			deps.SessionTokenGenerator,
			deps.Now,
		),
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.SendPasswordResetToken = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		sendpasswordresettoken.New(
			deps.Logger,
			deps.UserRepository,
			deps.TokenLedger,
			deps.PasswordResetCodeSender,
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.TokenLedger,
		deps.UserRepository,
		deps.CredentialStore,
		deps.EventPublisher,
		deps.Now,
	)
	s.ChangePassword = auth.WithAuthentication(
		deps.SessionRepository,
		changepassword.New(
			deps.Logger,
			deps.UserRepository,
			deps.CredentialStore,
		),
	)
	s.GetUserBySessionToken = getuserbysessiontoken.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.UpdateUser = auth.WithAuthentication(
		deps.SessionRepository,
		updateuser.New(
			deps.Logger,
			deps.UserRepository,
			deps.EventPublisher,
			deps.Now,
		),
	)
	s.ListUserGroups = auth.WithAuthentication(
		deps.SessionRepository,
		listusergroups.New(
			deps.Logger,
			deps.GroupRepository,
		),
	)

	return s
}
