package app

import (
	"fmt"
	"net/http"
	"userable/internal/app/deps"
	"userable/internal/app/services"
	"userable/internal/http/handlers/auth"
	activateuser "userable/internal/http/handlers/auth/activate_user"
	loginwithemail "userable/internal/http/handlers/auth/log_in_with_email"
	logout "userable/internal/http/handlers/auth/log_out"
	resetpassword "userable/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "userable/internal/http/handlers/auth/send_password_reset_token"
	signupwithemail "userable/internal/http/handlers/auth/sign_up_with_email"
	changepassword "userable/internal/http/handlers/profile/change_password"
	groups "userable/internal/http/handlers/profile/groups"
	me "userable/internal/http/handlers/profile/me"
	updateuser "userable/internal/http/handlers/profile/update_user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signupwithemail.New(s.SignUpWithEmail, isTestMode))
	authRouter.Method(http.MethodPost, "/activate", activateuser.New(s.ActivateUser))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOut))
	authRouter.Method(http.MethodPost, "/password_reset/token", sendpasswordresettoken.New(s.SendPasswordResetToken))
	authRouter.Method(http.MethodPut, "/password_reset", resetpassword.New(s.ResetPassword))

	profileRouter := chi.NewRouter()
	profileRouter.Use(auth.SetAuthTokenToContext)
	profileRouter.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))
	profileRouter.Method(http.MethodPatch, "/me", updateuser.New(s.UpdateUser))
	profileRouter.Method(http.MethodPut, "/password", changepassword.New(s.ChangePassword))
	profileRouter.Method(http.MethodGet, "/groups", groups.New(s.ListUserGroups))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/profile", profileRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
