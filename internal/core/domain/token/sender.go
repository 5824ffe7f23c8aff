package token

import (
	"context"
	"userable/internal/core/domain/user"
)

type ActivationCodeSender interface {
	SendActivationCode(ctx context.Context, u user.User, code Code) error
}

type PasswordResetCodeSender interface {
	SendPasswordResetCode(ctx context.Context, u user.User, code Code) error
}
