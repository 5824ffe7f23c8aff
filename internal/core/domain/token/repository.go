package token

import (
	"context"
	"time"
	"userable/internal/core/domain/user"
)

type CreateTokenInput struct {
	Code       Code
	OwnerID    user.ID
	Purpose    Purpose
	CreatedBy  string
	IssuedAt   time.Time
	ValidUntil time.Time
}

// Repository persists tokens. It must hold a uniqueness constraint on the
// code and report violations as ErrCodeAlreadyExists so the ledger can
// retry with a fresh code.
type Repository interface {
	Create(ctx context.Context, input CreateTokenInput) (Token, error)
	GetByCode(ctx context.Context, code Code) (Token, error)
	// DeleteByCode reports whether the token was actually deleted. The
	// conditional delete is what makes redemption at-most-once under
	// concurrent requests.
	DeleteByCode(ctx context.Context, code Code) (deleted bool, err error)
	DeleteByOwner(ctx context.Context, ownerID user.ID, purpose Purpose) error
}

type CodeGenerator interface {
	GenerateCode() Code
}
