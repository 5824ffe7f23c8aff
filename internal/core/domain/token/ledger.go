package token

import (
	"context"
	"errors"
	"fmt"
	"time"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/user"
)

// maxIssueAttempts bounds code regeneration on uniqueness violations.
const maxIssueAttempts = 5

type IssueOption func(input *CreateTokenInput)

func WithCreatedBy(createdBy string) IssueOption {
	return func(input *CreateTokenInput) {
		input.CreatedBy = createdBy
	}
}

func WithValidFor(validFor time.Duration) IssueOption {
	return func(input *CreateTokenInput) {
		input.ValidUntil = input.IssuedAt.Add(validFor)
	}
}

// Ledger issues, redeems and revokes single-use time-limited codes.
// It decides token content only, persistence is delegated to the
// injected repository.
type Ledger struct {
	repository Repository
	codes      CodeGenerator
	now        func() time.Time
	validFor   time.Duration
}

func NewLedger(
	repository Repository,
	codes CodeGenerator,
	now func() time.Time,
	validFor time.Duration,
) *Ledger {
	if repository == nil {
		panic(e.NewNilArgumentError("repository"))
	}
	if codes == nil {
		panic(e.NewNilArgumentError("codes"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if validFor <= 0 {
		validFor = DefaultValidFor
	}
	return &Ledger{
		repository: repository,
		codes:      codes,
		now:        now,
		validFor:   validFor,
	}
}

// Issue creates a new token for the owner. Any live token the owner holds
// for the same purpose is revoked first, so at most one code per purpose
// is ever redeemable. On a code collision the ledger regenerates and
// retries up to maxIssueAttempts times.
func (l *Ledger) Issue(
	ctx context.Context,
	ownerID user.ID,
	purpose Purpose,
	opts ...IssueOption,
) (t Token, err error) {
	if err := l.repository.DeleteByOwner(ctx, ownerID, purpose); err != nil {
		return t, err
	}

	issuedAt := l.now()
	input := CreateTokenInput{
		OwnerID:    ownerID,
		Purpose:    purpose,
		CreatedBy:  DefaultCreatedBy,
		IssuedAt:   issuedAt,
		ValidUntil: issuedAt.Add(l.validFor),
	}
	for _, opt := range opts {
		opt(&input)
	}

	for attempt := 0; attempt < maxIssueAttempts; attempt++ {
		input.Code = l.codes.GenerateCode()
		t, err = l.repository.Create(ctx, input)
		if errors.Is(err, ErrCodeAlreadyExists) {
			continue
		}
		return t, err
	}
	return t, fmt.Errorf("could not issue a unique code in %d attempts: %w", maxIssueAttempts, err)
}

// Redeem consumes the code and returns its owner. The token is deleted
// atomically with the success path, two concurrent redemptions of the
// same code end with exactly one success and one ErrTokenDoesNotExist.
func (l *Ledger) Redeem(ctx context.Context, code Code) (ownerID user.ID, err error) {
	t, err := l.repository.GetByCode(ctx, code)
	if err != nil {
		return ownerID, err
	}
	if t.IsExpired(l.now()) {
		if _, err := l.repository.DeleteByCode(ctx, code); err != nil {
			return ownerID, err
		}
		return ownerID, ErrTokenExpired
	}
	deleted, err := l.repository.DeleteByCode(ctx, code)
	if err != nil {
		return ownerID, err
	}
	if !deleted {
		// Lost the race against a concurrent redemption.
		return ownerID, ErrTokenDoesNotExist
	}
	return t.OwnerID, nil
}

// Invalidate revokes the code before its expiry. It is idempotent.
func (l *Ledger) Invalidate(ctx context.Context, code Code) error {
	_, err := l.repository.DeleteByCode(ctx, code)
	return err
}
