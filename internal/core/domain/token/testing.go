package token

import (
	"context"
	"fmt"
	"sync"
	"userable/internal/core/domain/user"
)

type FakeRepository struct {
	Tokens []Token
	// ForceCodeCollisions makes the next N Create calls fail with
	// ErrCodeAlreadyExists regardless of the code.
	ForceCodeCollisions int
	CreateReturnsError  bool
	GetReturnsError     bool
	DeleteReturnsError  bool
	lock                sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Tokens: make([]Token, 0, 10)}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateTokenInput) (t Token, err error) {
	if r.CreateReturnsError {
		return t, fmt.Errorf("could not create token %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.ForceCodeCollisions > 0 {
		r.ForceCodeCollisions--
		return t, ErrCodeAlreadyExists
	}
	for _, t := range r.Tokens {
		if t.Code == input.Code {
			return t, ErrCodeAlreadyExists
		}
	}
	t = Token{
		Code:       input.Code,
		OwnerID:    input.OwnerID,
		Purpose:    input.Purpose,
		CreatedBy:  input.CreatedBy,
		IssuedAt:   input.IssuedAt,
		ValidUntil: input.ValidUntil,
	}
	r.Tokens = append(r.Tokens, t)
	return t, nil
}

func (r *FakeRepository) GetByCode(ctx context.Context, code Code) (t Token, err error) {
	if r.GetReturnsError {
		return t, fmt.Errorf("could not get token by code")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, t := range r.Tokens {
		if t.Code == code {
			return t, nil
		}
	}
	return t, ErrTokenDoesNotExist
}

func (r *FakeRepository) DeleteByCode(ctx context.Context, code Code) (deleted bool, err error) {
	if r.DeleteReturnsError {
		return false, fmt.Errorf("could not delete token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, t := range r.Tokens {
		if t.Code == code {
			r.Tokens = append(r.Tokens[:ix], r.Tokens[ix+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeRepository) DeleteByOwner(ctx context.Context, ownerID user.ID, purpose Purpose) error {
	if r.DeleteReturnsError {
		return fmt.Errorf("could not delete tokens by owner")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	kept := r.Tokens[:0]
	for _, t := range r.Tokens {
		if t.OwnerID != ownerID || t.Purpose != purpose {
			kept = append(kept, t)
		}
	}
	r.Tokens = kept
	return nil
}

// FakeCodeGenerator yields "<prefix>-1", "<prefix>-2", ...
type FakeCodeGenerator struct {
	Prefix string
	lock   sync.Mutex
	n      int
}

func NewFakeCodeGenerator(prefix string) *FakeCodeGenerator {
	return &FakeCodeGenerator{Prefix: prefix}
}

func (g *FakeCodeGenerator) GenerateCode() Code {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.n++
	return Code(fmt.Sprintf("%s-%d", g.Prefix, g.n))
}

type FakeActivationCodeSender struct {
	Sent        []Code
	SentTo      []user.User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeActivationCodeSender() *FakeActivationCodeSender {
	return &FakeActivationCodeSender{}
}

func (s *FakeActivationCodeSender) SendActivationCode(ctx context.Context, u user.User, code Code) error {
	if s.ReturnError {
		return fmt.Errorf("could not send activation code to user %d", u.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, code)
	s.SentTo = append(s.SentTo, u)
	return nil
}

func (s *FakeActivationCodeSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

type FakePasswordResetCodeSender struct {
	Sent        []Code
	SentTo      []user.User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetCodeSender() *FakePasswordResetCodeSender {
	return &FakePasswordResetCodeSender{}
}

func (s *FakePasswordResetCodeSender) SendPasswordResetCode(ctx context.Context, u user.User, code Code) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset code to user %d", u.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, code)
	s.SentTo = append(s.SentTo, u)
	return nil
}
