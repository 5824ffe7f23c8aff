package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	"time"
	c "userable/internal/core/domain/common"
)

// FakeCredentialStore hashes with md5, fast and deterministic for tests.
type FakeCredentialStore struct {
	GeneratedSalt  Salt
	RandomPassword RawPassword
}

func NewFakeCredentialStore() *FakeCredentialStore {
	return &FakeCredentialStore{GeneratedSalt: Salt("test-salt"), RandomPassword: RawPassword("random-password")}
}

func (s *FakeCredentialStore) SetPassword(credential *Credential, password RawPassword) error {
	if password == "" {
		return ErrPasswordIsEmpty
	}
	if credential.Salt == "" {
		credential.Salt = s.GeneratedSalt
	}
	credential.PasswordHash = c.NewOptional(s.hash(password, credential.Salt), true)
	return nil
}

func (s *FakeCredentialStore) CheckPassword(credential Credential, password RawPassword) bool {
	if password == "" {
		return false
	}
	if !credential.PasswordHash.IsPresent {
		return false
	}
	return s.hash(password, credential.Salt) == credential.PasswordHash.Value
}

func (s *FakeCredentialStore) GenerateRandomPassword(length int) RawPassword {
	return s.RandomPassword
}

func (s *FakeCredentialStore) hash(password RawPassword, salt Salt) PasswordHash {
	hash := md5.New()
	io.WriteString(hash, string(password)+string(salt))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil)))
}

type FakeSessionTokenGenerator struct {
	Token string
}

func NewFakeSessionTokenGenerator(token string) *FakeSessionTokenGenerator {
	return &FakeSessionTokenGenerator{Token: token}
}

func (g *FakeSessionTokenGenerator) GenerateSessionToken() SessionToken {
	return SessionToken(g.Token)
}

type FakeSaltGenerator struct {
	Salt Salt
}

func NewFakeSaltGenerator(salt string) *FakeSaltGenerator {
	return &FakeSaltGenerator{Salt: Salt(salt)}
}

func (g *FakeSaltGenerator) GenerateSalt() Salt {
	return g.Salt
}

type FakeUserRepository struct {
	Users                      []User
	ReturnError                bool
	SetLastLoginAtReturnsError bool
	lock                       sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:          maxID + 1,
		Email:       input.Email,
		Credential:  input.Credential,
		CreatedAt:   input.CreatedAt,
		ActivatedAt: input.ActivatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) Activate(ctx context.Context, id ID, at time.Time) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID != id {
			continue
		}
		if u.IsActive() {
			return u, ErrUserAlreadyActive
		}
		r.Users[ix].ActivatedAt = c.NewOptional(at, true)
		return r.Users[ix], nil
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetCredential(ctx context.Context, id ID, credential Credential) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].Credential = credential
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetLastLoginAt(ctx context.Context, id ID, at time.Time) error {
	if r.SetLastLoginAtReturnsError {
		return fmt.Errorf("could not set last login time for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].LastLoginAt = c.NewOptional(at, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) Update(ctx context.Context, input UpdateUserInput) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if input.DoEmailUpdate {
		for _, u := range r.Users {
			if u.Email == input.Email && u.ID != input.ID {
				return u, ErrEmailAlreadyExists
			}
		}
	}
	for ix, u := range r.Users {
		if u.ID == input.ID {
			if input.DoEmailUpdate {
				r.Users[ix].Email = input.Email
			}
			return r.Users[ix], nil
		}
	}
	return u, ErrUserDoesNotExist
}

type FakeSessionRepository struct {
	UserIdByToken  map[SessionToken]ID
	UserRepository UserRepository
	ReturnError    bool
	lock           sync.Mutex
}

func NewFakeSessionRepository(userRepository UserRepository) *FakeSessionRepository {
	return &FakeSessionRepository{
		UserIdByToken:  make(map[SessionToken]ID),
		UserRepository: userRepository,
	}
}

func (r *FakeSessionRepository) Create(ctx context.Context, input CreateSessionInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create session %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.UserIdByToken[input.Token] = input.UserID
	return nil
}

func (r *FakeSessionRepository) GetUserByToken(ctx context.Context, token SessionToken) (u User, err error) {
	r.lock.Lock()
	userId, ok := r.UserIdByToken[token]
	r.lock.Unlock()
	if !ok {
		return u, ErrUserDoesNotExist
	}
	return r.UserRepository.GetByID(ctx, userId)
}

func (r *FakeSessionRepository) Delete(ctx context.Context, token SessionToken) (ID, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	userID, ok := r.UserIdByToken[token]
	if !ok {
		return ID(0), ErrSessionDoesNotExist
	}
	delete(r.UserIdByToken, token)
	return userID, nil
}
