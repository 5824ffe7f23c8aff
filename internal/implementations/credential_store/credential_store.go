package credentialstore

import (
	"crypto/rand"
	"fmt"
	"math/big"
	c "userable/internal/core/domain/common"
	e "userable/internal/core/domain/errors"
	"userable/internal/core/domain/user"

	"golang.org/x/crypto/bcrypt"
)

const passwordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Bcrypt hashes the password concatenated with a per-user salt.
type Bcrypt struct {
	saltGenerator user.SaltGenerator
	cost          int
}

func NewBcrypt(saltGenerator user.SaltGenerator, cost int) *Bcrypt {
	if saltGenerator == nil {
		panic(e.NewNilArgumentError("saltGenerator"))
	}
	return &Bcrypt{saltGenerator: saltGenerator, cost: cost}
}

// SetPassword fills in the credential's salt if it has none yet, then
// replaces the hash. An already set salt is kept so that existing hashes
// stay verifiable.
func (s *Bcrypt) SetPassword(credential *user.Credential, password user.RawPassword) error {
	if credential == nil {
		panic(e.NewNilArgumentError("credential"))
	}
	if password == "" {
		return user.ErrPasswordIsEmpty
	}
	if credential.Salt == "" {
		credential.Salt = s.saltGenerator.GenerateSalt()
	}
	bcryptHash, err := bcrypt.GenerateFromPassword(
		[]byte(string(password)+string(credential.Salt)),
		s.cost,
	)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}
	credential.PasswordHash = c.NewOptional(user.PasswordHash(bcryptHash), true)
	return nil
}

// CheckPassword never fails, an empty password or a credential without
// a hash simply does not match.
func (s *Bcrypt) CheckPassword(credential user.Credential, password user.RawPassword) bool {
	if password == "" {
		return false
	}
	if !credential.PasswordHash.IsPresent {
		return false
	}
	err := bcrypt.CompareHashAndPassword(
		[]byte(credential.PasswordHash.Value),
		[]byte(string(password)+string(credential.Salt)),
	)
	return err == nil
}

func (s *Bcrypt) GenerateRandomPassword(length int) user.RawPassword {
	if length <= 0 {
		length = user.DefaultRandomPasswordLength
	}
	b := make([]byte, length)
	for i := range b {
		ix, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordChars))))
		if err != nil {
			panic(fmt.Sprintf("could not read random bytes: %v", err))
		}
		b[i] = passwordChars[ix.Int64()]
	}
	return user.RawPassword(b)
}
