package user

// DefaultRandomPasswordLength is used when a caller asks for a random
// password without a specific length.
const DefaultRandomPasswordLength = 12

// CredentialStore owns password hashing and verification. Implementations
// must use a deliberately slow adaptive hash and a constant-time comparison.
type CredentialStore interface {
	// SetPassword hashes the password and mutates the credential. A salt is
	// generated first if the credential does not have one yet. An empty
	// password is a caller bug and returns ErrPasswordIsEmpty.
	SetPassword(credential *Credential, password RawPassword) error
	// CheckPassword never errors, it reports false for an empty candidate
	// or a credential without a hash.
	CheckPassword(credential Credential, password RawPassword) bool
	// GenerateRandomPassword returns a random printable password of the
	// given length, used for admin-issued temporary passwords.
	GenerateRandomPassword(length int) RawPassword
}

type SaltGenerator interface {
	GenerateSalt() Salt
}

type SessionTokenGenerator interface {
	GenerateSessionToken() SessionToken
}
