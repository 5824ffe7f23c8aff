package randomstringgenerator

import (
	"testing"
	"userable/internal/core/domain/token"
	"userable/internal/core/domain/user"
)

func TestCodeGenerator(t *testing.T) {
	generator := NewGenerator()
	codes := make(map[token.Code]struct{})
	for i := 0; i < 100; i++ {
		code := generator.GenerateCode()
		if len(code) != codeLength {
			t.Fatalf("expected code of length %d, got %d", codeLength, len(code))
		}
		if _, ok := codes[code]; ok {
			t.Fatalf("code %v already exists", code)
		}
		codes[code] = struct{}{}
	}
}

func TestSessionTokenGenerator(t *testing.T) {
	generator := NewGenerator()
	sessionTokens := make(map[user.SessionToken]struct{})
	for i := 0; i < 100; i++ {
		sessionToken := generator.GenerateSessionToken()
		if len(sessionToken) != sessionTokenLength {
			t.Fatalf("expected session token of length %d, got %d", sessionTokenLength, len(sessionToken))
		}
		if _, ok := sessionTokens[sessionToken]; ok {
			t.Fatalf("session token %v already exists", sessionToken)
		}
		sessionTokens[sessionToken] = struct{}{}
	}
}

func TestSaltGenerator(t *testing.T) {
	generator := NewGenerator()
	salts := make(map[user.Salt]struct{})
	for i := 0; i < 1000; i++ {
		salt := generator.GenerateSalt()
		if len(salt) != saltLength {
			t.Fatalf("expected salt of length %d, got %d", saltLength, len(salt))
		}
		if _, ok := salts[salt]; ok {
			t.Fatalf("salt %v already exists", salt)
		}
		salts[salt] = struct{}{}
	}
}
