package randomstringgenerator

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"userable/internal/core/domain/token"
	"userable/internal/core/domain/user"
)

const (
	codeLength         = 30
	sessionTokenLength = 32
	saltLength         = 24
)

type Generator struct {
	chars string
}

func NewGenerator() *Generator {
	return &Generator{
		chars: "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789",
	}
}

func (g *Generator) GenerateCode() token.Code {
	return token.Code(g.randomString(codeLength))
}

func (g *Generator) GenerateSessionToken() user.SessionToken {
	return user.SessionToken(g.randomString(sessionTokenLength))
}

func (g *Generator) GenerateSalt() user.Salt {
	return user.Salt(g.randomString(saltLength))
}

func (g *Generator) randomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		ix, err := rand.Int(rand.Reader, big.NewInt(int64(len(g.chars))))
		if err != nil {
			panic(fmt.Sprintf("could not read random bytes: %v", err))
		}
		b[i] = g.chars[ix.Int64()]
	}
	return string(b)
}
