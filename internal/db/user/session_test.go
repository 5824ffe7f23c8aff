package user

import (
	"context"
	"errors"
	"testing"
	c "userable/internal/core/domain/common"
	"userable/internal/core/domain/user"
	"userable/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const SESSION_TOKEN = "test-session-token"

type sessionTestSuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	users    *PgxUserRepository
	sessions *PgxSessionRepository
}

func (suite *sessionTestSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.users = NewPgxRepository(suite.pool)
	suite.sessions = NewPgxSessionRepository(suite.pool)
}

func (suite *sessionTestSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *sessionTestSuite) TearDownTest() {
	if suite.pool != nil {
		db.TruncateTables(suite.pool)
	}
}

func TestPgxSessionRepository(t *testing.T) {
	suite.Run(t, new(sessionTestSuite))
}

func (suite *sessionTestSuite) createUserAndSession() user.User {
	suite.T().Helper()
	u, err := suite.users.Create(context.Background(), user.CreateUserInput{
		Email: c.Email(EMAIL),
		Credential: user.Credential{
			PasswordHash: c.NewOptional(user.PasswordHash(PASSWORD_HASH), true),
			Salt:         user.Salt(SALT),
		},
		CreatedAt:   NOW,
		ActivatedAt: c.NewOptional(NOW, true),
	})
	suite.Require().Nil(err)
	err = suite.sessions.Create(context.Background(), user.CreateSessionInput{
		UserID:    u.ID,
		Token:     user.SessionToken(SESSION_TOKEN),
		CreatedAt: NOW,
	})
	suite.Require().Nil(err)
	return u
}

func (suite *sessionTestSuite) TestGetUserByToken() {
	created := suite.createUserAndSession()

	u, err := suite.sessions.GetUserByToken(context.Background(), user.SessionToken(SESSION_TOKEN))

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, u.ID)
	assert.Equal(created.Email, u.Email)
}

func (suite *sessionTestSuite) TestGetUserByUnknownToken() {
	suite.createUserAndSession()

	_, err := suite.sessions.GetUserByToken(context.Background(), user.SessionToken("unknown-token"))

	suite.Require().True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *sessionTestSuite) TestDelete() {
	created := suite.createUserAndSession()

	userID, err := suite.sessions.Delete(context.Background(), user.SessionToken(SESSION_TOKEN))

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, userID)
	_, err = suite.sessions.GetUserByToken(context.Background(), user.SessionToken(SESSION_TOKEN))
	assert.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *sessionTestSuite) TestDeleteUnknownToken() {
	suite.createUserAndSession()

	_, err := suite.sessions.Delete(context.Background(), user.SessionToken("unknown-token"))

	suite.Require().True(errors.Is(err, user.ErrSessionDoesNotExist))
}
