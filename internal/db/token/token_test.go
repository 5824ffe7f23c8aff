package token

import (
	"context"
	"errors"
	"testing"
	"time"
	c "userable/internal/core/domain/common"
	"userable/internal/core/domain/token"
	"userable/internal/core/domain/user"
	"userable/internal/db"
	dbuser "userable/internal/db/user"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const CODE = "test-code-test-code-test-code-"

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool  *pgxpool.Pool
	users *dbuser.PgxUserRepository
	repo  *PgxTokenRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.users = dbuser.NewPgxRepository(suite.pool)
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	if suite.pool != nil {
		db.TruncateTables(suite.pool)
	}
}

func TestPgxTokenRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createUser(email string) user.User {
	suite.T().Helper()
	u, err := suite.users.Create(context.Background(), user.CreateUserInput{
		Email:     c.Email(email),
		CreatedAt: NOW,
	})
	suite.Require().Nil(err)
	return u
}

func (suite *testSuite) createToken(ownerID user.ID, code string, purpose token.Purpose) token.Token {
	suite.T().Helper()
	t, err := suite.repo.Create(context.Background(), token.CreateTokenInput{
		Code:       token.Code(code),
		OwnerID:    ownerID,
		Purpose:    purpose,
		CreatedBy:  token.DefaultCreatedBy,
		IssuedAt:   NOW,
		ValidUntil: NOW.Add(token.DefaultValidFor),
	})
	suite.Require().Nil(err)
	return t
}

func (suite *testSuite) TestCreateAndGetByCode() {
	u := suite.createUser("test@test.test")
	created := suite.createToken(u.ID, CODE, token.PurposeActivation)

	t, err := suite.repo.GetByCode(context.Background(), token.Code(CODE))

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.Code, t.Code)
	assert.Equal(u.ID, t.OwnerID)
	assert.Equal(token.PurposeActivation, t.Purpose)
	assert.Equal(token.DefaultCreatedBy, t.CreatedBy)
	assert.True(NOW.Equal(t.IssuedAt))
	assert.True(NOW.Add(token.DefaultValidFor).Equal(t.ValidUntil))
}

func (suite *testSuite) TestCreateDuplicateCode() {
	u := suite.createUser("test@test.test")
	suite.createToken(u.ID, CODE, token.PurposeActivation)
	other := suite.createUser("other@test.test")

	_, err := suite.repo.Create(context.Background(), token.CreateTokenInput{
		Code:       token.Code(CODE),
		OwnerID:    other.ID,
		Purpose:    token.PurposePasswordReset,
		CreatedBy:  token.DefaultCreatedBy,
		IssuedAt:   NOW,
		ValidUntil: NOW.Add(token.DefaultValidFor),
	})

	suite.Require().True(errors.Is(err, token.ErrCodeAlreadyExists))
}

func (suite *testSuite) TestGetByUnknownCode() {
	_, err := suite.repo.GetByCode(context.Background(), token.Code("unknown-code"))

	suite.Require().True(errors.Is(err, token.ErrTokenDoesNotExist))
}

func (suite *testSuite) TestDeleteByCode() {
	u := suite.createUser("test@test.test")
	suite.createToken(u.ID, CODE, token.PurposeActivation)

	deleted, err := suite.repo.DeleteByCode(context.Background(), token.Code(CODE))

	assert := suite.Require()
	assert.Nil(err)
	assert.True(deleted)

	deleted, err = suite.repo.DeleteByCode(context.Background(), token.Code(CODE))
	assert.Nil(err)
	assert.False(deleted)
}

func (suite *testSuite) TestDeleteByOwner() {
	u := suite.createUser("test@test.test")
	suite.createToken(u.ID, CODE, token.PurposeActivation)
	reset := suite.createToken(u.ID, "reset-"+CODE, token.PurposePasswordReset)
	other := suite.createUser("other@test.test")
	otherActivation := suite.createToken(other.ID, "other-"+CODE, token.PurposeActivation)

	err := suite.repo.DeleteByOwner(context.Background(), u.ID, token.PurposeActivation)

	assert := suite.Require()
	assert.Nil(err)
	_, err = suite.repo.GetByCode(context.Background(), token.Code(CODE))
	assert.True(errors.Is(err, token.ErrTokenDoesNotExist))
	_, err = suite.repo.GetByCode(context.Background(), reset.Code)
	assert.Nil(err)
	_, err = suite.repo.GetByCode(context.Background(), otherActivation.Code)
	assert.Nil(err)
}
