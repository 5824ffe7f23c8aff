package user

import (
	"context"
	"errors"
	"testing"
	"time"
	c "userable/internal/core/domain/common"
	"userable/internal/core/domain/user"
	"userable/internal/db"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "test@test.test"
	OTHER_EMAIL   = "other@test.test"
	PASSWORD_HASH = "test-password-hash"
	SALT          = "test-salt-test-salt-test"
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
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

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createUser(email string) user.User {
	suite.T().Helper()
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email: c.Email(email),
		Credential: user.Credential{
			PasswordHash: c.NewOptional(user.PasswordHash(PASSWORD_HASH), true),
			Salt:         user.Salt(SALT),
		},
		CreatedAt: NOW,
	})
	suite.Require().Nil(err)
	return u
}

func (suite *testSuite) TestCreateSuccess() {
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email: c.Email(EMAIL),
		Credential: user.Credential{
			PasswordHash: c.NewOptional(user.PasswordHash(PASSWORD_HASH), true),
			Salt:         user.Salt(SALT),
		},
		CreatedAt: NOW,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(c.Email(EMAIL), u.Email)
	assert.Equal(user.PasswordHash(PASSWORD_HASH), u.Credential.PasswordHash.Value)
	assert.Equal(user.Salt(SALT), u.Credential.Salt)
	assert.True(NOW.Equal(u.CreatedAt))
	assert.False(u.IsActive())
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	suite.createUser(EMAIL)

	_, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:     c.Email(EMAIL),
		CreatedAt: NOW,
	})

	suite.Require().True(errors.Is(err, user.ErrEmailAlreadyExists))
}

func (suite *testSuite) TestGetByID() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.GetByID(context.Background(), created.ID)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, u.ID)
	assert.Equal(c.Email(EMAIL), u.Email)

	_, err = suite.repo.GetByID(context.Background(), created.ID+1)
	assert.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *testSuite) TestGetByEmail() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.GetByEmail(context.Background(), c.Email(EMAIL))

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, u.ID)

	_, err = suite.repo.GetByEmail(context.Background(), c.Email(OTHER_EMAIL))
	assert.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *testSuite) TestActivate() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.Activate(context.Background(), created.ID, NOW.Add(time.Hour))

	assert := suite.Require()
	assert.Nil(err)
	assert.True(u.IsActive())
	assert.True(NOW.Add(time.Hour).Equal(u.ActivatedAt.Value))
}

func (suite *testSuite) TestActivateAlreadyActive() {
	created := suite.createUser(EMAIL)
	_, err := suite.repo.Activate(context.Background(), created.ID, NOW)
	suite.Require().Nil(err)

	_, err = suite.repo.Activate(context.Background(), created.ID, NOW.Add(time.Hour))

	suite.Require().True(errors.Is(err, user.ErrUserAlreadyActive))
}

func (suite *testSuite) TestActivateUnknownUser() {
	_, err := suite.repo.Activate(context.Background(), user.ID(12345), NOW)

	suite.Require().True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *testSuite) TestSetCredential() {
	created := suite.createUser(EMAIL)
	newCredential := user.Credential{
		PasswordHash: c.NewOptional(user.PasswordHash("new-password-hash"), true),
		Salt:         user.Salt(SALT),
	}

	err := suite.repo.SetCredential(context.Background(), created.ID, newCredential)

	assert := suite.Require()
	assert.Nil(err)
	u, err := suite.repo.GetByID(context.Background(), created.ID)
	assert.Nil(err)
	assert.Equal(newCredential, u.Credential)
}

func (suite *testSuite) TestSetLastLoginAt() {
	created := suite.createUser(EMAIL)

	err := suite.repo.SetLastLoginAt(context.Background(), created.ID, NOW.Add(time.Hour))

	assert := suite.Require()
	assert.Nil(err)
	u, err := suite.repo.GetByID(context.Background(), created.ID)
	assert.Nil(err)
	assert.True(u.LastLoginAt.IsPresent)
	assert.True(NOW.Add(time.Hour).Equal(u.LastLoginAt.Value))
}

func (suite *testSuite) TestUpdateEmail() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.Update(context.Background(), user.UpdateUserInput{
		ID:            created.ID,
		DoEmailUpdate: true,
		Email:         c.Email(OTHER_EMAIL),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(c.Email(OTHER_EMAIL), u.Email)
}

func (suite *testSuite) TestUpdateEmailAlreadyTaken() {
	created := suite.createUser(EMAIL)
	suite.createUser(OTHER_EMAIL)

	_, err := suite.repo.Update(context.Background(), user.UpdateUserInput{
		ID:            created.ID,
		DoEmailUpdate: true,
		Email:         c.Email(OTHER_EMAIL),
	})

	suite.Require().True(errors.Is(err, user.ErrEmailAlreadyExists))
}
