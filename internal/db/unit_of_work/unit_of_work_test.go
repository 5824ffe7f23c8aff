package uow

import (
	"context"
	"errors"
	"testing"
	"time"
	c "userable/internal/core/domain/common"
	"userable/internal/core/domain/user"
	"userable/internal/db"
	dbuser "userable/internal/db/user"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const EMAIL = "test@test.test"

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	uow  *PgxUnitOfWork
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.uow = NewPgxUnitOfWork(suite.pool)
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

func TestPgxUnitOfWork(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestCommit() {
	ctx := context.Background()
	uowCtx, err := suite.uow.Begin(ctx)
	suite.Require().Nil(err)
	defer uowCtx.Rollback(ctx)

	created, err := uowCtx.Users().Create(ctx, user.CreateUserInput{
		Email:     c.Email(EMAIL),
		CreatedAt: NOW,
	})
	suite.Require().Nil(err)
	suite.Require().Nil(uowCtx.Commit(ctx))

	u, err := dbuser.NewPgxRepository(suite.pool).GetByID(ctx, created.ID)
	suite.Require().Nil(err)
	suite.Require().Equal(c.Email(EMAIL), u.Email)
}

func (suite *testSuite) TestRollback() {
	ctx := context.Background()
	uowCtx, err := suite.uow.Begin(ctx)
	suite.Require().Nil(err)

	created, err := uowCtx.Users().Create(ctx, user.CreateUserInput{
		Email:     c.Email(EMAIL),
		CreatedAt: NOW,
	})
	suite.Require().Nil(err)
	suite.Require().Nil(uowCtx.Rollback(ctx))

	_, err = dbuser.NewPgxRepository(suite.pool).GetByID(ctx, created.ID)
	suite.Require().True(errors.Is(err, user.ErrUserDoesNotExist))
}
