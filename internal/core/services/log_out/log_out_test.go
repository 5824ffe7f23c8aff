package logout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	c "userable/internal/core/domain/common"
	"userable/internal/core/domain/logging"
	"userable/internal/core/domain/user"
	"userable/internal/core/services"
)

const (
	EMAIL         = "test@test.test"
	SESSION_TOKEN = "test-session-token"
)

var NOW time.Time = time.Date(2022, 6, 15, 15, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger            *logging.FakeLogger
	userRepository    *user.FakeUserRepository
	sessionRepository *user.FakeSessionRepository
	service           services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.userRepository = user.NewFakeUserRepository()
	suite.sessionRepository = user.NewFakeSessionRepository(suite.userRepository)
	suite.service = New(suite.logger, suite.sessionRepository)
}

func TestLogOut(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createUserAndSession() user.User {
	s.T().Helper()
	e := c.NewEmail(EMAIL)
	u, err := s.userRepository.Create(context.Background(), user.CreateUserInput{
		Email:       e,
		CreatedAt:   NOW,
		ActivatedAt: c.NewOptional(NOW, true),
	})
	require.NoError(s.T(), err)
	err = s.sessionRepository.Create(context.Background(), user.CreateSessionInput{
		UserID:    u.ID,
		Token:     user.SessionToken(SESSION_TOKEN),
		CreatedAt: NOW,
	})
	require.NoError(s.T(), err)
	return u
}

func (s *testSuite) sessionExists(token user.SessionToken) bool {
	s.T().Helper()
	_, err := s.sessionRepository.GetUserByToken(context.Background(), token)
	return err == nil
}

func (s *testSuite) TestSuccess() {
	s.createUserAndSession()

	_, err := s.service.Run(
		context.Background(),
		Input{Token: user.SessionToken(SESSION_TOKEN)},
	)

	s.Nil(err)
	s.False(s.sessionExists(user.SessionToken(SESSION_TOKEN)))
}

func (s *testSuite) TestUnknownSessionToken() {
	s.createUserAndSession()

	_, err := s.service.Run(
		context.Background(),
		Input{Token: user.SessionToken("unknown-session-token")},
	)

	s.True(errors.Is(err, user.ErrSessionDoesNotExist))
	s.True(s.sessionExists(user.SessionToken(SESSION_TOKEN)))
}
