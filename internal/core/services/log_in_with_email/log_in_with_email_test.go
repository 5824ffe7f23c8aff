package loginwithemail

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
	PASSWORD      = "s3cret-s3cret"
	SESSION_TOKEN = "test-session-token"
)

var NOW time.Time = time.Date(2022, 6, 15, 15, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger                *logging.FakeLogger
	userRepository        *user.FakeUserRepository
	sessionRepository     *user.FakeSessionRepository
	credentialStore       *user.FakeCredentialStore
	sessionTokenGenerator *user.FakeSessionTokenGenerator
	service               services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.userRepository = user.NewFakeUserRepository()
	suite.sessionRepository = user.NewFakeSessionRepository(suite.userRepository)
	suite.credentialStore = user.NewFakeCredentialStore()
	suite.sessionTokenGenerator = user.NewFakeSessionTokenGenerator(SESSION_TOKEN)
	suite.service = New(
		suite.logger,
		suite.userRepository,
		suite.sessionRepository,
		suite.credentialStore,
		suite.sessionTokenGenerator,
		func() time.Time { return NOW },
	)
}

func TestLogInWithEmail(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createUser(email string, password string, isActive bool) user.User {
	s.T().Helper()
	credential := user.Credential{}
	err := s.credentialStore.SetPassword(&credential, user.RawPassword(password))
	require.NoError(s.T(), err)
	e := c.NewEmail(email)
	activatedAt := c.Optional[time.Time]{}
	if isActive {
		activatedAt = c.NewOptional(NOW.Add(-time.Hour), true)
	}
	u, err := s.userRepository.Create(context.Background(), user.CreateUserInput{
		Email:       e,
		Credential:  credential,
		CreatedAt:   NOW.Add(-time.Hour),
		ActivatedAt: activatedAt,
	})
	require.NoError(s.T(), err)
	return u
}

func (s *testSuite) TestSuccess() {
	u := s.createUser(EMAIL, PASSWORD, true)

	result, err := s.service.Run(context.Background(), Input{
		Email:    c.Email(EMAIL),
		Password: user.RawPassword(PASSWORD),
	})

	s.Nil(err)
	s.Equal(user.SessionToken(SESSION_TOKEN), result.Token)
	sessionUser, err := s.sessionRepository.GetUserByToken(context.Background(), result.Token)
	s.Nil(err)
	s.Equal(u.ID, sessionUser.ID)
}

func (s *testSuite) TestSuccessUpdatesLastLoginTime() {
	u := s.createUser(EMAIL, PASSWORD, true)

	_, err := s.service.Run(context.Background(), Input{
		Email:    c.Email(EMAIL),
		Password: user.RawPassword(PASSWORD),
	})

	s.Nil(err)
	updated, err := s.userRepository.GetByID(context.Background(), u.ID)
	s.Nil(err)
	s.True(updated.LastLoginAt.IsPresent)
	s.Equal(NOW, updated.LastLoginAt.Value)
}

func (s *testSuite) TestUnknownEmail() {
	s.createUser(EMAIL, PASSWORD, true)

	_, err := s.service.Run(context.Background(), Input{
		Email:    c.Email("other@test.test"),
		Password: user.RawPassword(PASSWORD),
	})

	s.True(errors.Is(err, user.ErrInvalidCredentials))
	s.Equal(0, len(s.sessionRepository.UserIdByToken))
}

func (s *testSuite) TestWrongPassword() {
	s.createUser(EMAIL, PASSWORD, true)

	_, err := s.service.Run(context.Background(), Input{
		Email:    c.Email(EMAIL),
		Password: user.RawPassword("wrong-password"),
	})

	s.True(errors.Is(err, user.ErrInvalidCredentials))
	s.Equal(0, len(s.sessionRepository.UserIdByToken))
}

func (s *testSuite) TestInactiveUser() {
	s.createUser(EMAIL, PASSWORD, false)

	_, err := s.service.Run(context.Background(), Input{
		Email:    c.Email(EMAIL),
		Password: user.RawPassword(PASSWORD),
	})

	s.True(errors.Is(err, user.ErrUserIsNotActive))
	s.Equal(0, len(s.sessionRepository.UserIdByToken))
}

func (s *testSuite) TestSessionRepositoryError() {
	s.createUser(EMAIL, PASSWORD, true)
	s.sessionRepository.ReturnError = true

	_, err := s.service.Run(context.Background(), Input{
		Email:    c.Email(EMAIL),
		Password: user.RawPassword(PASSWORD),
	})

	s.NotNil(err)
	s.False(errors.Is(err, user.ErrInvalidCredentials))
}

func (s *testSuite) TestLastLoginUpdateFailureDoesNotFailLogIn() {
	s.createUser(EMAIL, PASSWORD, true)
	s.userRepository.SetLastLoginAtReturnsError = true

	result, err := s.service.Run(context.Background(), Input{
		Email:    c.Email(EMAIL),
		Password: user.RawPassword(PASSWORD),
	})

	s.Nil(err)
	s.Equal(user.SessionToken(SESSION_TOKEN), result.Token)
}

func (s *testSuite) TestRateLimitKey() {
	input := Input{Email: c.Email(EMAIL)}
	s.Equal("log-in-with-email::"+EMAIL, input.GetRateLimitKey())
}
