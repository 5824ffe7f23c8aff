package changepassword

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
	EMAIL            = "test@test.test"
	CURRENT_PASSWORD = "current-password"
	NEW_PASSWORD     = "new-password"
)

var NOW time.Time = time.Date(2022, 6, 15, 15, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger          *logging.FakeLogger
	userRepository  *user.FakeUserRepository
	credentialStore *user.FakeCredentialStore
	service         services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.userRepository = user.NewFakeUserRepository()
	suite.credentialStore = user.NewFakeCredentialStore()
	suite.service = New(suite.logger, suite.userRepository, suite.credentialStore)
}

func TestChangePassword(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createUser() user.User {
	s.T().Helper()
	credential := user.Credential{}
	err := s.credentialStore.SetPassword(&credential, user.RawPassword(CURRENT_PASSWORD))
	require.NoError(s.T(), err)
	e := c.NewEmail(EMAIL)
	u, err := s.userRepository.Create(context.Background(), user.CreateUserInput{
		Email:       e,
		Credential:  credential,
		CreatedAt:   NOW,
		ActivatedAt: c.NewOptional(NOW, true),
	})
	require.NoError(s.T(), err)
	return u
}

func (s *testSuite) TestSuccess() {
	u := s.createUser()

	_, err := s.service.Run(context.Background(), Input{
		CurrentPassword: user.RawPassword(CURRENT_PASSWORD),
		NewPassword:     user.RawPassword(NEW_PASSWORD),
		User:            u,
	})

	s.Nil(err)
	updated, err := s.userRepository.GetByID(context.Background(), u.ID)
	s.Nil(err)
	s.True(s.credentialStore.CheckPassword(updated.Credential, user.RawPassword(NEW_PASSWORD)))
	s.False(s.credentialStore.CheckPassword(updated.Credential, user.RawPassword(CURRENT_PASSWORD)))
}

func (s *testSuite) TestWrongCurrentPassword() {
	u := s.createUser()

	_, err := s.service.Run(context.Background(), Input{
		CurrentPassword: user.RawPassword("wrong-password"),
		NewPassword:     user.RawPassword(NEW_PASSWORD),
		User:            u,
	})

	s.True(errors.Is(err, user.ErrInvalidCredentials))
	updated, err := s.userRepository.GetByID(context.Background(), u.ID)
	s.Nil(err)
	s.True(s.credentialStore.CheckPassword(updated.Credential, user.RawPassword(CURRENT_PASSWORD)))
}

func (s *testSuite) TestEmptyNewPassword() {
	u := s.createUser()

	_, err := s.service.Run(context.Background(), Input{
		CurrentPassword: user.RawPassword(CURRENT_PASSWORD),
		NewPassword:     user.RawPassword(""),
		User:            u,
	})

	s.True(errors.Is(err, user.ErrPasswordIsEmpty))
}

func (s *testSuite) TestSaltIsPreserved() {
	u := s.createUser()

	_, err := s.service.Run(context.Background(), Input{
		CurrentPassword: user.RawPassword(CURRENT_PASSWORD),
		NewPassword:     user.RawPassword(NEW_PASSWORD),
		User:            u,
	})

	s.Nil(err)
	updated, err := s.userRepository.GetByID(context.Background(), u.ID)
	s.Nil(err)
	s.Equal(u.Credential.Salt, updated.Credential.Salt)
}
