package updateuser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	c "userable/internal/core/domain/common"
	"userable/internal/core/domain/events"
	"userable/internal/core/domain/logging"
	"userable/internal/core/domain/user"
	"userable/internal/core/services"
)

const (
	EMAIL       = "test@test.test"
	OTHER_EMAIL = "other@test.test"
	NEW_EMAIL   = "new@test.test"
)

var NOW time.Time = time.Date(2022, 6, 15, 15, 30, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger         *logging.FakeLogger
	userRepository *user.FakeUserRepository
	publisher      *events.FakePublisher
	service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.userRepository = user.NewFakeUserRepository()
	suite.publisher = events.NewFakePublisher()
	suite.service = New(
		suite.logger,
		suite.userRepository,
		suite.publisher,
		func() time.Time { return NOW },
	)
}

func TestUpdateUser(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createUser(email string) user.User {
	s.T().Helper()
	e := c.NewEmail(email)
	u, err := s.userRepository.Create(context.Background(), user.CreateUserInput{
		Email:       e,
		CreatedAt:   NOW,
		ActivatedAt: c.NewOptional(NOW, true),
	})
	require.NoError(s.T(), err)
	return u
}

func (s *testSuite) TestEmailUpdate() {
	u := s.createUser(EMAIL)

	result, err := s.service.Run(context.Background(), Input{
		UserID:        u.ID,
		DoEmailUpdate: true,
		Email:         c.Email(NEW_EMAIL),
	})

	s.Nil(err)
	s.Equal(c.Email(NEW_EMAIL), result.User.Email)
	updated, err := s.userRepository.GetByID(context.Background(), u.ID)
	s.Nil(err)
	s.Equal(c.Email(NEW_EMAIL), updated.Email)
}

func (s *testSuite) TestEmailUpdatePublishesEvent() {
	u := s.createUser(EMAIL)

	_, err := s.service.Run(context.Background(), Input{
		UserID:        u.ID,
		DoEmailUpdate: true,
		Email:         c.Email(NEW_EMAIL),
	})

	s.Nil(err)
	s.Require().Equal(1, s.publisher.PublishedCount())
	event := s.publisher.LastPublished()
	s.Equal(events.UserEmailChanged, event.Type)
	s.Equal(u.ID, event.UserID)
	s.Equal(c.Email(NEW_EMAIL), event.Email)
}

func (s *testSuite) TestNoEmailUpdateDoesNotPublish() {
	u := s.createUser(EMAIL)

	result, err := s.service.Run(context.Background(), Input{UserID: u.ID})

	s.Nil(err)
	s.Equal(c.Email(EMAIL), result.User.Email)
	s.Equal(0, s.publisher.PublishedCount())
}

func (s *testSuite) TestEmailAlreadyTaken() {
	u := s.createUser(EMAIL)
	s.createUser(OTHER_EMAIL)

	_, err := s.service.Run(context.Background(), Input{
		UserID:        u.ID,
		DoEmailUpdate: true,
		Email:         c.Email(OTHER_EMAIL),
	})

	s.True(errors.Is(err, user.ErrEmailAlreadyExists))
	updated, err := s.userRepository.GetByID(context.Background(), u.ID)
	s.Nil(err)
	s.Equal(c.Email(EMAIL), updated.Email)
}

func (s *testSuite) TestUnknownUser() {
	_, err := s.service.Run(context.Background(), Input{
		UserID:        user.ID(12345),
		DoEmailUpdate: true,
		Email:         c.Email(NEW_EMAIL),
	})

	s.True(errors.Is(err, user.ErrUserDoesNotExist))
}
