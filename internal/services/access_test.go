package services

import (
	"context"
	"testing"
	"time"

	"github.com/fsdevblog/gatelink/internal/models"
	"github.com/fsdevblog/gatelink/internal/repositories"
	"github.com/fsdevblog/gatelink/internal/services/mocks"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccessServiceSuite struct {
	suite.Suite
	linkRepo  *mocks.LinkRepoMock
	tokenRepo *mocks.TokenRepoMock
	mailer    *mocks.MailerMock
	service   *AccessService
}

func (s *AccessServiceSuite) SetupTest() {
	s.linkRepo = new(mocks.LinkRepoMock)
	s.tokenRepo = new(mocks.TokenRepoMock)
	s.mailer = new(mocks.MailerMock)
	s.service = NewAccessService(s.linkRepo, s.tokenRepo, s.mailer, logrus.New())
}

func (s *AccessServiceSuite) protectedLink() *models.ShortLink {
	return &models.ShortLink{
		ID:          7,
		ShortCode:   "prot123",
		OriginalURL: "https://example.com/secret",
		OwnerID:     "owner-1",
		OwnerEmail:  "owner@example.com",
		IsProtected: true,
		Active:      true,
	}
}

func (s *AccessServiceSuite) TestRequestAccess() {
	link := s.protectedLink()
	s.linkRepo.On("GetByShortCode", mock.Anything, "prot123").Return(link, nil)
	s.linkRepo.On("IsEmailAuthorized", mock.Anything, uint(7), "Visitor@Example.com").Return(true, nil)

	var issued *models.AccessToken
	s.tokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.AccessToken")).
		Run(func(args mock.Arguments) {
			issued = args.Get(1).(*models.AccessToken)
		}).
		Return(nil)
	s.mailer.On("SendVerificationEmail", mock.Anything, "visitor@example.com", mock.AnythingOfType("string")).
		Return(nil)

	err := s.service.RequestAccess(context.Background(), "prot123", "Visitor@Example.com", "https://short.example.com")
	s.Require().NoError(err)

	s.Require().NotNil(issued)
	s.Equal(uint(7), issued.ShortLinkID)
	s.Equal("visitor@example.com", issued.Email, "адрес нормализуется перед сохранением")
	s.Len(issued.Token, models.AccessTokenLength)
	s.WithinDuration(time.Now().Add(models.AccessTokenTTL), issued.ExpiresAt, 5*time.Second)

	expectedURL := "https://short.example.com/api/verify-access/" + issued.Token
	s.mailer.AssertCalled(s.T(), "SendVerificationEmail", mock.Anything, "visitor@example.com", expectedURL)
}

func (s *AccessServiceSuite) TestRequestAccessUnknownCode() {
	s.linkRepo.On("GetByShortCode", mock.Anything, "nope123").Return(nil, repositories.ErrNotFound)

	err := s.service.RequestAccess(context.Background(), "nope123", "visitor@example.com", "https://short.example.com")
	s.ErrorIs(err, ErrRecordNotFound)
	s.tokenRepo.AssertNotCalled(s.T(), "Create")
}

func (s *AccessServiceSuite) TestRequestAccessNotProtected() {
	link := s.protectedLink()
	link.IsProtected = false
	s.linkRepo.On("GetByShortCode", mock.Anything, "prot123").Return(link, nil)

	err := s.service.RequestAccess(context.Background(), "prot123", "visitor@example.com", "https://short.example.com")
	s.ErrorIs(err, ErrNotProtected)
	s.tokenRepo.AssertNotCalled(s.T(), "Create")
}

func (s *AccessServiceSuite) TestRequestAccessForbidden() {
	link := s.protectedLink()
	s.linkRepo.On("GetByShortCode", mock.Anything, "prot123").Return(link, nil)
	s.linkRepo.On("IsEmailAuthorized", mock.Anything, uint(7), "stranger@example.com").Return(false, nil)

	err := s.service.RequestAccess(context.Background(), "prot123", "stranger@example.com", "https://short.example.com")
	s.ErrorIs(err, ErrForbidden)
	s.tokenRepo.AssertNotCalled(s.T(), "Create")
	s.mailer.AssertNotCalled(s.T(), "SendVerificationEmail")
}

func (s *AccessServiceSuite) TestRequestAccessMailFailureIsNotFatal() {
	link := s.protectedLink()
	s.linkRepo.On("GetByShortCode", mock.Anything, "prot123").Return(link, nil)
	s.linkRepo.On("IsEmailAuthorized", mock.Anything, uint(7), "visitor@example.com").Return(true, nil)
	s.tokenRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	s.mailer.On("SendVerificationEmail", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	err := s.service.RequestAccess(context.Background(), "prot123", "visitor@example.com", "https://short.example.com")
	s.NoError(err, "токен выдан, отказ почты не отменяет операцию")
}

func (s *AccessServiceSuite) activeToken() *models.AccessToken {
	return &models.AccessToken{
		ID:          42,
		ShortLinkID: 7,
		Email:       "visitor@example.com",
		Token:       "sometokenvalue",
		ExpiresAt:   time.Now().Add(10 * time.Minute),
	}
}

func (s *AccessServiceSuite) TestVerifyAccess() {
	token := s.activeToken()
	link := s.protectedLink()
	link.NotifyOnAccess = true

	s.tokenRepo.On("GetActiveByValue", mock.Anything, "sometokenvalue").Return(token, nil)
	s.tokenRepo.On("Consume", mock.Anything, uint(42)).Return(nil)
	s.linkRepo.On("IsEmailAuthorized", mock.Anything, uint(7), "visitor@example.com").Return(true, nil)
	s.linkRepo.On("GetByID", mock.Anything, uint(7)).Return(link, nil)

	res, err := s.service.VerifyAccess(context.Background(), "sometokenvalue")
	s.Require().NoError(err)
	s.Equal("https://example.com/secret", res.OriginalURL)
	s.Equal("visitor@example.com", res.VisitorEmail)
	s.Equal("owner@example.com", res.OwnerEmail)
	s.True(res.NotifyOnAccess)
}

func (s *AccessServiceSuite) TestVerifyAccessUnknownToken() {
	s.tokenRepo.On("GetActiveByValue", mock.Anything, "missing").Return(nil, repositories.ErrNotFound)

	_, err := s.service.VerifyAccess(context.Background(), "missing")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *AccessServiceSuite) TestVerifyAccessExpiredTokenNotConsumed() {
	token := s.activeToken()
	token.ExpiresAt = time.Now().Add(-time.Minute)
	s.tokenRepo.On("GetActiveByValue", mock.Anything, "sometokenvalue").Return(token, nil)

	_, err := s.service.VerifyAccess(context.Background(), "sometokenvalue")
	s.ErrorIs(err, ErrTokenExpired)
	s.tokenRepo.AssertNotCalled(s.T(), "Consume")
}

func (s *AccessServiceSuite) TestVerifyAccessRevokedAuthorization() {
	token := s.activeToken()
	s.tokenRepo.On("GetActiveByValue", mock.Anything, "sometokenvalue").Return(token, nil)
	s.tokenRepo.On("Consume", mock.Anything, uint(42)).Return(nil)
	s.linkRepo.On("IsEmailAuthorized", mock.Anything, uint(7), "visitor@example.com").Return(false, nil)

	_, err := s.service.VerifyAccess(context.Background(), "sometokenvalue")
	s.ErrorIs(err, ErrForbidden)
	// Токен погашен несмотря на отказ: одноразовый при любом исходе.
	s.tokenRepo.AssertCalled(s.T(), "Consume", mock.Anything, uint(42))
}

func (s *AccessServiceSuite) TestVerifyAccessConsumeRaceLost() {
	token := s.activeToken()
	s.tokenRepo.On("GetActiveByValue", mock.Anything, "sometokenvalue").Return(token, nil)
	s.tokenRepo.On("Consume", mock.Anything, uint(42)).Return(repositories.ErrNotFound)

	_, err := s.service.VerifyAccess(context.Background(), "sometokenvalue")
	s.ErrorIs(err, ErrInvalidToken)
	s.linkRepo.AssertNotCalled(s.T(), "IsEmailAuthorized")
}

func (s *AccessServiceSuite) TestVerifyAccessLinkDeletedMidFlight() {
	token := s.activeToken()
	s.tokenRepo.On("GetActiveByValue", mock.Anything, "sometokenvalue").Return(token, nil)
	s.tokenRepo.On("Consume", mock.Anything, uint(42)).Return(nil)
	s.linkRepo.On("IsEmailAuthorized", mock.Anything, uint(7), "visitor@example.com").Return(true, nil)
	s.linkRepo.On("GetByID", mock.Anything, uint(7)).Return(nil, repositories.ErrNotFound)

	_, err := s.service.VerifyAccess(context.Background(), "sometokenvalue")
	s.ErrorIs(err, ErrInvalidToken)
}

func TestAccessServiceSuite(t *testing.T) {
	suite.Run(t, new(AccessServiceSuite))
}
