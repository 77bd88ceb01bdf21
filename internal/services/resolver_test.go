package services

import (
	"context"
	"testing"
	"time"

	"github.com/fsdevblog/gatelink/internal/cache"
	"github.com/fsdevblog/gatelink/internal/models"
	"github.com/fsdevblog/gatelink/internal/repositories"
	"github.com/fsdevblog/gatelink/internal/services/mocks"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ResolverSuite struct {
	suite.Suite
	linkRepo  *mocks.LinkRepoMock
	snapCache *mocks.SnapshotCacheMock
	mailer    *mocks.MailerMock
	resolver  *Resolver
}

func (s *ResolverSuite) SetupTest() {
	s.linkRepo = new(mocks.LinkRepoMock)
	s.snapCache = new(mocks.SnapshotCacheMock)
	s.mailer = new(mocks.MailerMock)
	s.resolver = NewResolver(s.linkRepo, s.snapCache, s.mailer, logrus.New())
}

func (s *ResolverSuite) publicSnapshot() *cache.Snapshot {
	return &cache.Snapshot{
		LinkID:           1,
		ShortCode:        "pub1234",
		OriginalURL:      "https://example.com/target",
		OwnerID:          "owner-1",
		OwnerEmail:       "owner@example.com",
		Active:           true,
		AuthorizedEmails: []string{},
	}
}

func (s *ResolverSuite) TestCacheHitSkipsStore() {
	snap := s.publicSnapshot()
	s.snapCache.On("Get", mock.Anything, "pub1234").Return(snap, nil)
	s.snapCache.On("RecordAccess", mock.Anything, "pub1234").Return(int64(1), nil)

	res, err := s.resolver.Resolve(context.Background(), "pub1234")
	s.Require().NoError(err)
	s.Equal(OutcomeRedirect, res.Outcome)
	s.Equal(snap, res.Snapshot)

	s.linkRepo.AssertNotCalled(s.T(), "GetByShortCode")
	s.snapCache.AssertCalled(s.T(), "RecordAccess", mock.Anything, "pub1234")
}

func (s *ResolverSuite) TestCacheMissPopulatesCache() {
	link := &models.ShortLink{
		ID:          1,
		ShortCode:   "pub1234",
		OriginalURL: "https://example.com/target",
		OwnerID:     "owner-1",
		OwnerEmail:  "owner@example.com",
		Active:      true,
	}
	s.snapCache.On("Get", mock.Anything, "pub1234").Return(nil, cache.ErrMiss)
	s.linkRepo.On("GetByShortCode", mock.Anything, "pub1234").Return(link, nil)
	s.snapCache.On("Put", mock.Anything, "pub1234", mock.AnythingOfType("*cache.Snapshot")).Return(nil)
	s.snapCache.On("RecordAccess", mock.Anything, "pub1234").Return(int64(1), nil)

	res, err := s.resolver.Resolve(context.Background(), "pub1234")
	s.Require().NoError(err)
	s.Equal(OutcomeRedirect, res.Outcome)
	s.Equal("https://example.com/target", res.Snapshot.OriginalURL)
	s.NotNil(res.Snapshot.AuthorizedEmails)

	s.snapCache.AssertCalled(s.T(), "Put", mock.Anything, "pub1234", mock.AnythingOfType("*cache.Snapshot"))
}

func (s *ResolverSuite) TestCacheErrorDegradesToMiss() {
	link := &models.ShortLink{
		ID: 1, ShortCode: "pub1234", OriginalURL: "https://example.com/target",
		OwnerID: "owner-1", OwnerEmail: "owner@example.com", Active: true,
	}
	s.snapCache.On("Get", mock.Anything, "pub1234").Return(nil, errors.Wrap(cache.ErrUnavailable, "get"))
	s.linkRepo.On("GetByShortCode", mock.Anything, "pub1234").Return(link, nil)
	s.snapCache.On("Put", mock.Anything, "pub1234", mock.Anything).Return(errors.Wrap(cache.ErrUnavailable, "put"))
	s.snapCache.On("RecordAccess", mock.Anything, "pub1234").Return(int64(0), errors.Wrap(cache.ErrUnavailable, "incr"))

	res, err := s.resolver.Resolve(context.Background(), "pub1234")
	s.Require().NoError(err, "отказ кеша не должен подниматься до ответа")
	s.Equal(OutcomeRedirect, res.Outcome)
}

func (s *ResolverSuite) TestNotFound() {
	s.snapCache.On("Get", mock.Anything, "nope123").Return(nil, cache.ErrMiss)
	s.linkRepo.On("GetByShortCode", mock.Anything, "nope123").Return(nil, repositories.ErrNotFound)

	res, err := s.resolver.Resolve(context.Background(), "nope123")
	s.Require().NoError(err)
	s.Equal(OutcomeNotFound, res.Outcome)
	s.Nil(res.Snapshot)
}

func (s *ResolverSuite) TestInactive() {
	snap := s.publicSnapshot()
	snap.Active = false
	s.snapCache.On("Get", mock.Anything, "pub1234").Return(snap, nil)
	s.snapCache.On("RecordAccess", mock.Anything, "pub1234").Return(int64(1), nil)

	res, err := s.resolver.Resolve(context.Background(), "pub1234")
	s.Require().NoError(err)
	s.Equal(OutcomeInactive, res.Outcome)
}

func (s *ResolverSuite) TestProtectedRequiresVerification() {
	snap := s.publicSnapshot()
	snap.IsProtected = true
	snap.NotifyOnAccess = true
	snap.AuthorizedEmails = []string{"a@example.com"}
	s.snapCache.On("Get", mock.Anything, "pub1234").Return(snap, nil)
	s.snapCache.On("RecordAccess", mock.Anything, "pub1234").Return(int64(1), nil)

	res, err := s.resolver.Resolve(context.Background(), "pub1234")
	s.Require().NoError(err)
	s.Equal(OutcomeRequiresVerification, res.Outcome)
	// Уведомление для защищенной ссылки уходит после верификации, не здесь.
	time.Sleep(50 * time.Millisecond)
	s.mailer.AssertNotCalled(s.T(), "SendAccessNotification")
}

func (s *ResolverSuite) TestNotifyOnAccessDispatched() {
	snap := s.publicSnapshot()
	snap.NotifyOnAccess = true
	s.snapCache.On("Get", mock.Anything, "pub1234").Return(snap, nil)
	s.snapCache.On("RecordAccess", mock.Anything, "pub1234").Return(int64(1), nil)

	sent := make(chan struct{})
	s.mailer.On("SendAccessNotification", mock.Anything, "owner@example.com", "https://example.com/target", "").
		Run(func(_ mock.Arguments) { close(sent) }).
		Return(nil)

	res, err := s.resolver.Resolve(context.Background(), "pub1234")
	s.Require().NoError(err)
	s.Equal(OutcomeRedirect, res.Outcome)

	select {
	case <-sent:
	case <-time.After(time.Second):
		s.Fail("access notification was not dispatched")
	}
}

func (s *ResolverSuite) TestNotifyFailureDoesNotAffectRedirect() {
	snap := s.publicSnapshot()
	snap.NotifyOnAccess = true
	s.snapCache.On("Get", mock.Anything, "pub1234").Return(snap, nil)
	s.snapCache.On("RecordAccess", mock.Anything, "pub1234").Return(int64(1), nil)

	sent := make(chan struct{})
	s.mailer.On("SendAccessNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ mock.Arguments) { close(sent) }).
		Return(errors.New("smtp down"))

	res, err := s.resolver.Resolve(context.Background(), "pub1234")
	s.Require().NoError(err)
	s.Equal(OutcomeRedirect, res.Outcome)

	select {
	case <-sent:
	case <-time.After(time.Second):
		s.Fail("access notification was not dispatched")
	}
}

func (s *ResolverSuite) TestStoreFailure() {
	s.snapCache.On("Get", mock.Anything, "pub1234").Return(nil, cache.ErrMiss)
	s.linkRepo.On("GetByShortCode", mock.Anything, "pub1234").Return(nil, repositories.ErrUnknown)

	_, err := s.resolver.Resolve(context.Background(), "pub1234")
	s.ErrorIs(err, ErrUnknown)
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}
