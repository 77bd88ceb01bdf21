// Package mocks содержит testify моки слоев хранилища и кеша для
// тестов сервисного слоя.
package mocks

import (
	"context"

	"github.com/fsdevblog/gatelink/internal/cache"
	"github.com/fsdevblog/gatelink/internal/models"
	"github.com/stretchr/testify/mock"
)

type LinkRepoMock struct {
	mock.Mock
}

func (m *LinkRepoMock) Create(ctx context.Context, link *models.ShortLink, emails []string) error {
	args := m.Called(ctx, link, emails)
	return args.Error(0) //nolint:wrapcheck,errcheck
}

func (m *LinkRepoMock) GetByShortCode(ctx context.Context, shortCode string) (*models.ShortLink, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.ShortLink), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkRepoMock) GetByID(ctx context.Context, id uint) (*models.ShortLink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.ShortLink), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkRepoMock) ListByOwner(ctx context.Context, ownerID string) ([]models.ShortLink, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).([]models.ShortLink), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkRepoMock) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0) //nolint:wrapcheck,errcheck
}

func (m *LinkRepoMock) ExistsByShortCode(ctx context.Context, shortCode string) (bool, error) {
	args := m.Called(ctx, shortCode)
	return args.Bool(0), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkRepoMock) IsEmailAuthorized(ctx context.Context, linkID uint, email string) (bool, error) {
	args := m.Called(ctx, linkID, email)
	return args.Bool(0), args.Error(1) //nolint:wrapcheck,errcheck
}

type TokenRepoMock struct {
	mock.Mock
}

func (m *TokenRepoMock) Create(ctx context.Context, token *models.AccessToken) error {
	args := m.Called(ctx, token)
	return args.Error(0) //nolint:wrapcheck,errcheck
}

func (m *TokenRepoMock) GetActiveByValue(ctx context.Context, value string) (*models.AccessToken, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.AccessToken), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *TokenRepoMock) Consume(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0) //nolint:wrapcheck,errcheck
}

type MailerMock struct {
	mock.Mock
}

func (m *MailerMock) SendVerificationEmail(ctx context.Context, email, verificationURL string) error {
	args := m.Called(ctx, email, verificationURL)
	return args.Error(0) //nolint:wrapcheck,errcheck
}

func (m *MailerMock) SendAccessNotification(ctx context.Context, ownerEmail, originalURL, visitorEmail string) error {
	args := m.Called(ctx, ownerEmail, originalURL, visitorEmail)
	return args.Error(0) //nolint:wrapcheck,errcheck
}

type SnapshotCacheMock struct {
	mock.Mock
}

func (m *SnapshotCacheMock) Get(ctx context.Context, shortCode string) (*cache.Snapshot, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*cache.Snapshot), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *SnapshotCacheMock) Put(ctx context.Context, shortCode string, snap *cache.Snapshot) error {
	args := m.Called(ctx, shortCode, snap)
	return args.Error(0) //nolint:wrapcheck,errcheck
}

func (m *SnapshotCacheMock) Invalidate(ctx context.Context, shortCode string) error {
	args := m.Called(ctx, shortCode)
	return args.Error(0) //nolint:wrapcheck,errcheck
}

func (m *SnapshotCacheMock) RecordAccess(ctx context.Context, shortCode string) (int64, error) {
	args := m.Called(ctx, shortCode)
	return args.Get(0).(int64), args.Error(1) //nolint:wrapcheck,errcheck
}
