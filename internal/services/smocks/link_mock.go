package smocks

import (
	"context"

	"github.com/fsdevblog/gatelink/internal/models"
	"github.com/fsdevblog/gatelink/internal/services"
	"github.com/stretchr/testify/mock"
)

type LinkServiceMock struct {
	mock.Mock
}

func (m *LinkServiceMock) Create(ctx context.Context, params services.CreateLinkParams) (*models.ShortLink, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.ShortLink), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkServiceMock) ListByOwner(ctx context.Context, ownerID string) ([]models.ShortLink, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).([]models.ShortLink), args.Error(1) //nolint:wrapcheck,errcheck
}

func (m *LinkServiceMock) Delete(ctx context.Context, id uint, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0) //nolint:wrapcheck,errcheck
}
