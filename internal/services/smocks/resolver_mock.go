package smocks

import (
	"context"

	"github.com/fsdevblog/gatelink/internal/services"
	"github.com/stretchr/testify/mock"
)

type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) Resolve(ctx context.Context, shortCode string) (*services.Resolution, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*services.Resolution), args.Error(1) //nolint:wrapcheck,errcheck
}
