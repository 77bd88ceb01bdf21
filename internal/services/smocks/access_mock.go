package smocks

import (
	"context"

	"github.com/fsdevblog/gatelink/internal/services"
	"github.com/stretchr/testify/mock"
)

type AccessServiceMock struct {
	mock.Mock
}

func (m *AccessServiceMock) RequestAccess(ctx context.Context, shortCode, email, origin string) error {
	args := m.Called(ctx, shortCode, email, origin)
	return args.Error(0) //nolint:wrapcheck,errcheck
}

func (m *AccessServiceMock) VerifyAccess(ctx context.Context, tokenValue string) (*services.VerifyResult, error) {
	args := m.Called(ctx, tokenValue)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*services.VerifyResult), args.Error(1) //nolint:wrapcheck,errcheck
}
