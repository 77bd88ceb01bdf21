package smocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MailerMock struct {
	mock.Mock
}

func (m *MailerMock) SendVerificationEmail(ctx context.Context, toEmail, verificationURL string) error {
	args := m.Called(ctx, toEmail, verificationURL)
	return args.Error(0) //nolint:wrapcheck,errcheck
}

func (m *MailerMock) SendAccessNotification(ctx context.Context, ownerEmail, originalURL, visitorEmail string) error {
	args := m.Called(ctx, ownerEmail, originalURL, visitorEmail)
	return args.Error(0) //nolint:wrapcheck,errcheck
}
