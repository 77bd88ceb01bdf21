package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogMailer заглушка для окружений без SMTP: письма только логируются.
type LogMailer struct {
	logger *logrus.Entry
}

func NewLogMailer(logger *logrus.Logger) *LogMailer {
	return &LogMailer{logger: logger.WithField("module", "mailer/log")}
}

func (m *LogMailer) SendVerificationEmail(_ context.Context, toEmail, verificationURL string) error {
	m.logger.Infof("verification email for %s: %s", toEmail, verificationURL)
	return nil
}

func (m *LogMailer) SendAccessNotification(_ context.Context, ownerEmail, originalURL, visitorEmail string) error {
	m.logger.Infof("access notification for %s: url %s, visitor %q", ownerEmail, originalURL, visitorEmail)
	return nil
}
