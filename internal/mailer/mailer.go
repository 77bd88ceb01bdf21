package mailer

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

// SMTPConfig настройки исходящей почты.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer отправитель писем через SMTP.
type SMTPMailer struct {
	conf   SMTPConfig
	logger *logrus.Entry
}

func NewSMTPMailer(conf SMTPConfig, logger *logrus.Logger) (*SMTPMailer, error) {
	if conf.Host == "" {
		return nil, errors.New("SMTP host is required")
	}
	if conf.From == "" {
		return nil, errors.New("SMTP from address is required")
	}
	return &SMTPMailer{
		conf:   conf,
		logger: logger.WithField("module", "mailer/smtp"),
	}, nil
}

// SendVerificationEmail шлет визитеру письмо со ссылкой подтверждения.
func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, toEmail, verificationURL string) error {
	body := fmt.Sprintf(
		"You requested access to a shortened URL. Follow the link below to proceed:\r\n\r\n"+
			"%s\r\n\r\n"+
			"This link will expire in 15 minutes.\r\n"+
			"If you didn't request this, you can safely ignore this email.\r\n",
		verificationURL,
	)
	return m.send(ctx, toEmail, "Your Magic Link for URL Access", body)
}

// SendAccessNotification шлет владельцу уведомление о визите.
// Пустой visitorEmail означает переход по публичной ссылке.
func (m *SMTPMailer) SendAccessNotification(ctx context.Context, ownerEmail, originalURL, visitorEmail string) error {
	var intro string
	if visitorEmail != "" {
		intro = fmt.Sprintf("User with email %s has accessed your protected URL:", visitorEmail)
	} else {
		intro = "Someone has accessed your public URL:"
	}
	body := fmt.Sprintf("%s\r\n\r\n%s\r\n", intro, originalURL)
	return m.send(ctx, ownerEmail, "Your shortened URL was accessed", body)
}

// send отправляет письмо через go-mail.
func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.conf.From); err != nil {
		return errors.Wrap(err, "setting from address")
	}
	if err := msg.To(to); err != nil {
		return errors.Wrap(err, "setting to address")
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(m.conf.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if m.conf.Username != "" && m.conf.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.conf.Username),
			mail.WithPassword(m.conf.Password),
		)
	}

	client, err := mail.NewClient(m.conf.Host, opts...)
	if err != nil {
		return errors.Wrap(err, "creating mail client")
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrapf(err, "sending email to %s", to)
	}

	m.logger.Debugf("email `%s` sent to %s", subject, to)
	return nil
}
