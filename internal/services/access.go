package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/gatelink/internal/models"
	"github.com/fsdevblog/gatelink/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// VerifyResult успешный итог погашения токена. Всего достаточно, чтобы
// вызывающая сторона сделала редирект и отправила уведомление владельцу.
type VerifyResult struct {
	OriginalURL    string
	VisitorEmail   string
	OwnerEmail     string
	NotifyOnAccess bool
}

// AccessService выдает и гасит одноразовые токены подтверждения доступа
// к защищенным ссылкам.
type AccessService struct {
	links  LinkRepository
	tokens TokenRepository
	mailer Mailer
	logger *logrus.Entry
}

func NewAccessService(
	links LinkRepository,
	tokens TokenRepository,
	mailer Mailer,
	logger *logrus.Logger,
) *AccessService {
	return &AccessService{
		links:  links,
		tokens: tokens,
		mailer: mailer,
		logger: logger.WithField("module", "service/access"),
	}
}

// RequestAccess проверяет адрес по белому списку ссылки, выдает токен и
// отправляет письмо со ссылкой подтверждения. origin это scheme://host
// обрабатываемого запроса, из него собирается ссылка в письме.
//
// Отказ почты не считается отказом операции: токен уже выдан, письмо
// просто не дошло, клиент запросит доступ повторно.
func (s *AccessService) RequestAccess(ctx context.Context, shortCode, email, origin string) error {
	link, getErr := s.links.GetByShortCode(ctx, shortCode)
	if getErr != nil {
		if errors.Is(getErr, repositories.ErrNotFound) {
			return errors.Wrapf(ErrRecordNotFound, "short code %s not found", shortCode)
		}
		return ErrUnknown
	}

	if !link.IsProtected {
		return ErrNotProtected
	}

	authorized, authErr := s.links.IsEmailAuthorized(ctx, link.ID, email)
	if authErr != nil {
		return ErrUnknown
	}
	if !authorized {
		return ErrForbidden
	}

	tokenValue, tokenErr := RandomString(models.AccessTokenLength)
	if tokenErr != nil {
		return ErrUnknown
	}

	token := models.AccessToken{
		ShortLinkID: link.ID,
		Email:       models.NormalizeEmail(email),
		Token:       tokenValue,
		ExpiresAt:   time.Now().Add(models.AccessTokenTTL),
	}
	if createErr := s.tokens.Create(ctx, &token); createErr != nil {
		return ErrUnknown
	}

	verificationURL := fmt.Sprintf("%s/api/verify-access/%s", origin, tokenValue)
	if sendErr := s.mailer.SendVerificationEmail(ctx, token.Email, verificationURL); sendErr != nil {
		s.logger.WithError(sendErr).Warnf("failed to send verification email to %s", token.Email)
	}
	return nil
}

// VerifyAccess гасит токен и решает, пускать ли визитера.
//
// Машина состояний токена: issued → (consumed_ok | consumed_denied),
// оба исхода терминальны. Просроченный токен не гасится: повторная
// попытка получит тот же ErrTokenExpired, строка умрет каскадом вместе
// со ссылкой. Авторизация перепроверяется по текущему белому списку,
// отзыв адреса после выдачи токена задним числом блокирует погашение.
func (s *AccessService) VerifyAccess(ctx context.Context, tokenValue string) (*VerifyResult, error) {
	token, getErr := s.tokens.GetActiveByValue(ctx, tokenValue)
	if getErr != nil {
		if errors.Is(getErr, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, ErrUnknown
	}

	if token.Expired(time.Now()) {
		return nil, ErrTokenExpired
	}

	// Гасим до проверки авторизации: токен одноразовый при любом исходе,
	// а условный UPDATE отдаст строку ровно одному из конкурентных вызовов.
	if consumeErr := s.tokens.Consume(ctx, token.ID); consumeErr != nil {
		if errors.Is(consumeErr, repositories.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, ErrUnknown
	}

	authorized, authErr := s.links.IsEmailAuthorized(ctx, token.ShortLinkID, token.Email)
	if authErr != nil {
		return nil, ErrUnknown
	}
	if !authorized {
		return nil, errors.Wrap(ErrForbidden, "email is no longer authorized")
	}

	link, linkErr := s.links.GetByID(ctx, token.ShortLinkID)
	if linkErr != nil {
		if errors.Is(linkErr, repositories.ErrNotFound) {
			// Ссылку удалили, пока токен был в пути.
			return nil, ErrInvalidToken
		}
		return nil, ErrUnknown
	}

	return &VerifyResult{
		OriginalURL:    link.OriginalURL,
		VisitorEmail:   token.Email,
		OwnerEmail:     link.OwnerEmail,
		NotifyOnAccess: link.NotifyOnAccess,
	}, nil
}
