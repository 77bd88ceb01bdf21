package services

import (
	"context"
	"net/url"
	"regexp"

	"github.com/fsdevblog/gatelink/internal/models"
	"github.com/fsdevblog/gatelink/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// hostnameRegex в соответствии с `RFC 1123` за исключением - исключает корневые доменные имена (без зоны).
var hostnameRegex = regexp.MustCompile(`^([a-zA-Z0-9](-?[a-zA-Z0-9])*\.)+([a-zA-Z0-9](-?[a-zA-Z0-9])*)$`)

// CreateLinkParams параметры создания короткой ссылки.
type CreateLinkParams struct {
	OwnerID          string
	OwnerEmail       string
	RawURL           string
	IsProtected      bool
	NotifyOnAccess   bool
	AuthorizedEmails []string
}

// LinkService сервис работает с хранилищем в контексте коротких ссылок.
type LinkService struct {
	links     LinkRepository
	cache     SnapshotCache
	generator *CodeGenerator
	logger    *logrus.Entry
}

func NewLinkService(
	links LinkRepository,
	snapCache SnapshotCache,
	generator *CodeGenerator,
	logger *logrus.Logger,
) *LinkService {
	return &LinkService{
		links:     links,
		cache:     snapCache,
		generator: generator,
		logger:    logger.WithField("module", "service/links"),
	}
}

// Create валидирует параметры, подбирает свободный код и создает запись.
// Защищенная ссылка обязана иметь хотя бы один адрес в белом списке.
func (s *LinkService) Create(ctx context.Context, params CreateLinkParams) (*models.ShortLink, error) {
	parsedURL, parseErr := ValidateURL(params.RawURL)
	if parseErr != nil {
		return nil, errors.Wrap(ErrValidation, parseErr.Error())
	}

	emails := normalizeEmails(params.AuthorizedEmails)
	if params.IsProtected && len(emails) == 0 {
		return nil, errors.Wrap(ErrValidation, "protected link must have at least one authorized email")
	}

	shortCode, genErr := s.generator.GenerateUniqueCode(ctx, models.ShortCodeLength)
	if genErr != nil {
		return nil, genErr
	}

	link := models.ShortLink{
		ShortCode:      shortCode,
		OriginalURL:    parsedURL.String(),
		OwnerID:        params.OwnerID,
		OwnerEmail:     models.NormalizeEmail(params.OwnerEmail),
		IsProtected:    params.IsProtected,
		NotifyOnAccess: params.NotifyOnAccess,
		Active:         true,
	}
	if createErr := s.links.Create(ctx, &link, emails); createErr != nil {
		if errors.Is(createErr, repositories.ErrDuplicateKey) {
			// Код успели занять между проверкой и вставкой. Чрезвычайно
			// маловероятно, пусть клиент просто повторит запрос.
			return nil, ErrDuplicateKey
		}
		return nil, ErrUnknown
	}
	return &link, nil
}

// ListByOwner возвращает ссылки владельца, новые сверху.
func (s *LinkService) ListByOwner(ctx context.Context, ownerID string) ([]models.ShortLink, error) {
	links, err := s.links.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, ErrUnknown
	}
	return links, nil
}

// Delete удаляет ссылку владельца и синхронно чистит кеш.
// Чужую ссылку удалить нельзя: ErrForbidden, запись остается нетронутой.
func (s *LinkService) Delete(ctx context.Context, id uint, ownerID string) error {
	link, getErr := s.links.GetByID(ctx, id)
	if getErr != nil {
		if errors.Is(getErr, repositories.ErrNotFound) {
			return errors.Wrapf(ErrRecordNotFound, "link %d not found", id)
		}
		return ErrUnknown
	}
	if link.OwnerID != ownerID {
		return errors.Wrapf(ErrForbidden, "link %d belongs to another owner", id)
	}

	if delErr := s.links.Delete(ctx, id); delErr != nil {
		if errors.Is(delErr, repositories.ErrNotFound) {
			return errors.Wrapf(ErrRecordNotFound, "link %d not found", id)
		}
		return ErrUnknown
	}

	// Кеш чистится после удаления из хранилища. Отказ кеша не повод
	// падать: записи и так умрут по TTL.
	if invErr := s.cache.Invalidate(ctx, link.ShortCode); invErr != nil {
		s.logger.WithError(invErr).Warnf("failed to invalidate cache for %s", link.ShortCode)
	}
	return nil
}

// ValidateURL проверяет, является ли строка корректным URL.
func ValidateURL(rawURL string) (*url.URL, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)

	if err != nil {
		return nil, errors.New("invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, errors.New("URL must have http or https scheme")
	}

	if parsedURL.Host == "" {
		return nil, errors.New("URL must have a host")
	}

	if parsedURL.Hostname() != "localhost" && !hostnameRegex.MatchString(parsedURL.Hostname()) {
		return nil, errors.New("invalid hostname")
	}

	return parsedURL, nil
}

// normalizeEmails нормализует адреса и выкидывает дубликаты с пустышками.
func normalizeEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	result := make([]string, 0, len(emails))
	for _, email := range emails {
		normalized := models.NormalizeEmail(email)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}
