package services

import (
	"context"

	"github.com/fsdevblog/gatelink/internal/cache"
	"github.com/fsdevblog/gatelink/internal/models"
	"github.com/fsdevblog/gatelink/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Outcome решение резолва короткого кода.
type Outcome string

// OutcomeRedirect ссылка публичная, редиректим на оригинальный URL.
// OutcomeRequiresVerification ссылка защищена, отправляем на запрос доступа.
// OutcomeInactive ссылка отключена владельцем.
// OutcomeNotFound код неизвестен.
const (
	OutcomeRedirect             Outcome = "redirect"
	OutcomeRequiresVerification Outcome = "requiresVerification"
	OutcomeInactive             Outcome = "inactive"
	OutcomeNotFound             Outcome = "notFound"
)

// Resolution результат резолва. Snapshot заполнен для всех исходов кроме
// OutcomeNotFound и имеет одинаковую форму независимо от того, пришла
// запись из кеша или из хранилища.
type Resolution struct {
	Outcome  Outcome
	Snapshot *cache.Snapshot
}

// Resolver оркестрирует резолв короткого кода: кеш, затем хранилище с
// репопуляцией кеша и учетом обращений. Отказ кеша деградирует до промаха
// и никогда не поднимается до ответа пользователю.
type Resolver struct {
	links  LinkRepository
	cache  SnapshotCache
	mailer Mailer
	group  singleflight.Group
	logger *logrus.Entry
}

func NewResolver(links LinkRepository, snapCache SnapshotCache, mailer Mailer, logger *logrus.Logger) *Resolver {
	return &Resolver{
		links:  links,
		cache:  snapCache,
		mailer: mailer,
		logger: logger.WithField("module", "service/resolver"),
	}
}

// Resolve выполняет конвейер резолва: горячий ярус → обычный ярус →
// хранилище. На промахе запись кладется в обычный ярус; учет обращений
// сам продвигает частые коды в горячий ярус.
func (r *Resolver) Resolve(ctx context.Context, shortCode string) (*Resolution, error) {
	snap, cacheErr := r.cache.Get(ctx, shortCode)
	if cacheErr == nil {
		r.recordAccess(ctx, shortCode)
		return r.decide(ctx, snap), nil
	}
	if !errors.Is(cacheErr, cache.ErrMiss) {
		// Любая ошибка кеша трактуется как промах: хранилище переживет.
		r.logger.WithError(cacheErr).Warnf("cache degraded for %s, falling back to store", shortCode)
	}

	// Конкурентные промахи одного кода складываются в один запрос к базе.
	v, err, _ := r.group.Do(shortCode, func() (any, error) {
		return r.links.GetByShortCode(ctx, shortCode)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &Resolution{Outcome: OutcomeNotFound}, nil
		}
		return nil, ErrUnknown
	}
	link := v.(*models.ShortLink) //nolint:errcheck

	snap = SnapshotFromLink(link)
	if putErr := r.cache.Put(ctx, shortCode, snap); putErr != nil {
		r.logger.WithError(putErr).Warnf("failed to cache %s", shortCode)
	}
	r.recordAccess(ctx, shortCode)

	return r.decide(ctx, snap), nil
}

// decide принимает решение по снапшоту. Для публичной ссылки с включенными
// уведомлениями письмо владельцу уходит в фоне и не влияет на ответ.
func (r *Resolver) decide(ctx context.Context, snap *cache.Snapshot) *Resolution {
	if !snap.Active {
		return &Resolution{Outcome: OutcomeInactive, Snapshot: snap}
	}
	if snap.IsProtected {
		return &Resolution{Outcome: OutcomeRequiresVerification, Snapshot: snap}
	}

	if snap.NotifyOnAccess {
		go func(ownerEmail, originalURL string) {
			// Контекст запроса к этому моменту может быть уже отменен.
			if err := r.mailer.SendAccessNotification(context.WithoutCancel(ctx), ownerEmail, originalURL, ""); err != nil {
				r.logger.WithError(err).Warnf("failed to send access notification to %s", ownerEmail)
			}
		}(snap.OwnerEmail, snap.OriginalURL)
	}
	return &Resolution{Outcome: OutcomeRedirect, Snapshot: snap}
}

// recordAccess учитывает обращение. Провал учета не влияет на резолв.
func (r *Resolver) recordAccess(ctx context.Context, shortCode string) {
	if _, err := r.cache.RecordAccess(ctx, shortCode); err != nil {
		r.logger.WithError(err).Warnf("failed to record access for %s", shortCode)
	}
}

// SnapshotFromLink строит снапшот фиксированной формы из записи хранилища.
func SnapshotFromLink(link *models.ShortLink) *cache.Snapshot {
	emails := make([]string, 0, len(link.AuthorizedEmails))
	for _, ae := range link.AuthorizedEmails {
		emails = append(emails, ae.Email)
	}
	return &cache.Snapshot{
		LinkID:           link.ID,
		ShortCode:        link.ShortCode,
		OriginalURL:      link.OriginalURL,
		OwnerID:          link.OwnerID,
		OwnerEmail:       link.OwnerEmail,
		IsProtected:      link.IsProtected,
		NotifyOnAccess:   link.NotifyOnAccess,
		Active:           link.Active,
		AuthorizedEmails: emails,
	}
}
