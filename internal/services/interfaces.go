package services

import (
	"context"

	"github.com/fsdevblog/gatelink/internal/cache"
	"github.com/fsdevblog/gatelink/internal/models"
)

// LinkRepository описывает хранилище коротких ссылок.
type LinkRepository interface {
	// Create создает ссылку вместе с белым списком адресов одной транзакцией.
	Create(ctx context.Context, link *models.ShortLink, emails []string) error
	// GetByShortCode находит запись по короткому коду вместе со связями.
	GetByShortCode(ctx context.Context, shortCode string) (*models.ShortLink, error)
	// GetByID находит запись по первичному ключу вместе со связями.
	GetByID(ctx context.Context, id uint) (*models.ShortLink, error)
	// ListByOwner возвращает записи владельца, новые сверху.
	ListByOwner(ctx context.Context, ownerID string) ([]models.ShortLink, error)
	// Delete жестко удаляет запись вместе со связями.
	Delete(ctx context.Context, id uint) error
	// ExistsByShortCode проверяет занят ли короткий код.
	ExistsByShortCode(ctx context.Context, shortCode string) (bool, error)
	// IsEmailAuthorized проверяет адрес по белому списку записи.
	IsEmailAuthorized(ctx context.Context, linkID uint, email string) (bool, error)
}

// TokenRepository описывает хранилище одноразовых токенов доступа.
type TokenRepository interface {
	Create(ctx context.Context, token *models.AccessToken) error
	// GetActiveByValue находит непогашенный токен по значению.
	GetActiveByValue(ctx context.Context, value string) (*models.AccessToken, error)
	// Consume гасит токен; повторное погашение возвращает ошибку.
	Consume(ctx context.Context, id uint) error
}

// SnapshotCache описывает двухъярусный кеш снапшотов.
// Все ошибки кеша вызывающая сторона трактует как промах.
type SnapshotCache interface {
	Get(ctx context.Context, shortCode string) (*cache.Snapshot, error)
	Put(ctx context.Context, shortCode string, snap *cache.Snapshot) error
	Invalidate(ctx context.Context, shortCode string) error
	RecordAccess(ctx context.Context, shortCode string) (int64, error)
}

// Mailer внешний отправитель писем. Обе операции best-effort:
// ошибка логируется и никогда не роняет пользовательский ответ.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, toEmail, verificationURL string) error
	// SendAccessNotification уведомляет владельца о визите. Пустой
	// visitorEmail означает переход по публичной ссылке.
	SendAccessNotification(ctx context.Context, ownerEmail, originalURL, visitorEmail string) error
}
