package sql

import (
	"context"

	"github.com/fsdevblog/gatelink/internal/models"
	"github.com/fsdevblog/gatelink/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TokenRepo репозиторий одноразовых токенов подтверждения доступа.
type TokenRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewTokenRepo(db *gorm.DB, logger *logrus.Logger) *TokenRepo {
	return &TokenRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/token"),
	}
}

// Create сохраняет выданный токен.
func (r *TokenRepo) Create(ctx context.Context, token *models.AccessToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		converted := ConvertErrorType(err)
		if !errors.Is(converted, repositories.ErrDuplicateKey) {
			r.logger.WithError(err).Errorf("failed to create token for link %d", token.ShortLinkID)
		}
		return converted
	}
	return nil
}

// GetActiveByValue находит непогашенный токен по значению.
// Просроченные, но непогашенные строки тоже возвращаются: срок действия
// проверяет вызывающая сторона.
func (r *TokenRepo) GetActiveByValue(ctx context.Context, value string) (*models.AccessToken, error) {
	var token models.AccessToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND used = ?", value, false).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		r.logger.WithError(err).Error("failed to get token by value")
		return nil, repositories.ErrUnknown
	}
	return &token, nil
}

// Consume гасит токен одним условным UPDATE. Повторное или конкурентное
// погашение того же токена вернет ErrNotFound: строку с used = false
// успевает забрать ровно один вызов.
func (r *TokenRepo) Consume(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.AccessToken{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if res.Error != nil {
		r.logger.WithError(res.Error).Errorf("failed to consume token %d", id)
		return repositories.ErrUnknown
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
