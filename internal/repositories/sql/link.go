package sql

import (
	"context"

	"github.com/fsdevblog/gatelink/internal/models"
	"github.com/fsdevblog/gatelink/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LinkRepo репозиторий коротких ссылок и их белых списков.
type LinkRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewLinkRepo(db *gorm.DB, logger *logrus.Logger) *LinkRepo {
	return &LinkRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/link"),
	}
}

// Create создает ссылку вместе с белым списком адресов одной транзакцией.
// Частичная вставка (ссылка без адресов) недопустима: защищенная ссылка
// с пустым списком была бы навсегда недостижимой.
func (r *LinkRepo) Create(ctx context.Context, link *models.ShortLink, emails []string) error {
	txErr := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(link).Error; err != nil {
			return err
		}
		if len(emails) == 0 {
			return nil
		}
		records := make([]models.AuthorizedEmail, 0, len(emails))
		for _, email := range emails {
			records = append(records, models.AuthorizedEmail{
				ShortLinkID: link.ID,
				Email:       models.NormalizeEmail(email),
			})
		}
		if err := tx.Create(&records).Error; err != nil {
			return err
		}
		// Созданная запись отдается в той же форме, что и прочитанная:
		// вместе с белым списком.
		link.AuthorizedEmails = records
		return nil
	})
	if txErr != nil {
		converted := ConvertErrorType(txErr)
		if !errors.Is(converted, repositories.ErrDuplicateKey) {
			r.logger.WithError(txErr).Errorf("failed to create link %+v", *link)
		}
		return converted
	}
	return nil
}

// GetByShortCode находит ссылку по короткому коду вместе с белым списком.
func (r *LinkRepo) GetByShortCode(ctx context.Context, shortCode string) (*models.ShortLink, error) {
	var link models.ShortLink
	err := r.db.WithContext(ctx).
		Preload("AuthorizedEmails").
		Where("short_code = ?", shortCode).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		r.logger.WithError(err).Errorf("failed to get record by short code %s", shortCode)
		return nil, repositories.ErrUnknown
	}
	return &link, nil
}

// GetByID находит ссылку по первичному ключу вместе с белым списком.
func (r *LinkRepo) GetByID(ctx context.Context, id uint) (*models.ShortLink, error) {
	var link models.ShortLink
	err := r.db.WithContext(ctx).
		Preload("AuthorizedEmails").
		First(&link, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		r.logger.WithError(err).Errorf("failed to get record by id %d", id)
		return nil, repositories.ErrUnknown
	}
	return &link, nil
}

// ListByOwner возвращает ссылки владельца, новые сверху.
func (r *LinkRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.ShortLink, error) {
	var links []models.ShortLink
	err := r.db.WithContext(ctx).
		Preload("AuthorizedEmails").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&links).Error
	if err != nil {
		r.logger.WithError(err).Errorf("failed to list records by owner %s", ownerID)
		return nil, repositories.ErrUnknown
	}
	return links, nil
}

// Delete жестко удаляет ссылку. Белый список и токены уходят каскадом.
func (r *LinkRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.ShortLink{}, id)
	if res.Error != nil {
		r.logger.WithError(res.Error).Errorf("failed to delete record %d", id)
		return repositories.ErrUnknown
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// ExistsByShortCode проверяет занят ли короткий код.
func (r *LinkRepo) ExistsByShortCode(ctx context.Context, shortCode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ShortLink{}).
		Where("short_code = ?", shortCode).
		Count(&count).Error
	if err != nil {
		r.logger.WithError(err).Errorf("failed to check short code %s", shortCode)
		return false, repositories.ErrUnknown
	}
	return count > 0, nil
}

// IsEmailAuthorized проверяет адрес по белому списку ссылки.
// Сравнение строгое, по нормализованной форме адреса.
func (r *LinkRepo) IsEmailAuthorized(ctx context.Context, linkID uint, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AuthorizedEmail{}).
		Where("short_link_id = ? AND email = ?", linkID, models.NormalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		r.logger.WithError(err).Errorf("failed to check authorized email for link %d", linkID)
		return false, repositories.ErrUnknown
	}
	return count > 0, nil
}
