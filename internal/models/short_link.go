package models

import "time"

// ShortCodeLength длина генерируемого кода короткой ссылки.
const ShortCodeLength = 7

// ShortLink структура модели хранения короткой ссылки.
type ShortLink struct {
	ID          uint      `gorm:"primaryKey"                          json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ShortCode   string    `gorm:"size:10;uniqueIndex;not null"        json:"shortCode"`
	OriginalURL string    `gorm:"size:2048;not null"                  json:"originalUrl"`
	OwnerID     string    `gorm:"size:64;index;not null"              json:"ownerId"`
	// OwnerEmail денормализован при создании: провайдер сессий внешний,
	// при резолве мы не можем ходить к нему за адресом владельца.
	OwnerEmail     string `gorm:"size:255;not null" json:"ownerEmail"`
	IsProtected    bool   `gorm:"not null;default:false" json:"isProtected"`
	NotifyOnAccess bool   `gorm:"not null;default:false" json:"notifyOnAccess"`
	Active         bool   `gorm:"not null;default:true"  json:"active"`

	AuthorizedEmails []AuthorizedEmail `gorm:"constraint:OnDelete:CASCADE" json:"authorizedEmails,omitempty"`
	// Токены каскадом умирают вместе со ссылкой, наружу не отдаются.
	AccessTokens []AccessToken `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
