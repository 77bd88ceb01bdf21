package models

import "time"

// AccessTokenLength длина одноразового токена подтверждения доступа.
// AccessTokenTTL срок жизни токена с момента выдачи.
const (
	AccessTokenLength = 32
	AccessTokenTTL    = 15 * time.Minute
)

// AccessToken одноразовый токен подтверждения почты для защищенной ссылки.
// Токен терминален: после погашения (удачного или нет) поле Used выставляется
// навсегда. Просроченные токены не гасятся, они умирают каскадом вместе со ссылкой.
type AccessToken struct {
	ID          uint      `gorm:"primaryKey"                   json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	ShortLinkID uint      `gorm:"index;not null"               json:"shortLinkId"`
	Email       string    `gorm:"size:255;not null"            json:"email"`
	Token       string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	Used        bool      `gorm:"not null;default:false"       json:"used"`
	ExpiresAt   time.Time `gorm:"not null"                     json:"expiresAt"`
}

// Expired сообщает, истек ли срок действия токена на момент now.
func (t *AccessToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
