package models

// AuthorizedEmail запись белого списка адресов защищенной ссылки.
// Адрес хранится нормализованным (нижний регистр, без пробелов по краям).
type AuthorizedEmail struct {
	ID          uint   `gorm:"primaryKey"                                       json:"id"`
	ShortLinkID uint   `gorm:"not null;index:idx_authorized_emails_link_email"  json:"shortLinkId"`
	Email       string `gorm:"size:255;not null;index:idx_authorized_emails_link_email" json:"email"`
}
