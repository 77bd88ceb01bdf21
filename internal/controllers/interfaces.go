package controllers

import (
	"context"

	"github.com/fsdevblog/gatelink/internal/models"
	"github.com/fsdevblog/gatelink/internal/services"
)

// LinkManager операции владельца над короткими ссылками.
type LinkManager interface {
	Create(ctx context.Context, params services.CreateLinkParams) (*models.ShortLink, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.ShortLink, error)
	Delete(ctx context.Context, id uint, ownerID string) error
}

// LinkResolver резолв короткого кода в решение о редиректе.
type LinkResolver interface {
	Resolve(ctx context.Context, shortCode string) (*services.Resolution, error)
}

// AccessManager выдача и погашение токенов подтверждения доступа.
type AccessManager interface {
	RequestAccess(ctx context.Context, shortCode, email, origin string) error
	VerifyAccess(ctx context.Context, tokenValue string) (*services.VerifyResult, error)
}
