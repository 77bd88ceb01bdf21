package services

import (
	"github.com/fsdevblog/gatelink/internal/cache"
	"github.com/fsdevblog/gatelink/internal/repositories/sql"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Services сервисный слой приложения.
type Services struct {
	LinkService   *LinkService
	Resolver      *Resolver
	AccessService *AccessService
}

// Factory собирает сервисный слой поверх gorm подключения и кеша.
func Factory(conn *gorm.DB, linkCache *cache.LinkCache, mailer Mailer, logger *logrus.Logger) *Services {
	linkRepo := sql.NewLinkRepo(conn, logger)
	tokenRepo := sql.NewTokenRepo(conn, logger)
	generator := NewCodeGenerator(linkRepo)

	return &Services{
		LinkService:   NewLinkService(linkRepo, linkCache, generator, logger),
		Resolver:      NewResolver(linkRepo, linkCache, mailer, logger),
		AccessService: NewAccessService(linkRepo, tokenRepo, mailer, logger),
	}
}
