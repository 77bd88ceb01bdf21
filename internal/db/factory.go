package db

import (
	"fmt"

	"github.com/fsdevblog/gatelink/internal/config"
	"github.com/fsdevblog/gatelink/internal/models"
	"gorm.io/gorm"
)

type FactoryConfig struct {
	DBType      config.DBType
	SQLitePath  string
	PostgresDSN string
}

// NewConnectionFactory возвращает gorm подключение для заданного типа хранилища.
func NewConnectionFactory(conf FactoryConfig) (*gorm.DB, error) {
	switch conf.DBType {
	case config.DBTypeSQLite:
		return NewSQLite(conf.SQLitePath)
	case config.DBTypePostgres:
		if conf.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres dsn is empty")
		}
		return NewPostgres(conf.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", conf.DBType)
	}
}

// пока не будем ничего усложнять, а сделаем миграцию прямо здесь
func migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.ShortLink{},
		&models.AuthorizedEmail{},
		&models.AccessToken{},
	); err != nil {
		return fmt.Errorf("migrating sql: %w", err)
	}
	return nil
}
