package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fsdevblog/gatelink/internal/cache"
	"github.com/fsdevblog/gatelink/internal/config"
	"github.com/fsdevblog/gatelink/internal/controllers"
	"github.com/fsdevblog/gatelink/internal/db"
	"github.com/fsdevblog/gatelink/internal/mailer"
	"github.com/fsdevblog/gatelink/internal/services"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type App struct {
	config     config.Config
	dbServices *services.Services
	mailSender services.Mailer
	Logger     *logrus.Logger
}

func New(conf config.Config) (*App, error) {
	logger := config.InitLogger()

	mailSender, mailerErr := initMailer(conf, logger)
	if mailerErr != nil {
		return nil, fmt.Errorf("init mailer: %w", mailerErr)
	}

	dbServices, servicesErr := initServices(conf, mailSender, logger)
	if servicesErr != nil {
		return nil, fmt.Errorf("init services: %w", servicesErr)
	}

	return &App{
		config:     conf,
		dbServices: dbServices,
		mailSender: mailSender,
		Logger:     logger,
	}, nil
}

// Must вызывает панику если произошла ошибка.
func Must(a *App, err error) *App {
	if err != nil {
		panic(err)
	}
	return a
}

// Run запускает web сервер.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)

	server := controllers.SetupRouter(controllers.RouterParams{
		LinkService:   a.dbServices.LinkService,
		Resolver:      a.dbServices.Resolver,
		AccessService: a.dbServices.AccessService,
		Mailer:        a.mailSender,
		AppConf:       &a.config,
		Logger:        a.Logger,
	})

	go func() {
		if err := server.Run(a.config.ServerAddress); err != nil {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received")
	case serverErr = <-errChan:
		a.Logger.WithError(serverErr).Error("router error")
	}

	return serverErr
}

// initServices создает подключение к базе данных и возвращает сервисный слой приложения.
func initServices(conf config.Config, mailSender services.Mailer, logger *logrus.Logger) (*services.Services, error) {
	conn, connErr := db.NewConnectionFactory(db.FactoryConfig{
		DBType:      conf.DBType,
		SQLitePath:  conf.SQLitePath,
		PostgresDSN: conf.DatabaseDSN,
	})
	if connErr != nil {
		return nil, connErr //nolint:wrapcheck
	}

	linkCache := cache.NewLinkCache(initCacheKV(conf), logger)

	return services.Factory(conn, linkCache, mailSender, logger), nil
}

// initCacheKV выбирает бекенд кеша. Кеш вспомогательный, поэтому сюда не
// прилетают ошибки подключения: недоступный redis проявится как серия
// промахов в логах, а не как отказ старта.
func initCacheKV(conf config.Config) cache.KV {
	if conf.CacheBackend == config.CacheBackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     conf.RedisAddr,
			Password: conf.RedisPassword,
			DB:       conf.RedisDB,
		})
		return cache.NewRedisKV(client)
	}
	return cache.NewMemoryKV()
}

func initMailer(conf config.Config, logger *logrus.Logger) (services.Mailer, error) {
	if conf.SMTPHost == "" {
		logger.Warn("SMTP is not configured, emails will only be logged")
		return mailer.NewLogMailer(logger), nil
	}
	return mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     conf.SMTPHost,
		Port:     conf.SMTPPort,
		Username: conf.SMTPUsername,
		Password: conf.SMTPPassword,
		From:     conf.SMTPFrom,
	}, logger)
}
