package config

import (
	"flag"
	"net/url"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type DBType string

// Поддерживаемые типы хранилища.
const (
	DBTypeSQLite   DBType = "sqlite"
	DBTypePostgres DBType = "postgres"
)

type CacheBackend string

// Поддерживаемые бекенды кеша.
const (
	CacheBackendRedis    CacheBackend = "redis"
	CacheBackendInMemory CacheBackend = "inMemory"
)

type Config struct {
	// Адрес на котором запустится сервер
	ServerAddress string `env:"SERVER_ADDRESS"`
	// Базовый адрес результирующего сокращенного URL
	BaseURL *url.URL `env:"BASE_URL"`
	// Тип хранилища
	DBType DBType `env:"DB" envDefault:"sqlite"`
	// DSN для postgres (используется при DB=postgres)
	DatabaseDSN string `env:"DATABASE_DSN"`
	// Путь к файлу sqlite (используется при DB=sqlite)
	SQLitePath string `env:"SQLITE_PATH" envDefault:"gatelink.db"`
	// Бекенд кеша. Через флаги не настраиваю, незачем.
	CacheBackend CacheBackend `env:"CACHE" envDefault:"inMemory"`
	// Адрес redis (используется при CACHE=redis)
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	// Секрет для подписи сессионных JWT
	SessionSecret string `env:"SESSION_SECRET"`
	// Настройки SMTP. При пустом хосте письма только логируются.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`
}

func LoadConfig() (*Config, error) {
	var flagsConfig, envConfig Config

	if err := env.Parse(&envConfig); err != nil {
		return nil, errors.Wrapf(err, "parse ENV config error")
	}

	loadsFlags(&flagsConfig)

	return mergeConfig(&envConfig, &flagsConfig), nil
}

// MustLoadConfig вызывает панику если конфигурация не загрузилась.
func MustLoadConfig() *Config {
	conf, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return conf
}

// loadsFlags парсит флаги командной строки.
func loadsFlags(flagsConfig *Config) {
	flag.StringVar(&flagsConfig.ServerAddress, "a", "localhost:8080", "Адрес сервера")
	flag.StringVar(&flagsConfig.DatabaseDSN, "d", "", "DSN базы данных postgres")

	bDesc := "Базовый адрес результирующего сокращенного URL (по умолчанию Scheme://Host запущенного сервера)"
	flag.Func("b", bDesc, func(rawURL string) error {
		parsedURL, err := url.ParseRequestURI(rawURL)
		if err != nil {
			return errors.Wrap(err, "failed to parse base url")
		}

		// создаем новый инстанс, отсекая тем самым Path и Query если они заданы в базовом урле.
		flagsConfig.BaseURL = &url.URL{
			Scheme: parsedURL.Scheme,
			Host:   parsedURL.Host,
		}
		return nil
	})

	flag.Parse()
}

// mergeConfig сливает структуры для env и флагов. Значения из env приоритетнее.
func mergeConfig(envConfig, flagsConfig *Config) *Config {
	merged := *envConfig
	merged.ServerAddress = defaultIfBlank[string](envConfig.ServerAddress, flagsConfig.ServerAddress)
	merged.BaseURL = defaultIfBlank[*url.URL](envConfig.BaseURL, flagsConfig.BaseURL)
	merged.DatabaseDSN = defaultIfBlank[string](envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	if merged.DatabaseDSN != "" {
		merged.DBType = DBTypePostgres
	}
	return &merged
}

func defaultIfBlank[T any](value T, defaultValue T) T {
	if v, ok := any(value).(string); ok && v == "" {
		return defaultValue
	}
	if v, ok := any(value).(*url.URL); ok && v == nil {
		return defaultValue
	}
	return value
}
