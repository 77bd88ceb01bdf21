package cache

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Раскладка ключей. Счетчик обращений живет отдельно от обоих ярусов.
const (
	urlKeyPrefix         = "url:"
	hotKeyPrefix         = "hot:"
	accessCountKeyPrefix = "access_count:"
)

// URLTTL срок жизни обычного яруса.
// HotURLTTL срок жизни горячего яруса.
// AccessCountTTL срок жизни счетчика обращений, фактически суточный сброс.
// HotThreshold порог счетчика, после которого ссылка попадает в горячий ярус.
const (
	URLTTL         = 2 * time.Hour
	HotURLTTL      = 4 * time.Hour
	AccessCountTTL = 24 * time.Hour
	HotThreshold   = 10
)

// Snapshot денормализованная проекция ссылки для кеша. Форма фиксированная:
// белый список и адрес владельца заполнены всегда, откуда бы запись ни пришла.
// Кеш не авторитетен, источником правды остается реляционное хранилище.
type Snapshot struct {
	LinkID           uint     `json:"linkId"`
	ShortCode        string   `json:"shortCode"`
	OriginalURL      string   `json:"originalUrl"`
	OwnerID          string   `json:"ownerId"`
	OwnerEmail       string   `json:"ownerEmail"`
	IsProtected      bool     `json:"isProtected"`
	NotifyOnAccess   bool     `json:"notifyOnAccess"`
	Active           bool     `json:"active"`
	AuthorizedEmails []string `json:"authorizedEmails"`
}

// LinkCache двухъярусный кеш снапшотов ссылок поверх KV.
// Методы возвращают ошибки как есть; политика "считать промахом и ехать
// дальше" принадлежит вызывающей стороне, а не кешу.
type LinkCache struct {
	kv     KV
	logger *logrus.Entry
}

func NewLinkCache(kv KV, logger *logrus.Logger) *LinkCache {
	return &LinkCache{
		kv:     kv,
		logger: logger.WithField("module", "cache/link"),
	}
}

// Get ищет снапшот сперва в горячем ярусе, затем в обычном.
// Попадание в горячий ярус не проверяет обычный: последняя запись
// в каждый ярус побеждает только в своем ярусе.
func (c *LinkCache) Get(ctx context.Context, shortCode string) (*Snapshot, error) {
	snap, hotErr := c.getTier(ctx, hotKeyPrefix+shortCode)
	if hotErr == nil {
		c.logger.Debugf("hot cache HIT for %s", shortCode)
		return snap, nil
	}
	if !errors.Is(hotErr, ErrMiss) {
		return nil, hotErr
	}

	snap, err := c.getTier(ctx, urlKeyPrefix+shortCode)
	if err != nil {
		if errors.Is(err, ErrMiss) {
			c.logger.Debugf("cache MISS for %s", shortCode)
		}
		return nil, err
	}
	c.logger.Debugf("cache HIT for %s", shortCode)
	return snap, nil
}

// Put записывает снапшот в обычный ярус.
func (c *LinkCache) Put(ctx context.Context, shortCode string, snap *Snapshot) error {
	return c.putTier(ctx, urlKeyPrefix+shortCode, snap, URLTTL)
}

// Promote записывает снапшот в горячий ярус. Запись обычного яруса не
// трогается, обе могут сосуществовать.
func (c *LinkCache) Promote(ctx context.Context, shortCode string, snap *Snapshot) error {
	return c.putTier(ctx, hotKeyPrefix+shortCode, snap, HotURLTTL)
}

// Invalidate синхронно удаляет оба яруса и счетчик обращений.
// Вызывается при удалении ссылки.
func (c *LinkCache) Invalidate(ctx context.Context, shortCode string) error {
	err := c.kv.Del(ctx,
		urlKeyPrefix+shortCode,
		hotKeyPrefix+shortCode,
		accessCountKeyPrefix+shortCode,
	)
	if err != nil {
		return errors.Wrapf(err, "invalidate %s", shortCode)
	}
	return nil
}

// RecordAccess увеличивает счетчик обращений кода. При превышении порога
// снапшот из обычного яруса продвигается в горячий; отсутствие снапшота
// молча пропускается.
func (c *LinkCache) RecordAccess(ctx context.Context, shortCode string) (int64, error) {
	count, err := c.kv.Incr(ctx, accessCountKeyPrefix+shortCode, AccessCountTTL)
	if err != nil {
		return 0, errors.Wrapf(err, "record access %s", shortCode)
	}

	if count > HotThreshold {
		snap, getErr := c.getTier(ctx, urlKeyPrefix+shortCode)
		if getErr != nil {
			if !errors.Is(getErr, ErrMiss) {
				return count, getErr
			}
			return count, nil
		}
		if promoteErr := c.Promote(ctx, shortCode, snap); promoteErr != nil {
			return count, promoteErr
		}
		c.logger.Debugf("promoted %s to hot tier (count %d)", shortCode, count)
	}
	return count, nil
}

func (c *LinkCache) getTier(ctx context.Context, key string) (*Snapshot, error) {
	raw, err := c.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if unmarshalErr := json.Unmarshal(raw, &snap); unmarshalErr != nil {
		// Битая запись равносильна отсутствующей, но знать о ней надо.
		c.logger.WithError(unmarshalErr).Errorf("corrupted cache entry at %s", key)
		return nil, ErrMiss
	}
	return &snap, nil
}

func (c *LinkCache) putTier(ctx context.Context, key string, snap *Snapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrapf(err, "marshal snapshot for %s", key)
	}
	if setErr := c.kv.Set(ctx, key, raw, ttl); setErr != nil {
		return errors.Wrapf(setErr, "store snapshot at %s", key)
	}
	return nil
}
