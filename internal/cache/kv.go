package cache

import (
	"context"
	"time"
)

// KV низкоуровневое key-value хранилище с TTL-вытеснением.
// Единственные ожидаемые ошибки: ErrMiss для отсутствующего ключа
// и ErrUnavailable (возможно обернутая) для всего остального.
type KV interface {
	// Get возвращает значение ключа либо ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set записывает значение со сроком жизни ttl, перезаписывая существующее.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Del удаляет ключи. Отсутствие ключа ошибкой не считается.
	Del(ctx context.Context, keys ...string) error
	// Incr атомарно увеличивает целочисленный счетчик и обновляет его ttl.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
