package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryKV реализация KV в памяти процесса. Используется когда redis не
// сконфигурирован, а так же в тестах. Истекшие ключи вычищаются лениво,
// при обращении.
type MemoryKV struct {
	data map[string]memoryEntry
	m    sync.Mutex
	// подменяется в тестах
	now func() time.Time
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.m.Lock()
	defer m.m.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	if entry.expired(m.now()) {
		delete(m.data, key)
		return nil, ErrMiss
	}
	val := make([]byte, len(entry.value))
	copy(val, entry.value)
	return val, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.m.Lock()
	defer m.m.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}
	m.data[key] = memoryEntry{value: stored, expiresAt: expiresAt}
	return nil
}

func (m *MemoryKV) Del(_ context.Context, keys ...string) error {
	m.m.Lock()
	defer m.m.Unlock()

	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *MemoryKV) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	m.m.Lock()
	defer m.m.Unlock()

	var count int64
	if entry, ok := m.data[key]; ok && !entry.expired(m.now()) {
		parsed, err := strconv.ParseInt(string(entry.value), 10, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrUnavailable, "non numeric counter at key %s", key)
		}
		count = parsed
	}
	count++

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}
	m.data[key] = memoryEntry{value: []byte(strconv.FormatInt(count, 10)), expiresAt: expiresAt}
	return count, nil
}
