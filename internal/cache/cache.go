// Пакет cache — key-value кэш с TTL для cache-aside чтения контента.
// Store — контракт кэш-хранилища: get/set строковых снимков с истечением
// по TTL. Кэш best-effort и никогда не авторитетен: его потеря стоит
// только латентности, не корректности.
// MemoryStore — обёртка над hashicorp/golang-lru/v2/expirable.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store — интерфейс кэш-хранилища.
// Ошибки Get/Set означают недоступность бэкенда (не «ключ отсутствует») —
// вызывающий слой обязан трактовать их как вынужденный miss (fail open).
type Store interface {
	// Get возвращает значение по ключу: (значение, найдено, ошибка бэкенда).
	Get(ctx context.Context, key string) (string, bool, error)
	// Set сохраняет значение; TTL применяется хранилищем с момента записи.
	Set(ctx context.Context, key, value string) error
	// Delete удаляет ключ (инвалидация).
	Delete(ctx context.Context, key string) error
}

// MemoryStore — in-memory реализация Store с автоматическим TTL.
// Каждый экземпляр сервиса имеет собственный кэш (per-instance,
// stateless архитектура). Истечение записей выполняет сам LRU —
// этот пакет ничего не сканирует и не вытесняет вручную.
type MemoryStore struct {
	lru *expirable.LRU[string, string]
}

// NewMemoryStore создаёт кэш с указанным максимальным размером и TTL.
// maxSize — максимальное количество записей.
// ttl — время жизни записи после добавления.
func NewMemoryStore(maxSize int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		lru: expirable.NewLRU[string, string](maxSize, nil, ttl),
	}
}

// Get возвращает значение по ключу. In-memory бэкенд не бывает
// недоступен — ошибка всегда nil.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	val, ok := s.lru.Get(key)
	return val, ok, nil
}

// Set добавляет или обновляет запись.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.lru.Add(key, value)
	return nil
}

// Delete удаляет запись из кэша.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.lru.Remove(key)
	return nil
}
