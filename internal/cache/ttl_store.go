package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TTLStore — контракт хранилища с истечением по ключу.
// Истёкшая запись неотличима от удалённой.
type TTLStore interface {
	Put(key string, value interface{}, ttl time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)
}

type memoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore — in-process реализация на go-cache.
func NewMemoryStore() TTLStore {
	return &memoryStore{
		c: gocache.New(gocache.NoExpiration, time.Minute),
	}
}

func (s *memoryStore) Put(key string, value interface{}, ttl time.Duration) {
	s.c.Set(key, value, ttl)
}

func (s *memoryStore) Get(key string) (interface{}, bool) {
	return s.c.Get(key)
}

func (s *memoryStore) Delete(key string) {
	s.c.Delete(key)
}
