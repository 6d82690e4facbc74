package common

import (
	"encoding/json"
	"time"

	"mentorhub/backend/internal/logging"

	"github.com/patrickmn/go-cache"
)

// CacheService is the in-memory cache used when Redis is disabled (single instance, tests)
type CacheService struct {
	cache *cache.Cache
}

// Ensure CacheService implements CacheInterface
var _ CacheInterface = (*CacheService)(nil)

func NewCacheService(defaultExpiration, cleanUpInterval time.Duration) *CacheService {
	c := cache.New(defaultExpiration, cleanUpInterval)
	return &CacheService{cache: c}
}

func (cs *CacheService) Set(key string, value interface{}, duration time.Duration) {
	cs.cache.Set(key, value, duration)
}

func (cs *CacheService) Get(key string) (interface{}, bool) {
	return cs.cache.Get(key)
}

func (cs *CacheService) GetInto(key string, dst interface{}) bool {
	val, found := cs.cache.Get(key)
	if !found {
		return false
	}

	data, err := json.Marshal(val)
	if err != nil {
		logging.Warn("Memory cache: failed to marshal value", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logging.Warn("Memory cache: failed to decode value", "key", key, "error", err)
		return false
	}
	return true
}

func (cs *CacheService) Delete(key string) {
	cs.cache.Delete(key)
}

// Close closes the cache (no-op for in-memory cache)
func (cs *CacheService) Close() error {
	return nil
}
