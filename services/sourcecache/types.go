package sourcecache

import (
	"iris-dashboard/repositories/snapshots"

	"github.com/patrickmn/go-cache"
)

const (
	PriceKey    = "price"
	NewsKey     = "news"
	TechNewsKey = "tech_news"

	weatherKeyPrefix = "weather:"
)

type Service interface {
	// Set records a successful fetch. Failed fetches must never reach it.
	Set(key string, value any)
	Get(key string) (any, bool)
	// Restore decodes the persisted value of key into target and caches it in memory.
	Restore(key string, target any) bool
}

type Impl struct {
	cache *cache.Cache
	repo  snapshots.Repository
}
