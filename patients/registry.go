package patients

import (
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
	"go.uber.org/zap"
)

const DefaultRegistrySize = 1000

// Registry keeps one Cache per session, so users never see a collection fetched with
// another user's token. Caches of the least recently active sessions are evicted.
type Registry struct {
	source Source
	logger *zap.SugaredLogger
	lru    *simplelru.LRU
	mu     *sync.Mutex
}

type registryEntry struct {
	cache       *Cache
	unsubscribe func()
}

func NewRegistry(size int, source Source, logger *zap.SugaredLogger) (*Registry, error) {
	onEvict := func(key interface{}, value interface{}) {
		value.(registryEntry).unsubscribe()
	}
	lru, err := simplelru.NewLRU(size, onEvict)
	if err != nil {
		return nil, err
	}

	return &Registry{
		source: source,
		logger: logger,
		lru:    lru,
		mu:     &sync.Mutex{},
	}, nil
}

// For returns the cache of the given key, creating an empty one when needed
func (r *Registry) For(key string) *Cache {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.lru.Get(key); ok {
		return e.(registryEntry).cache
	}

	cache := NewCache(r.source, r.logger)
	unsubscribe := cache.Subscribe(func(snapshot Snapshot) {
		counts := make(map[CategoryId]int, len(snapshot.Counts))
		for _, c := range snapshot.Counts {
			counts[c.Id] = c.Count
		}
		r.logger.Debugw("patients refreshed", "key", key, "generation", snapshot.Generation, "counts", counts)
	})
	_ = r.lru.Add(key, registryEntry{cache: cache, unsubscribe: unsubscribe})

	return cache
}

func (r *Registry) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lru.Remove(key)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lru.Len()
}
