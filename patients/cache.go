package patients

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mohae/deepcopy"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

var ErrStaleFetch = errors.New("patient list response was superseded by a newer fetch")

// Source returns the full patient collection from the patient service
type Source interface {
	ListPatients(ctx context.Context, token *oauth2.Token) ([]Patient, error)
}

// Snapshot is an immutable view of the cached collection. Callers must not modify
// the returned slices.
type Snapshot struct {
	Patients    []Patient
	Counts      []CategoryCount
	Generation  uint64
	FetchedTime time.Time
}

// Cache holds the last successfully fetched patient collection.
//
// Every fetch is numbered when it starts. A response is only applied if no other fetch
// was started after it, so the most recently started fetch wins regardless of the order
// in which responses arrive.
type Cache struct {
	source Source
	logger *zap.SugaredLogger

	mu          sync.Mutex
	snapshot    Snapshot
	stale       bool
	generation  uint64
	invalidated uint64
	subscribers map[uint64]func(Snapshot)
	nextSubId   uint64
}

func NewCache(source Source, logger *zap.SugaredLogger) *Cache {
	return &Cache{
		source:      source,
		logger:      logger,
		stale:       true,
		snapshot:    newSnapshot(nil, 0, time.Time{}),
		subscribers: map[uint64]func(Snapshot){},
	}
}

func newSnapshot(collection []Patient, generation uint64, fetched time.Time) Snapshot {
	if collection == nil {
		collection = []Patient{}
	}
	return Snapshot{
		Patients:    collection,
		Counts:      Counts(collection),
		Generation:  generation,
		FetchedTime: fetched,
	}
}

// Fetch retrieves the collection from the source and replaces the cached one on success.
// On failure the previous snapshot is kept and returned together with the error.
func (c *Cache) Fetch(ctx context.Context, token *oauth2.Token) (Snapshot, error) {
	c.mu.Lock()
	c.generation++
	generation := c.generation
	c.mu.Unlock()

	collection, err := c.source.ListPatients(ctx, token)
	if err != nil {
		c.logger.Errorw("unable to fetch patients", "generation", generation, zap.Error(err))
		return c.Snapshot(), fmt.Errorf("unable to fetch patients: %w", err)
	}

	c.mu.Lock()
	if generation != c.generation {
		latest := c.generation
		snapshot := c.snapshot
		c.mu.Unlock()

		c.logger.Debugw("discarding superseded patients response", "generation", generation, "latest", latest)
		return snapshot, ErrStaleFetch
	}

	snapshot := newSnapshot(collection, generation, time.Now())
	c.snapshot = snapshot
	// A fetch started before the last invalidation leaves the cache stale
	c.stale = generation <= c.invalidated
	subscribers := make([]func(Snapshot), 0, len(c.subscribers))
	for _, s := range c.subscribers {
		subscribers = append(subscribers, s)
	}
	c.mu.Unlock()

	c.logger.Debugw("patients cache replaced", "generation", generation, "count", len(collection))
	for _, notify := range subscribers {
		notify(deepcopy.Copy(snapshot).(Snapshot))
	}

	return snapshot, nil
}

// Get returns the cached snapshot, fetching it first if the cache was never loaded
// or has been invalidated since the start of the last applied fetch.
func (c *Cache) Get(ctx context.Context, token *oauth2.Token) (Snapshot, error) {
	c.mu.Lock()
	stale := c.stale
	snapshot := c.snapshot
	c.mu.Unlock()

	if !stale {
		return snapshot, nil
	}
	return c.Fetch(ctx, token)
}

func (c *Cache) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Invalidate marks the cached collection stale. The snapshot stays readable until a
// fetch started after the invalidation replaces it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale = true
	c.invalidated = c.generation
}

func (c *Cache) IsStale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stale
}

// Subscribe registers fn to receive a copy of every snapshot applied to the cache.
// The returned function removes the subscription.
func (c *Cache) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubId
	c.nextSubId++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}
