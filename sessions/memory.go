package sessions

import (
	"context"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/mohae/deepcopy"
)

// MemoryStore keeps the most recently used sessions in process memory
type MemoryStore struct {
	lru *simplelru.LRU
	mu  *sync.Mutex
}

var _ Store = &MemoryStore{}

func NewMemoryStore(size int) (*MemoryStore, error) {
	var onEvict simplelru.EvictCallback
	lru, err := simplelru.NewLRU(size, onEvict)
	if err != nil {
		return nil, err
	}

	return &MemoryStore{
		lru: lru,
		mu:  &sync.Mutex{},
	}, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lru.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	session := e.(*Session)
	if session.IsExpired() {
		m.lru.Remove(id)
		return nil, ErrSessionNotFound
	}

	return deepcopy.Copy(session).(*Session), nil
}

func (m *MemoryStore) Save(_ context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_ = m.lru.Add(session.Id, deepcopy.Copy(session).(*Session))
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lru.Remove(id)
	return nil
}
