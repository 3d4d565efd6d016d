package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

func NewRedisClient(cfg *Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// RedisStore keeps sessions as JSON documents which expire together with the session
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = &RedisStore{}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("unable to get session: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(val, session); err != nil {
		return nil, fmt.Errorf("unable to decode session: %w", err)
	}
	if session.IsExpired() {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

func (r *RedisStore) Save(ctx context.Context, session *Session) error {
	val, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("unable to encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(session.Id), val, session.ttl()).Err(); err != nil {
		return fmt.Errorf("unable to save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("unable to delete session: %w", err)
	}
	return nil
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}
