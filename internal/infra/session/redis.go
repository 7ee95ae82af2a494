package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
)

const keyPrefix = "turf:selection:"

// RedisStore хранит снимки выбора слотов в redis с TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore создает хранилище поверх готового клиента
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisClient разбирает redis:// URL и создает клиента
func NewRedisClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*domain.Selection, error) {
	data, err := s.client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrStore, sessionID, err)
	}

	sel, err := domain.RestoreSelection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptedSession, err)
	}
	return sel, nil
}

// Save перезаписывает снимок и продлевает TTL
func (s *RedisStore) Save(ctx context.Context, sessionID string, sel *domain.Selection) error {
	data, err := sel.Snapshot()
	if err != nil {
		return fmt.Errorf("%w: snapshot: %v", ErrStore, err)
	}

	if err := s.client.Set(ctx, key(sessionID), string(data), s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrStore, sessionID, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrStore, sessionID, err)
	}
	return nil
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}
