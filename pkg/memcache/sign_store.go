package mem

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	SignReset  = "reset"
	SignVerify = "verify"

	// SignTTL is how long an emailed link stays valid.
	SignTTL = 30 * time.Minute
)

var ErrSignNotFound = errors.New("sign not found or expired")

// SignStore maps a link signature of a given kind to the email it was
// issued for.
type SignStore interface {
	Set(ctx context.Context, kind, sign, email string, ttl time.Duration) error
	// Get returns ErrSignNotFound for unknown or expired signs.
	Get(ctx context.Context, kind, sign string) (string, error)
	Delete(ctx context.Context, kind, sign string) error
}

func signKey(kind, sign string) string {
	return fmt.Sprintf("user:sign:%s:%s", kind, sign)
}

type entry struct {
	email     string
	expiresAt time.Time
}

// MemorySignStore keeps signs in process; used when no redis is configured.
type MemorySignStore struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewMemorySignStore() *MemorySignStore {
	return &MemorySignStore{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *MemorySignStore) Set(_ context.Context, kind, sign, email string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[signKey(kind, sign)] = entry{
		email:     email,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemorySignStore) Get(_ context.Context, kind, sign string) (string, error) {
	key := signKey(kind, sign)

	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return "", ErrSignNotFound
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.data, key)
		s.mu.Unlock()
		return "", ErrSignNotFound
	}
	return e.email, nil
}

func (s *MemorySignStore) Delete(_ context.Context, kind, sign string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, signKey(kind, sign))
	return nil
}

type RedisSignStore struct {
	client redis.UniversalClient
}

func NewRedisSignStore(client redis.UniversalClient) *RedisSignStore {
	return &RedisSignStore{client: client}
}

func (s *RedisSignStore) Set(ctx context.Context, kind, sign, email string, ttl time.Duration) error {
	return s.client.Set(ctx, signKey(kind, sign), email, ttl).Err()
}

func (s *RedisSignStore) Get(ctx context.Context, kind, sign string) (string, error) {
	email, err := s.client.Get(ctx, signKey(kind, sign)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSignNotFound
	}
	if err != nil {
		return "", err
	}
	return email, nil
}

func (s *RedisSignStore) Delete(ctx context.Context, kind, sign string) error {
	return s.client.Del(ctx, signKey(kind, sign)).Err()
}
