// Package session implements the server-side session store backing the
// session cookie. A session maps an opaque token to the logged-in user's ID.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a session lives without an explicit logout.
const DefaultTTL = 7 * 24 * time.Hour

const keyPrefix = "session:%s"

// Store issues, resolves, and destroys session tokens.
type Store interface {
	Create(ctx context.Context, userID uint) (string, error)
	Get(ctx context.Context, token string) (uint, bool, error)
	Destroy(ctx context.Context, token string) error
}

// NewStore returns a Redis-backed store when a client is available,
// otherwise an in-process store with the same expiry behavior.
func NewStore(rdb *redis.Client, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if rdb != nil {
		return &redisStore{rdb: rdb, ttl: ttl}
	}
	return &memoryStore{ttl: ttl, sessions: make(map[string]memorySession)}
}

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func (s *redisStore) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.New().String()
	key := fmt.Sprintf(keyPrefix, token)
	if err := s.rdb.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

func (s *redisStore) Get(ctx context.Context, token string) (uint, bool, error) {
	if token == "" {
		return 0, false, nil
	}
	key := fmt.Sprintf(keyPrefix, token)
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read session: %w", err)
	}
	userID, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		// Corrupt record; treat as anonymous and drop it.
		s.rdb.Del(ctx, key)
		return 0, false, nil
	}
	return uint(userID), true, nil
}

func (s *redisStore) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.rdb.Del(ctx, fmt.Sprintf(keyPrefix, token)).Err()
}

type memorySession struct {
	userID    uint
	expiresAt time.Time
}

// memoryStore keeps sessions in-process. Used when Redis is unavailable and
// in tests; sessions do not survive restarts.
type memoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memorySession
}

func (s *memoryStore) Create(_ context.Context, userID uint) (string, error) {
	token := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memorySession{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	return token, nil
}

func (s *memoryStore) Get(_ context.Context, token string) (uint, bool, error) {
	if token == "" {
		return 0, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return 0, false, nil
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, token)
		return 0, false, nil
	}
	return sess.userID, true, nil
}

func (s *memoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
