package auth

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/frontdesk/internal/utils"
)

// MemoryStore keeps sessions in process.  It is used when redis is not
// reachable and in tests; sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

type memoryEntry struct {
	session Session
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]memoryEntry{}, now: time.Now}
}

func (m *MemoryStore) Save(_ context.Context, s Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[utils.HashToken(s.ID)] = memoryEntry{session: s, expires: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := utils.HashToken(id)
	e, ok := m.sessions[key]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if !m.now().Before(e.expires) {
		delete(m.sessions, key)
		return Session{}, ErrSessionNotFound
	}
	return e.session, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, utils.HashToken(id))
	return nil
}

// RedisStore keeps sessions in redis as JSON with a TTL, so every server
// instance sees the same sign-ins.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "sess"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (r *RedisStore) key(id string) string { return r.prefix + ":" + utils.HashToken(id) }

func (r *RedisStore) Save(ctx context.Context, s Session, ttl time.Duration) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.SetEx(ctx, r.key(s.ID), b, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	b, err := r.rdb.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, r.key(id)).Err()
}
