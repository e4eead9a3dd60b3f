package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cse-sg/absence-service/internal/domain"
)

// Fixed key under which org-code acceptance is persisted, scoped per client.
const codeKeyPrefix = "cse_access_code"

const sessionKeyPrefix = "login_session"

// ErrSessionNotFound is returned for unknown or expired login sessions.
var ErrSessionNotFound = errors.New("session: not found")

// SessionStore persists staged login progress.
type SessionStore interface {
	Save(ctx context.Context, s *LoginSession) error
	Get(ctx context.Context, id string) (*LoginSession, error)
	Delete(ctx context.Context, id string) error
}

// CodeStore durably records org-code acceptance so subsequent launches by
// the same client skip the gate.
type CodeStore interface {
	MarkAccepted(ctx context.Context, clientID string) error
	Accepted(ctx context.Context, clientID string) (bool, error)
}

// --- Redis-backed implementations ---

// RedisSessionStore keeps login sessions in Redis with a TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore builds the store.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *LoginSession) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+":"+sess.ID, payload, s.ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*LoginSession, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+":"+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	var sess LoginSession
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+":"+id).Err()
}

// RedisCodeStore persists org-code acceptance without expiry.
type RedisCodeStore struct {
	client *redis.Client
}

// NewRedisCodeStore builds the store.
func NewRedisCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{client: client}
}

func (s *RedisCodeStore) MarkAccepted(ctx context.Context, clientID string) error {
	return s.client.Set(ctx, codeKeyPrefix+":"+clientID, domain.OrgAccessCode, 0).Err()
}

func (s *RedisCodeStore) Accepted(ctx context.Context, clientID string) (bool, error) {
	val, err := s.client.Get(ctx, codeKeyPrefix+":"+clientID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return val == domain.OrgAccessCode, nil
}

// --- In-memory implementations (tests, redis-free local runs) ---

// MemorySessionStore is a map-backed SessionStore.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]LoginSession
}

// NewMemorySessionStore builds the store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]LoginSession)}
}

func (s *MemorySessionStore) Save(_ context.Context, sess *LoginSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*LoginSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// MemoryCodeStore is a map-backed CodeStore.
type MemoryCodeStore struct {
	mu       sync.RWMutex
	accepted map[string]bool
}

// NewMemoryCodeStore builds the store.
func NewMemoryCodeStore() *MemoryCodeStore {
	return &MemoryCodeStore{accepted: make(map[string]bool)}
}

func (s *MemoryCodeStore) MarkAccepted(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accepted[clientID] = true
	return nil
}

func (s *MemoryCodeStore) Accepted(_ context.Context, clientID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accepted[clientID], nil
}
