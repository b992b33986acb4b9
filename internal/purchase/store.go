package purchase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"plugevents/internal/shared/constants"
	"plugevents/pkg/cache"
)

// SessionStore persists sessions and the reference index used by gateway callbacks.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	FindByReference(ctx context.Context, reference string) (string, error)
}

// ================== MEMORY ==================

type memoryStore struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	references map[string]string
}

func NewMemoryStore() SessionStore {
	return &memoryStore{
		sessions:   make(map[string]*Session),
		references: make(map[string]string),
	}
}

func (m *memoryStore) Save(_ context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.ID] = session.clone()
	for _, ref := range session.References() {
		m.references[ref] = session.ID
	}
	return nil
}

func (m *memoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s.clone(), nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	for _, ref := range s.References() {
		delete(m.references, ref)
	}
	delete(m.sessions, id)
	return nil
}

func (m *memoryStore) FindByReference(_ context.Context, reference string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.references[reference]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrAttemptNotFound, reference)
	}
	return id, nil
}

// ================== REDIS ==================

type redisStore struct {
	cache cache.Service
	ttl   time.Duration
}

// NewRedisStore keeps sessions as JSON documents that expire after ttl of inactivity.
func NewRedisStore(cacheService cache.Service, ttl time.Duration) SessionStore {
	return &redisStore{cache: cacheService, ttl: ttl}
}

func (r *redisStore) Save(ctx context.Context, session *Session) error {
	if err := r.cache.Set(ctx, constants.BuildSessionKey(session.ID), session, r.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	for _, ref := range session.References() {
		if err := r.cache.Set(ctx, constants.BuildSessionReferenceKey(ref), session.ID, r.ttl); err != nil {
			return fmt.Errorf("index reference %s: %w", ref, err)
		}
	}
	return nil
}

func (r *redisStore) Get(ctx context.Context, id string) (*Session, error) {
	var session Session
	if err := r.cache.Get(ctx, constants.BuildSessionKey(id), &session); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &session, nil
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	session, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	keys := []string{constants.BuildSessionKey(id)}
	for _, ref := range session.References() {
		keys = append(keys, constants.BuildSessionReferenceKey(ref))
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *redisStore) FindByReference(ctx context.Context, reference string) (string, error) {
	var id string
	if err := r.cache.Get(ctx, constants.BuildSessionReferenceKey(reference), &id); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return "", fmt.Errorf("%w: %s", ErrAttemptNotFound, reference)
		}
		return "", fmt.Errorf("find reference: %w", err)
	}
	return id, nil
}
