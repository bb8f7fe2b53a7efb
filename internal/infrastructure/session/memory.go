package session

import (
	"context"
	"errors"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory keeps session state in process. It backs single-instance
// deployments without Redis and tests.
type Memory struct {
	mu    sync.Mutex
	cache *gocache.Cache
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{cache: gocache.New(10*time.Minute, 20*time.Minute)}
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	m.cache.Set(revokedKey(tokenID), struct{}{}, ttl)
	return nil
}

func (m *Memory) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, found := m.cache.Get(revokedKey(tokenID))
	return found, nil
}

func (m *Memory) SaveState(ctx context.Context, state, provider string, ttl time.Duration) error {
	if err := m.cache.Add(stateKey(state), provider, ttl); err != nil {
		return errors.New("oauth state collision")
	}
	return nil
}

func (m *Memory) ConsumeState(ctx context.Context, state string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, found := m.cache.Get(stateKey(state))
	if !found {
		return "", false, nil
	}
	m.cache.Delete(stateKey(state))
	return v.(string), true, nil
}
