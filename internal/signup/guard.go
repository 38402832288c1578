package signup

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Guard makes the Idle -> Submitting transition exclusive per key.
type Guard interface {
	// Acquire returns ok=false when key is already submitting. The token
	// identifies this holder to Release.
	Acquire(key string) (token string, ok bool)
	// Release drops the lock on key only if it is still held with token.
	Release(key, token string)
	Held(key string) bool
}

// CacheGuard is a Guard whose locks expire after ttl, so a request that never
// returns cannot lock a session forever. The ttl must outlast the registrar
// timeout.
type CacheGuard struct {
	mu    sync.Mutex
	locks *cache.Cache
}

func NewCacheGuard(ttl time.Duration) *CacheGuard {
	return &CacheGuard{
		locks: cache.New(ttl, 2*ttl),
	}
}

func (g *CacheGuard) Acquire(key string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	token := uuid.NewString()
	if err := g.locks.Add(key, token, cache.DefaultExpiration); err != nil {
		return "", false
	}
	return token, true
}

func (g *CacheGuard) Release(key, token string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// An expired lock may since have been taken by another submission.
	if held, ok := g.locks.Get(key); ok && held == token {
		g.locks.Delete(key)
	}
}

func (g *CacheGuard) Held(key string) bool {
	_, ok := g.locks.Get(key)
	return ok
}
