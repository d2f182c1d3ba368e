// internal/service/auth/revocation.go
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const refreshKeyPrefix = "gracehub:refresh:"

// refreshRegistry tracks which refresh-token JTIs are still live. The
// in-memory set is authoritative; redis mirrors it best effort so a
// restarted peer can honor revocations.
type refreshRegistry struct {
	mu     sync.Mutex
	byJTI  map[string]string   // jti -> admin ID
	byUser map[string][]string // admin ID -> jtis

	cache  *redis.Client // optional
	ttl    time.Duration
	logger *zap.Logger
}

func newRefreshRegistry(cache *redis.Client, ttl time.Duration, logger *zap.Logger) *refreshRegistry {
	return &refreshRegistry{
		byJTI:  make(map[string]string),
		byUser: make(map[string][]string),
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *refreshRegistry) add(ctx context.Context, jti, adminID string) {
	r.mu.Lock()
	r.byJTI[jti] = adminID
	r.byUser[adminID] = append(r.byUser[adminID], jti)
	r.mu.Unlock()

	if r.cache != nil {
		if err := r.cache.Set(ctx, refreshKeyPrefix+jti, adminID, r.ttl).Err(); err != nil {
			r.logger.Debug("refresh registry cache write failed", zap.Error(err))
		}
	}
}

// live reports whether the JTI is still valid for refreshing.
func (r *refreshRegistry) live(ctx context.Context, jti string) bool {
	r.mu.Lock()
	_, ok := r.byJTI[jti]
	r.mu.Unlock()
	if ok {
		return true
	}

	if r.cache != nil {
		if err := r.cache.Get(ctx, refreshKeyPrefix+jti).Err(); err == nil {
			return true
		}
	}
	return false
}

func (r *refreshRegistry) revoke(ctx context.Context, jti string) {
	r.mu.Lock()
	adminID, ok := r.byJTI[jti]
	if ok {
		delete(r.byJTI, jti)
		jtis := r.byUser[adminID]
		for i, j := range jtis {
			if j == jti {
				r.byUser[adminID] = append(jtis[:i], jtis[i+1:]...)
				break
			}
		}
	}
	r.mu.Unlock()

	if r.cache != nil {
		if err := r.cache.Del(ctx, refreshKeyPrefix+jti).Err(); err != nil {
			r.logger.Debug("refresh registry cache delete failed", zap.Error(err))
		}
	}
}

// revokeAll drops every live refresh token for one admin.
func (r *refreshRegistry) revokeAll(ctx context.Context, adminID string) {
	r.mu.Lock()
	jtis := r.byUser[adminID]
	delete(r.byUser, adminID)
	for _, jti := range jtis {
		delete(r.byJTI, jti)
	}
	r.mu.Unlock()

	if r.cache != nil {
		for _, jti := range jtis {
			if err := r.cache.Del(ctx, refreshKeyPrefix+jti).Err(); err != nil {
				r.logger.Debug("refresh registry cache delete failed", zap.Error(err))
			}
		}
	}
}
