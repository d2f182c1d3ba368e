// internal/pkg/tokenstore/store.go
package tokenstore

import (
	"context"
	"sync"

	"gracehub-service/internal/domain/admin"

	"go.uber.org/zap"
)

// DurableStore is the optional persistence tier. Implementations may fail
// freely; the Store swallows every error and keeps the in-memory tier
// authoritative for the process lifetime.
type DurableStore interface {
	Load(ctx context.Context) (admin.TokenPair, error)
	Save(ctx context.Context, pair admin.TokenPair) error
	Delete(ctx context.Context) error
}

// Store holds the current token pair. The in-memory tier is always
// authoritative; the durable tier is best effort.
type Store struct {
	mu      sync.RWMutex
	pair    admin.TokenPair
	durable DurableStore
	logger  *zap.Logger
}

func New(durable DurableStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{durable: durable, logger: logger}
}

// Load primes the in-memory tier from the durable tier, if one is present.
// A pair missing either half is corrupt state and loads as absent.
func (s *Store) Load(ctx context.Context) {
	if s.durable == nil {
		return
	}

	pair, err := s.durable.Load(ctx)
	if err != nil {
		s.logger.Debug("durable token load failed", zap.Error(err))
		return
	}
	if !pair.Valid() {
		return
	}

	s.mu.Lock()
	s.pair = pair
	s.mu.Unlock()
}

// Pair returns the current token pair. Both halves or neither.
func (s *Store) Pair() admin.TokenPair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair
}

// AccessToken returns the current access token, or "" when no session.
func (s *Store) AccessToken() string {
	return s.Pair().AccessToken
}

// RefreshToken returns the current refresh token, or "" when no session.
func (s *Store) RefreshToken() string {
	return s.Pair().RefreshToken
}

// Set replaces the pair atomically. A pair missing either half is rejected
// and treated as a clear, preserving the both-or-none invariant.
func (s *Store) Set(ctx context.Context, pair admin.TokenPair) {
	if !pair.Valid() {
		s.Clear(ctx)
		return
	}

	s.mu.Lock()
	s.pair = pair
	s.mu.Unlock()

	if s.durable != nil {
		if err := s.durable.Save(ctx, pair); err != nil {
			s.logger.Debug("durable token save failed", zap.Error(err))
		}
	}
}

// Clear purges both tiers.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.pair = admin.TokenPair{}
	s.mu.Unlock()

	if s.durable != nil {
		if err := s.durable.Delete(ctx); err != nil {
			s.logger.Debug("durable token delete failed", zap.Error(err))
		}
	}
}
