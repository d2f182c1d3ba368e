// internal/repository/memory/celebration_repo.go
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"gracehub-service/internal/domain/celebration"
	xerrors "gracehub-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
)

// CelebrationRepository holds public celebration submissions in memory.
type CelebrationRepository struct {
	mu    sync.RWMutex
	items map[string]*celebration.Celebration
}

func NewCelebrationRepository() *CelebrationRepository {
	return &CelebrationRepository{items: make(map[string]*celebration.Celebration)}
}

func (r *CelebrationRepository) Create(ctx context.Context, c *celebration.Celebration) (*celebration.Celebration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = ulid.Make().String()
	}
	c.SubmittedAt = time.Now()
	if c.Status == "" {
		c.Status = celebration.StatusPending
	}

	cp := *c
	r.items[c.ID] = &cp
	return c, nil
}

func (r *CelebrationRepository) Get(ctx context.Context, id string) (*celebration.Celebration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// List returns submissions newest first, optionally filtered by status.
func (r *CelebrationRepository) List(ctx context.Context, status celebration.Status) ([]*celebration.Celebration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*celebration.Celebration, 0, len(r.items))
	for _, c := range r.items {
		if status != "" && c.Status != status {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

// Review sets the moderation outcome.
func (r *CelebrationRepository) Review(ctx context.Context, id string, status celebration.Status, reviewedBy string) (*celebration.Celebration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}

	c.Status = status
	c.ReviewedBy = reviewedBy
	c.ReviewedAt = time.Now()

	cp := *c
	return &cp, nil
}

func (r *CelebrationRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
