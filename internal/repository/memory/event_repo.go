// internal/repository/memory/event_repo.go
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"gracehub-service/internal/domain/event"
	xerrors "gracehub-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
)

// EventRepository is the in-memory event calendar.
type EventRepository struct {
	mu     sync.RWMutex
	events map[string]*event.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]*event.Event)}
}

func (r *EventRepository) Create(ctx context.Context, e *event.Event) (*event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		e.ID = ulid.Make().String()
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	cp := *e
	r.events[e.ID] = &cp
	return e, nil
}

func (r *EventRepository) Get(ctx context.Context, id string) (*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

// List returns events ordered by start time, soonest first.
func (r *EventRepository) List(ctx context.Context) ([]*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*event.Event, 0, len(r.events))
	for _, e := range r.events {
		cp := *e
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *EventRepository) Update(ctx context.Context, id string, req *event.UpdateRequest) (*event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.events[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}

	if req.Title != "" {
		e.Title = req.Title
	}
	if req.Description != "" {
		e.Description = req.Description
	}
	if req.Location != "" {
		e.Location = req.Location
	}
	if req.Category != "" {
		e.Category = req.Category
	}
	if req.StartTime != nil {
		e.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		e.EndTime = *req.EndTime
	}
	e.UpdatedAt = time.Now()

	cp := *e
	return &cp, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.events, id)
	return nil
}
