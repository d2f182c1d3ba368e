// internal/repository/memory/attendance_repo.go
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"gracehub-service/internal/domain/attendance"
	xerrors "gracehub-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
)

// AttendanceRepository holds service head counts in memory.
type AttendanceRepository struct {
	mu      sync.RWMutex
	records map[string]*attendance.Record
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{records: make(map[string]*attendance.Record)}
}

func (r *AttendanceRepository) Create(ctx context.Context, rec *attendance.Record) (*attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		rec.ID = ulid.Make().String()
	}
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	cp := *rec
	r.records[rec.ID] = &cp
	return rec, nil
}

func (r *AttendanceRepository) Get(ctx context.Context, id string) (*attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

// List returns records newest service date first.
func (r *AttendanceRepository) List(ctx context.Context) ([]*attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*attendance.Record, 0, len(r.records))
	for _, rec := range r.records {
		cp := *rec
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ServiceDate > out[j].ServiceDate })
	return out, nil
}

func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.records, id)
	return nil
}
