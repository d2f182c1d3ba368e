// internal/repository/memory/member_repo.go
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gracehub-service/internal/domain/member"
	xerrors "gracehub-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
)

// MemberRepository is the in-memory member register.
type MemberRepository struct {
	mu      sync.RWMutex
	members map[string]*member.Member
}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{members: make(map[string]*member.Member)}
}

func (r *MemberRepository) Create(ctx context.Context, m *member.Member) (*member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		m.ID = ulid.Make().String()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.MembershipDate.IsZero() {
		m.MembershipDate = now
	}
	if m.Status == "" {
		m.Status = member.StatusActive
	}

	cp := *m
	r.members[m.ID] = &cp
	return m, nil
}

func (r *MemberRepository) Get(ctx context.Context, id string) (*member.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

// List returns members matching the filter, newest first.
func (r *MemberRepository) List(ctx context.Context, filter member.ListFilter) ([]*member.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*member.Member, 0, len(r.members))
	for _, m := range r.members {
		if filter.Department != "" && m.Department != filter.Department {
			continue
		}
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			hay := strings.ToLower(m.FullName() + " " + m.Email + " " + m.Phone)
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		cp := *m
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *MemberRepository) Update(ctx context.Context, id string, req *member.UpdateRequest) (*member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}

	if req.FirstName != "" {
		m.FirstName = req.FirstName
	}
	if req.LastName != "" {
		m.LastName = req.LastName
	}
	if req.Email != "" {
		m.Email = req.Email
	}
	if req.Phone != "" {
		m.Phone = req.Phone
	}
	if req.Address != "" {
		m.Address = req.Address
	}
	if req.Department != "" {
		m.Department = req.Department
	}
	if req.Status != "" {
		m.Status = req.Status
	}
	m.UpdatedAt = time.Now()

	cp := *m
	return &cp, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *MemberRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}
