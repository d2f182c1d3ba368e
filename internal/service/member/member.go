// internal/service/member/member.go
package member

import (
	"context"

	"gracehub-service/internal/domain/member"
	rt "gracehub-service/internal/domain/realtime"
	"gracehub-service/internal/realtime"
	"gracehub-service/internal/repository/memory"

	"go.uber.org/zap"
)

// Service manages the member register. Every mutation pushes a realtime
// event plus the staleness signals for the views that render members.
type Service struct {
	repo   *memory.MemberRepository
	hub    *realtime.Hub
	logger *zap.Logger
}

func NewService(repo *memory.MemberRepository, hub *realtime.Hub, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, hub: hub, logger: logger}
}

func (s *Service) Create(ctx context.Context, req *member.CreateRequest) (*member.Member, error) {
	m := &member.Member{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
		Department:  req.Department,
	}

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, err
	}

	s.logger.Info("member created", zap.String("member_id", created.ID))
	s.hub.Broadcast(rt.EventMemberAdded, map[string]interface{}{
		"id":   created.ID,
		"name": created.FullName(),
	})
	s.hub.BroadcastRefresh(rt.EventRefreshMembers, rt.EventRefreshDashboard)

	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*member.Member, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter member.ListFilter) ([]*member.Member, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id string, req *member.UpdateRequest) (*member.Member, error) {
	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastRefresh(rt.EventRefreshMembers, rt.EventRefreshDashboard)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.BroadcastRefresh(rt.EventRefreshMembers, rt.EventRefreshDashboard)
	return nil
}
