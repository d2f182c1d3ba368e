// internal/service/celebration/celebration.go
package celebration

import (
	"context"

	"gracehub-service/internal/domain/celebration"
	rt "gracehub-service/internal/domain/realtime"
	"gracehub-service/internal/realtime"
	"gracehub-service/internal/repository/memory"

	"go.uber.org/zap"
)

// Service handles public celebration submissions and their moderation.
type Service struct {
	repo   *memory.CelebrationRepository
	hub    *realtime.Hub
	logger *zap.Logger
}

func NewService(repo *memory.CelebrationRepository, hub *realtime.Hub, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, hub: hub, logger: logger}
}

// Submit accepts a public form submission. This is the one mutation that
// originates outside the admin area, so admins hear about it in realtime.
func (s *Service) Submit(ctx context.Context, req *celebration.SubmitRequest) (*celebration.Celebration, error) {
	c := &celebration.Celebration{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Kind:    req.Kind,
		Date:    req.Date,
		Message: req.Message,
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	s.logger.Info("celebration submitted",
		zap.String("celebration_id", created.ID),
		zap.String("kind", string(created.Kind)),
	)
	s.hub.Broadcast(rt.EventCelebrationSubmitted, map[string]interface{}{
		"id":   created.ID,
		"name": created.Name,
		"kind": string(created.Kind),
	})
	s.hub.BroadcastRefresh(rt.EventRefreshCelebrations, rt.EventRefreshDashboard)

	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*celebration.Celebration, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, status celebration.Status) ([]*celebration.Celebration, error) {
	return s.repo.List(ctx, status)
}

// Review records an approve/reject decision by the named admin.
func (s *Service) Review(ctx context.Context, id string, reviewedBy string, req *celebration.ReviewRequest) (*celebration.Celebration, error) {
	reviewed, err := s.repo.Review(ctx, id, req.Status, reviewedBy)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastRefresh(rt.EventRefreshCelebrations, rt.EventRefreshDashboard)
	return reviewed, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.BroadcastRefresh(rt.EventRefreshCelebrations, rt.EventRefreshDashboard)
	return nil
}
