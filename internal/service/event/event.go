// internal/service/event/event.go
package event

import (
	"context"

	"gracehub-service/internal/domain/event"
	rt "gracehub-service/internal/domain/realtime"
	xerrors "gracehub-service/internal/pkg/errors"
	"gracehub-service/internal/realtime"
	"gracehub-service/internal/repository/memory"

	"go.uber.org/zap"
)

// Service manages the event calendar.
type Service struct {
	repo   *memory.EventRepository
	hub    *realtime.Hub
	logger *zap.Logger
}

func NewService(repo *memory.EventRepository, hub *realtime.Hub, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, hub: hub, logger: logger}
}

func (s *Service) Create(ctx context.Context, createdBy string, req *event.CreateRequest) (*event.Event, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "event must end after it starts")
	}

	e := &event.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CreatedBy:   createdBy,
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, err
	}

	s.logger.Info("event created", zap.String("event_id", created.ID), zap.String("title", created.Title))
	s.hub.Broadcast(rt.EventEventCreated, map[string]interface{}{
		"id":    created.ID,
		"title": created.Title,
	})
	s.hub.BroadcastRefresh(rt.EventRefreshEvents, rt.EventRefreshDashboard)

	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*event.Event, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*event.Event, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, req *event.UpdateRequest) (*event.Event, error) {
	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastRefresh(rt.EventRefreshEvents, rt.EventRefreshDashboard)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.BroadcastRefresh(rt.EventRefreshEvents, rt.EventRefreshDashboard)
	return nil
}
