// internal/service/attendance/attendance.go
package attendance

import (
	"context"

	"gracehub-service/internal/domain/attendance"
	rt "gracehub-service/internal/domain/realtime"
	"gracehub-service/internal/realtime"
	"gracehub-service/internal/repository/memory"

	"go.uber.org/zap"
)

// Service manages service head counts.
type Service struct {
	repo   *memory.AttendanceRepository
	hub    *realtime.Hub
	logger *zap.Logger
}

func NewService(repo *memory.AttendanceRepository, hub *realtime.Hub, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, hub: hub, logger: logger}
}

func (s *Service) Record(ctx context.Context, recordedBy string, req *attendance.RecordRequest) (*attendance.Record, error) {
	rec := &attendance.Record{
		ServiceDate: req.ServiceDate,
		ServiceType: req.ServiceType,
		Adults:      req.Adults,
		Children:    req.Children,
		Visitors:    req.Visitors,
		Notes:       req.Notes,
		RecordedBy:  recordedBy,
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, err
	}

	s.logger.Info("attendance recorded",
		zap.String("record_id", created.ID),
		zap.String("service_date", created.ServiceDate),
		zap.Int("total", created.Total()),
	)
	s.hub.Broadcast(rt.EventAttendanceRecorded, map[string]interface{}{
		"id":           created.ID,
		"service_date": created.ServiceDate,
		"total":        created.Total(),
	})
	s.hub.BroadcastRefresh(rt.EventRefreshAttendance, rt.EventRefreshDashboard)

	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*attendance.Record, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*attendance.Record, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.BroadcastRefresh(rt.EventRefreshAttendance, rt.EventRefreshDashboard)
	return nil
}
