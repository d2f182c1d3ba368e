// internal/app/server.go
package app

import (
	"context"
	"net/http"
	"time"

	"gracehub-service/internal/config"
	"gracehub-service/internal/db"
	"gracehub-service/internal/domain/admin"
	"gracehub-service/internal/pkg/jwt"
	"gracehub-service/internal/realtime"
	"gracehub-service/internal/repository/memory"
	attendancesvc "gracehub-service/internal/service/attendance"
	authsvc "gracehub-service/internal/service/auth"
	celebrationsvc "gracehub-service/internal/service/celebration"
	eventsvc "gracehub-service/internal/service/event"
	membersvc "gracehub-service/internal/service/member"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Server wires every component and owns the HTTP listener lifecycle.
type Server struct {
	cfg    config.AppConfig
	logger *zap.Logger

	httpServer *http.Server
	hub        *realtime.Hub
	hubCancel  context.CancelFunc
	cache      *redis.Client

	Auth         *authsvc.Service
	Members      *membersvc.Service
	Events       *eventsvc.Service
	Attendance   *attendancesvc.Service
	Celebrations *celebrationsvc.Service
}

func NewServer(cfg config.AppConfig, logger *zap.Logger) (*Server, error) {
	tokens, err := jwt.LoadAndBuild(cfg.JWT)
	if err != nil {
		return nil, err
	}

	// Redis is optional: no address or no connection means no durable tier
	// and no shared revocation set, nothing else.
	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache, err = db.NewRedisClient(db.RedisConfig{Addr: cfg.RedisAddr, Password: cfg.RedisPass})
		if err != nil {
			logger.Warn("redis unavailable, continuing without it", zap.Error(err))
			cache = nil
		}
	}

	adminRepo := memory.NewAdminRepository()
	seedAdmins(adminRepo, logger)

	hub := realtime.NewHub(tokens.Verifier, logger)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		hub:       hub,
		hubCancel: hubCancel,
		cache:     cache,

		Auth:         authsvc.NewService(adminRepo, tokens, cache, logger),
		Members:      membersvc.NewService(memory.NewMemberRepository(), hub, logger),
		Events:       eventsvc.NewService(memory.NewEventRepository(), hub, logger),
		Attendance:   attendancesvc.NewService(memory.NewAttendanceRepository(), hub, logger),
		Celebrations: celebrationsvc.NewService(memory.NewCelebrationRepository(), hub, logger),
	}

	s.httpServer = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      s.buildRouter(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Run blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains HTTP, stops the hub, and closes redis.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.hubCancel()
	if s.cache != nil {
		s.cache.Close()
	}
	return err
}

// seedAdmins installs the fixture directory. This stands in for a real
// user store; the credentials are the well-known demo pair.
func seedAdmins(repo *memory.AdminRepository, logger *zap.Logger) {
	fixtures := []struct {
		profile  admin.Profile
		password string
	}{
		{
			profile: admin.Profile{
				Name:        "Super Administrator",
				Email:       "admin@rccglcc.org",
				Position:    "System Administrator",
				Role:        admin.RoleSuperAdmin,
				Permissions: []string{admin.PermissionAll},
				IsActive:    true,
			},
			password: "admin123",
		},
		{
			profile: admin.Profile{
				Name:        "Media Admin",
				Email:       "media@rccglcc.org",
				Position:    "Media Team Lead",
				Role:        admin.RoleAdmin,
				Permissions: []string{"events", "celebrations"},
				IsActive:    true,
			},
			password: "media123",
		},
	}

	for _, f := range fixtures {
		if _, err := repo.Seed(f.profile, f.password); err != nil {
			logger.Error("failed to seed admin", zap.String("email", f.profile.Email), zap.Error(err))
		}
	}
}
