// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gracehub-service/internal/domain/admin"
	xerrors "gracehub-service/internal/pkg/errors"
	"gracehub-service/internal/pkg/jwt"
	"gracehub-service/internal/repository/memory"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Service owns the whole credential lifecycle: login, token verification,
// refresh rotation, logout, and the profile/password operations that touch
// credentials. Tokens are real signed JWTs even though the directory behind
// them is mock data.
type Service struct {
	admins   *memory.AdminRepository
	tokens   *jwt.Manager
	registry *refreshRegistry
	logger   *zap.Logger
}

func NewService(admins *memory.AdminRepository, tokens *jwt.Manager, cache *redis.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		admins:   admins,
		tokens:   tokens,
		registry: newRefreshRegistry(cache, tokens.Generator.RefreshTTL, logger),
		logger:   logger,
	}
}

// Login verifies credentials and issues a fresh token pair. Invalid email
// and invalid password both come back as ErrInvalidCredentials so callers
// cannot probe which emails exist.
func (s *Service) Login(ctx context.Context, email, password string) (*admin.AuthGrant, error) {
	profile, err := s.admins.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.admins.VerifyPassword(ctx, profile.ID, password); err != nil {
		return nil, xerrors.ErrInvalidCredentials
	}

	if !profile.IsActive {
		return nil, xerrors.ErrAccountInactive
	}

	grant, err := s.issueGrant(ctx, profile)
	if err != nil {
		return nil, err
	}

	s.admins.TouchLastLogin(ctx, profile.ID)
	s.logger.Info("admin logged in", zap.String("admin_id", profile.ID), zap.String("role", string(profile.Role)))

	return grant, nil
}

// VerifyToken validates an access token and returns the current profile of
// its subject. The profile comes from the directory, not the claims, so a
// permission change takes effect on the next verification.
func (s *Service) VerifyToken(ctx context.Context, accessToken string) (*admin.Profile, error) {
	claims, err := s.tokens.Verifier.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	profile, err := s.admins.FindByID(ctx, claims.AdminID)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}
	if !profile.IsActive {
		return nil, xerrors.ErrAccountInactive
	}
	return profile, nil
}

// RefreshToken rotates a refresh token: the old one is revoked and a whole
// new pair is issued. A refresh token can therefore be used exactly once.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*admin.AuthGrant, error) {
	claims, err := s.tokens.Verifier.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}

	if !s.registry.live(ctx, claims.ID) {
		s.logger.Warn("refresh with revoked token", zap.String("admin_id", claims.AdminID))
		return nil, xerrors.ErrTokenRevoked
	}

	profile, err := s.admins.FindByID(ctx, claims.AdminID)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}
	if !profile.IsActive {
		return nil, xerrors.ErrAccountInactive
	}

	s.registry.revoke(ctx, claims.ID)
	return s.issueGrant(ctx, profile)
}

// Logout revokes the refresh token. The access token stays valid until it
// expires; clients are expected to discard it.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := s.tokens.Verifier.VerifyRefreshToken(refreshToken)
	if err != nil {
		// Already expired or garbage; nothing left to revoke.
		return nil
	}
	s.registry.revoke(ctx, claims.ID)
	s.logger.Info("admin logged out", zap.String("admin_id", claims.AdminID))
	return nil
}

// UpdateProfile applies the edit and returns the stored copy.
func (s *Service) UpdateProfile(ctx context.Context, accessToken string, req *admin.UpdateProfileRequest) (*admin.Profile, error) {
	profile, err := s.VerifyToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return s.UpdateProfileByID(ctx, profile.ID, req)
}

// UpdateProfileByID is the handler-facing variant where the identity was
// already established by middleware.
func (s *Service) UpdateProfileByID(ctx context.Context, adminID string, req *admin.UpdateProfileRequest) (*admin.Profile, error) {
	return s.admins.UpdateProfile(ctx, adminID, req)
}

// ChangePassword verifies the current password, swaps the hash, and revokes
// every outstanding refresh token for the admin. All sessions must log in
// again with the new password.
func (s *Service) ChangePassword(ctx context.Context, accessToken string, req *admin.ChangePasswordRequest) error {
	profile, err := s.VerifyToken(ctx, accessToken)
	if err != nil {
		return err
	}
	return s.ChangePasswordByID(ctx, profile.ID, req)
}

func (s *Service) ChangePasswordByID(ctx context.Context, adminID string, req *admin.ChangePasswordRequest) error {
	if err := s.admins.VerifyPassword(ctx, adminID, req.CurrentPassword); err != nil {
		return xerrors.ErrInvalidCredentials
	}
	if err := s.admins.UpdatePassword(ctx, adminID, req.NewPassword); err != nil {
		return err
	}

	s.registry.revokeAll(ctx, adminID)
	s.logger.Info("admin password changed", zap.String("admin_id", adminID))
	return nil
}

func (s *Service) issueGrant(ctx context.Context, profile *admin.Profile) (*admin.AuthGrant, error) {
	access, _, err := s.tokens.Generator.GenerateAccessToken(profile.ID, string(profile.Role), profile.Permissions)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to sign access token")
	}

	refresh, jti, err := s.tokens.Generator.GenerateRefreshToken(profile.ID)
	if err != nil {
		return nil, xerrors.Wrap(err, "failed to sign refresh token")
	}
	s.registry.add(ctx, jti, profile.ID)

	return &admin.AuthGrant{
		Admin:        profile,
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.tokens.Generator.AccessTTL / time.Second),
	}, nil
}
