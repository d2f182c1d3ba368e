// internal/service/auth/auth_test.go
package auth_test

import (
	"context"
	"testing"
	"time"

	"gracehub-service/internal/domain/admin"
	xerrors "gracehub-service/internal/pkg/errors"
	"gracehub-service/internal/pkg/jwt"
	"gracehub-service/internal/repository/memory"
	"gracehub-service/internal/service/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*auth.Service, *memory.AdminRepository) {
	t.Helper()

	tokens, err := jwt.LoadAndBuild(jwt.Config{
		Issuer:     "gracehub",
		Audience:   "gracehub-admins",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
		KID:        "test-key",
	})
	require.NoError(t, err)

	repo := memory.NewAdminRepository()
	_, err = repo.Seed(admin.Profile{
		Name:        "Super Administrator",
		Email:       "admin@rccglcc.org",
		Role:        admin.RoleSuperAdmin,
		Permissions: []string{admin.PermissionAll},
		IsActive:    true,
	}, "admin123")
	require.NoError(t, err)

	return auth.NewService(repo, tokens, nil, nil), repo
}

func TestLoginWithFixtureCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	grant, err := svc.Login(ctx, "admin@rccglcc.org", "admin123")
	require.NoError(t, err)

	require.NotNil(t, grant.Admin)
	assert.Equal(t, admin.RoleSuperAdmin, grant.Admin.Role)
	assert.True(t, grant.Pair().Valid())
	assert.Equal(t, "Bearer", grant.TokenType)
	assert.Equal(t, 60, grant.ExpiresIn)

	// The issued access token resolves back to the same admin.
	profile, err := svc.VerifyToken(ctx, grant.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, grant.Admin.ID, profile.ID)
	assert.Equal(t, "admin@rccglcc.org", profile.Email)
	assert.False(t, profile.LastLogin.IsZero())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "admin@rccglcc.org", "nope")
	assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)

	// Unknown email yields the same error; no account probing.
	_, err = svc.Login(ctx, "nobody@rccglcc.org", "admin123")
	assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc, repo := newAuthService(t)
	ctx := context.Background()

	_, err := repo.Seed(admin.Profile{
		Name:     "Former Admin",
		Email:    "former@rccglcc.org",
		Role:     admin.RoleAdmin,
		IsActive: false,
	}, "former123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "former@rccglcc.org", "former123")
	assert.ErrorIs(t, err, xerrors.ErrAccountInactive)
}

func TestRefreshRotatesAndRevokesOldToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	grant, err := svc.Login(ctx, "admin@rccglcc.org", "admin123")
	require.NoError(t, err)

	rotated, err := svc.RefreshToken(ctx, grant.RefreshToken)
	require.NoError(t, err)
	assert.True(t, rotated.Pair().Valid())
	assert.NotEqual(t, grant.RefreshToken, rotated.RefreshToken)

	// Single use: the consumed refresh token is dead.
	_, err = svc.RefreshToken(ctx, grant.RefreshToken)
	assert.ErrorIs(t, err, xerrors.ErrTokenRevoked)

	// The rotated one still works.
	_, err = svc.RefreshToken(ctx, rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	grant, err := svc.Login(ctx, "admin@rccglcc.org", "admin123")
	require.NoError(t, err)

	// Access and refresh tokens are not interchangeable.
	_, err = svc.RefreshToken(ctx, grant.AccessToken)
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	grant, err := svc.Login(ctx, "admin@rccglcc.org", "admin123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, grant.RefreshToken))

	_, err = svc.RefreshToken(ctx, grant.RefreshToken)
	assert.ErrorIs(t, err, xerrors.ErrTokenRevoked)

	// Logout is idempotent and tolerates garbage.
	assert.NoError(t, svc.Logout(ctx, grant.RefreshToken))
	assert.NoError(t, svc.Logout(ctx, "not-a-token"))
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestChangePasswordRevokesAllSessions(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, "admin@rccglcc.org", "admin123")
	require.NoError(t, err)
	second, err := svc.Login(ctx, "admin@rccglcc.org", "admin123")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, first.AccessToken, &admin.ChangePasswordRequest{
		CurrentPassword: "admin123",
		NewPassword:     "a-stronger-password",
	})
	require.NoError(t, err)

	// Every outstanding refresh token is dead, on every device.
	_, err = svc.RefreshToken(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, xerrors.ErrTokenRevoked)
	_, err = svc.RefreshToken(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, xerrors.ErrTokenRevoked)

	// Old password out, new password in.
	_, err = svc.Login(ctx, "admin@rccglcc.org", "admin123")
	assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "admin@rccglcc.org", "a-stronger-password")
	assert.NoError(t, err)
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	grant, err := svc.Login(ctx, "admin@rccglcc.org", "admin123")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, grant.AccessToken, &admin.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "whatever-else",
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)

	// Password unchanged.
	_, err = svc.Login(ctx, "admin@rccglcc.org", "admin123")
	assert.NoError(t, err)
}

func TestUpdateProfileReturnsStoredCopy(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	grant, err := svc.Login(ctx, "admin@rccglcc.org", "admin123")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, grant.AccessToken, &admin.UpdateProfileRequest{
		Name:     "Renamed Admin",
		Position: "Lead Pastor",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Admin", updated.Name)
	assert.Equal(t, "Lead Pastor", updated.Position)
	assert.Equal(t, "admin@rccglcc.org", updated.Email, "email untouched by profile edit")

	// The stored copy is authoritative on the next read.
	profile, err := svc.VerifyToken(ctx, grant.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Admin", profile.Name)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.VerifyToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}
