// internal/handlers/auth_handler_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gracehub-service/internal/domain/admin"
	"gracehub-service/internal/handlers"
	"gracehub-service/internal/middleware"
	"gracehub-service/internal/pkg/jwt"
	"gracehub-service/internal/realtime"
	"gracehub-service/internal/repository/memory"
	"gracehub-service/internal/service/auth"
	membersvc "gracehub-service/internal/service/member"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
	_, err = repo.Seed(admin.Profile{
		Name:        "Events Admin",
		Email:       "events@rccglcc.org",
		Role:        admin.RoleAdmin,
		Permissions: []string{"events"},
		IsActive:    true,
	}, "events123")
	require.NoError(t, err)

	logger := zap.NewNop()
	authSvc := auth.NewService(repo, tokens, nil, logger)

	hub := realtime.NewHub(tokens.Verifier, logger)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	members := membersvc.NewService(memory.NewMemberRepository(), hub, logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger)
	memberHandler := handlers.NewMemberHandler(members, logger)

	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/refresh", authHandler.Refresh)

	authed := v1.Group("", middleware.Auth(authSvc))
	authed.GET("/auth/me", authHandler.Me)
	authed.GET("/members", middleware.RequirePermission("members"), memberHandler.List)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func login(t *testing.T, r *gin.Engine, email, password string) *admin.AuthGrant {
	t.Helper()

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	var grant admin.AuthGrant
	require.NoError(t, json.Unmarshal(env.Data, &grant))
	return &grant
}

func TestLoginEndpoint(t *testing.T) {
	r := newTestRouter(t)

	grant := login(t, r, "admin@rccglcc.org", "admin123")
	assert.True(t, grant.Pair().Valid())
	require.NotNil(t, grant.Admin)
	assert.Equal(t, admin.RoleSuperAdmin, grant.Admin.Role)
}

func TestLoginEndpointRejectsBadPassword(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "admin@rccglcc.org",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
}

func TestMeRequiresToken(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	grant := login(t, r, "admin@rccglcc.org", "admin123")
	w, env := doJSON(t, r, http.MethodGet, "/api/v1/auth/me", grant.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var profile admin.Profile
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "admin@rccglcc.org", profile.Email)
}

func TestPermissionGate(t *testing.T) {
	r := newTestRouter(t)

	// Scoped admin lacks "members" and is denied in place.
	scoped := login(t, r, "events@rccglcc.org", "events123")
	w, _ := doJSON(t, r, http.MethodGet, "/api/v1/members", scoped.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Super admin bypasses the permission set.
	super := login(t, r, "admin@rccglcc.org", "admin123")
	w, env := doJSON(t, r, http.MethodGet, "/api/v1/members", super.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}

func TestRefreshEndpointRotation(t *testing.T) {
	r := newTestRouter(t)

	grant := login(t, r, "admin@rccglcc.org", "admin123")

	w, env := doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{
		"refresh_token": grant.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var rotated admin.AuthGrant
	require.NoError(t, json.Unmarshal(env.Data, &rotated))
	assert.True(t, rotated.Pair().Valid())

	// The consumed token no longer refreshes.
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{
		"refresh_token": grant.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
