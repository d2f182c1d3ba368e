// internal/handlers/auth_handler.go
package handlers

import (
	"errors"
	"net/http"

	"gracehub-service/internal/domain/admin"
	"gracehub-service/internal/middleware"
	xerrors "gracehub-service/internal/pkg/errors"
	"gracehub-service/internal/pkg/response"
	"gracehub-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req admin.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid login payload", err)
		return
	}

	grant, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrInvalidCredentials):
			response.Unauthorized(c, "Invalid email or password")
		case errors.Is(err, xerrors.ErrAccountInactive):
			response.Forbidden(c, "Account is inactive")
		default:
			response.Error(c, http.StatusInternalServerError, "Login failed", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "Login successful", grant)
}

// Refresh POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req admin.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid refresh payload", err)
		return
	}

	grant, err := h.svc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Unauthorized(c, "Refresh token is invalid or revoked")
		return
	}

	response.Success(c, http.StatusOK, "Token refreshed", grant)
}

// Logout POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req admin.LogoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.svc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		response.Error(c, http.StatusInternalServerError, "Logout failed", err)
		return
	}

	response.Success(c, http.StatusOK, "Logged out", nil)
}

// Me GET /api/v1/auth/me — verifies the presented token and returns the
// current profile.
func (h *AuthHandler) Me(c *gin.Context) {
	profile := middleware.CurrentAdmin(c)
	if profile == nil {
		response.Unauthorized(c, "Authentication required")
		return
	}
	response.Success(c, http.StatusOK, "OK", profile)
}

// UpdateProfile PUT /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req admin.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid profile payload", err)
		return
	}

	profile, err := h.svc.UpdateProfileByID(c.Request.Context(), middleware.CurrentAdminID(c), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Profile update failed", err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// ChangePassword POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req admin.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid password payload", err)
		return
	}

	err := h.svc.ChangePasswordByID(c.Request.Context(), middleware.CurrentAdminID(c), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidCredentials) {
			response.Unauthorized(c, "Current password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Password change failed", err)
		return
	}

	response.Success(c, http.StatusOK, "Password changed. Please log in again.", nil)
}
