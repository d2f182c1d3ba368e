// internal/handlers/celebration_handler.go
package handlers

import (
	"errors"
	"net/http"

	"gracehub-service/internal/domain/celebration"
	"gracehub-service/internal/middleware"
	xerrors "gracehub-service/internal/pkg/errors"
	"gracehub-service/internal/pkg/response"
	celebrationsvc "gracehub-service/internal/service/celebration"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CelebrationHandler struct {
	svc    *celebrationsvc.Service
	logger *zap.Logger
}

func NewCelebrationHandler(svc *celebrationsvc.Service, logger *zap.Logger) *CelebrationHandler {
	return &CelebrationHandler{svc: svc, logger: logger}
}

// Submit POST /api/v1/celebrations — public, no auth.
func (h *CelebrationHandler) Submit(c *gin.Context) {
	var req celebration.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid celebration payload", err)
		return
	}

	created, err := h.svc.Submit(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to submit celebration", err)
		return
	}

	response.Success(c, http.StatusCreated, "Celebration submitted", created)
}

// List GET /api/v1/celebrations?status=pending
func (h *CelebrationHandler) List(c *gin.Context) {
	status := celebration.Status(c.Query("status"))

	items, err := h.svc.List(c.Request.Context(), status)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list celebrations", err)
		return
	}

	response.Success(c, http.StatusOK, "OK", items)
}

// Review PATCH /api/v1/celebrations/:id/review
func (h *CelebrationHandler) Review(c *gin.Context) {
	var req celebration.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid review payload", err)
		return
	}

	reviewed, err := h.svc.Review(c.Request.Context(), c.Param("id"), middleware.CurrentAdminID(c), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Celebration not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to review celebration", err)
		return
	}

	response.Success(c, http.StatusOK, "Celebration reviewed", reviewed)
}

// Delete DELETE /api/v1/celebrations/:id
func (h *CelebrationHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Celebration not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete celebration", err)
		return
	}

	response.Success(c, http.StatusOK, "Celebration deleted", nil)
}
