// internal/handlers/member_handler.go
package handlers

import (
	"errors"
	"net/http"

	"gracehub-service/internal/domain/member"
	xerrors "gracehub-service/internal/pkg/errors"
	"gracehub-service/internal/pkg/response"
	membersvc "gracehub-service/internal/service/member"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MemberHandler struct {
	svc    *membersvc.Service
	logger *zap.Logger
}

func NewMemberHandler(svc *membersvc.Service, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{svc: svc, logger: logger}
}

// Create POST /api/v1/members
func (h *MemberHandler) Create(c *gin.Context) {
	var req member.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid member payload", err)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create member", err)
		return
	}

	response.Success(c, http.StatusCreated, "Member created", created)
}

// List GET /api/v1/members
func (h *MemberHandler) List(c *gin.Context) {
	var filter member.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, "Invalid filter", err)
		return
	}

	members, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list members", err)
		return
	}

	response.Success(c, http.StatusOK, "OK", members)
}

// Get GET /api/v1/members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	m, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Member not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch member", err)
		return
	}

	response.Success(c, http.StatusOK, "OK", m)
}

// Update PUT /api/v1/members/:id
func (h *MemberHandler) Update(c *gin.Context) {
	var req member.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid member payload", err)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Member not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update member", err)
		return
	}

	response.Success(c, http.StatusOK, "Member updated", updated)
}

// Delete DELETE /api/v1/members/:id
func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Member not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete member", err)
		return
	}

	response.Success(c, http.StatusOK, "Member deleted", nil)
}
