// internal/handlers/attendance_handler.go
package handlers

import (
	"errors"
	"net/http"

	"gracehub-service/internal/domain/attendance"
	"gracehub-service/internal/middleware"
	xerrors "gracehub-service/internal/pkg/errors"
	"gracehub-service/internal/pkg/response"
	attendancesvc "gracehub-service/internal/service/attendance"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AttendanceHandler struct {
	svc    *attendancesvc.Service
	logger *zap.Logger
}

func NewAttendanceHandler(svc *attendancesvc.Service, logger *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{svc: svc, logger: logger}
}

// Record POST /api/v1/attendance
func (h *AttendanceHandler) Record(c *gin.Context) {
	var req attendance.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid attendance payload", err)
		return
	}

	created, err := h.svc.Record(c.Request.Context(), middleware.CurrentAdminID(c), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to record attendance", err)
		return
	}

	response.Success(c, http.StatusCreated, "Attendance recorded", created)
}

// List GET /api/v1/attendance
func (h *AttendanceHandler) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list attendance", err)
		return
	}

	response.Success(c, http.StatusOK, "OK", records)
}

// Delete DELETE /api/v1/attendance/:id
func (h *AttendanceHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Record not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete record", err)
		return
	}

	response.Success(c, http.StatusOK, "Record deleted", nil)
}
