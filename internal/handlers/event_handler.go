// internal/handlers/event_handler.go
package handlers

import (
	"errors"
	"net/http"

	"gracehub-service/internal/domain/event"
	"gracehub-service/internal/middleware"
	xerrors "gracehub-service/internal/pkg/errors"
	"gracehub-service/internal/pkg/response"
	eventsvc "gracehub-service/internal/service/event"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	svc    *eventsvc.Service
	logger *zap.Logger
}

func NewEventHandler(svc *eventsvc.Service, logger *zap.Logger) *EventHandler {
	return &EventHandler{svc: svc, logger: logger}
}

// Create POST /api/v1/events
func (h *EventHandler) Create(c *gin.Context) {
	var req event.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid event payload", err)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), middleware.CurrentAdminID(c), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidInput) {
			response.ValidationError(c, "Invalid event times", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create event", err)
		return
	}

	response.Success(c, http.StatusCreated, "Event created", created)
}

// List GET /api/v1/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list events", err)
		return
	}

	response.Success(c, http.StatusOK, "OK", events)
}

// Get GET /api/v1/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	e, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Event not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch event", err)
		return
	}

	response.Success(c, http.StatusOK, "OK", e)
}

// Update PUT /api/v1/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	var req event.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid event payload", err)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Event not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update event", err)
		return
	}

	response.Success(c, http.StatusOK, "Event updated", updated)
}

// Delete DELETE /api/v1/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Event not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete event", err)
		return
	}

	response.Success(c, http.StatusOK, "Event deleted", nil)
}
