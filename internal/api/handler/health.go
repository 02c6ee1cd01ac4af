package handler

import (
	"context"
	"net/http"

	"github.com/mcoot/truthdare-go/internal/api/apierr"
	"github.com/mcoot/truthdare-go/internal/api/response"
)

// RoomCounter reports how many rooms are live
type RoomCounter interface {
	Count(ctx context.Context) (int, error)
}

// HealthHandler handles the health endpoint
type HealthHandler struct {
	rooms RoomCounter
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(rooms RoomCounter) *HealthHandler {
	return &HealthHandler{rooms: rooms}
}

// Health handles GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.rooms.Count(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok", Rooms: count})
}
