package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/mcoot/truthdare-go/internal/api/apierr"
	"github.com/mcoot/truthdare-go/internal/model"
	"github.com/mcoot/truthdare-go/internal/services/session"
	"github.com/mcoot/truthdare-go/internal/web/sse"
	"github.com/mcoot/truthdare-go/internal/web/ws"
)

// StreamHandler subscribes clients to a room's events. Each new
// subscriber first receives the current ROOM_STATE.
type StreamHandler struct {
	orchestrator   session.OrchestratorInterface
	hubManager     *sse.HubManager
	sseBroadcaster *sse.Broadcaster
	wsManager      *ws.Manager
	wsBroadcaster  *ws.Broadcaster
	logger         *slog.Logger
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(
	orchestrator session.OrchestratorInterface,
	hubManager *sse.HubManager,
	sseBroadcaster *sse.Broadcaster,
	wsManager *ws.Manager,
	wsBroadcaster *ws.Broadcaster,
	logger *slog.Logger,
) *StreamHandler {
	return &StreamHandler{
		orchestrator:   orchestrator,
		hubManager:     hubManager,
		sseBroadcaster: sseBroadcaster,
		wsManager:      wsManager,
		wsBroadcaster:  wsBroadcaster,
		logger:         logger,
	}
}

// Events handles GET /api/v1/rooms/{code}/events
func (h *StreamHandler) Events(w http.ResponseWriter, r *http.Request) {
	snap, err := h.orchestrator.RoomState(r.Context(), roomCode(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	initial, err := h.sseBroadcaster.StateMessage(snap)
	if err != nil {
		h.logger.Error("failed to render initial state", slog.Any("error", err))
		apierr.WriteError(w, apierr.NewInternalError())
		return
	}

	hub := h.hubManager.GetOrCreateHub(snap.Code)
	sse.ServeSSE(w, r, hub, uuid.NewString(), h.alive(r, snap), initial)
}

// WebSocket handles GET /api/v1/rooms/{code}/ws
func (h *StreamHandler) WebSocket(w http.ResponseWriter, r *http.Request) {
	snap, err := h.orchestrator.RoomState(r.Context(), roomCode(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	initial, err := h.wsBroadcaster.StateMessage(snap)
	if err != nil {
		h.logger.Error("failed to render initial state", slog.Any("error", err))
		apierr.WriteError(w, apierr.NewInternalError())
		return
	}

	h.wsManager.Serve(w, r, snap.Code, h.alive(r, snap), initial)
}

// alive reports whether the room a subscriber was given state for is
// still live. A teardown that ran before the subscriber registered would
// otherwise leave it attached to a dead code.
func (h *StreamHandler) alive(r *http.Request, snap model.RoomSnapshot) func() bool {
	return func() bool {
		current, err := h.orchestrator.RoomState(r.Context(), snap.Code)
		return err == nil && current.ID == snap.ID
	}
}
