package handler

import (
	"net/http"

	"github.com/mcoot/truthdare-go/internal/api/apierr"
	"github.com/mcoot/truthdare-go/internal/api/request"
	"github.com/mcoot/truthdare-go/internal/api/response"
	"github.com/mcoot/truthdare-go/internal/model"
	"github.com/mcoot/truthdare-go/internal/services/session"
)

// RoomHandler handles room membership endpoints
type RoomHandler struct {
	orchestrator session.OrchestratorInterface
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(orchestrator session.OrchestratorInterface) *RoomHandler {
	return &RoomHandler{orchestrator: orchestrator}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoomRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	mode, err := model.ParseGameMode(req.GameMode)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	created, err := h.orchestrator.CreateRoom(r.Context(), mode, req.PlayerName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateRoomResponse{
		RoomID:        string(created.Snapshot.ID),
		RoomCode:      string(created.Snapshot.Code),
		AdminToken:    created.AdminToken,
		AdminPlayerID: string(created.AdminPlayer.ID),
		State:         response.RoomStateFromSnapshot(created.Snapshot),
	})
}

// Join handles POST /api/v1/rooms/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRoomRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	player, snap, err := h.orchestrator.JoinRoom(r.Context(), normalizeCode(req.RoomCode), req.PlayerName)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinRoomResponse{
		RoomID:   string(snap.ID),
		RoomCode: string(snap.Code),
		PlayerID: string(player.ID),
		State:    response.RoomStateFromSnapshot(snap),
	})
}

// Leave handles POST /api/v1/rooms/{code}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	var req request.LeaveRoomRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	if err := h.orchestrator.LeaveRoom(r.Context(), roomCode(r), model.PlayerID(req.PlayerID)); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// State handles GET /api/v1/rooms/{code}/state
func (h *RoomHandler) State(w http.ResponseWriter, r *http.Request) {
	snap, err := h.orchestrator.RoomState(r.Context(), roomCode(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomStateFromSnapshot(snap))
}
