package handler

import (
	"net/http"

	"github.com/mcoot/truthdare-go/internal/api/apierr"
	"github.com/mcoot/truthdare-go/internal/api/middleware"
	"github.com/mcoot/truthdare-go/internal/api/request"
	"github.com/mcoot/truthdare-go/internal/api/response"
	"github.com/mcoot/truthdare-go/internal/model"
	"github.com/mcoot/truthdare-go/internal/services/session"
)

// AdminHandler handles admin-only endpoints. All routes sit behind the
// admin token middleware.
type AdminHandler struct {
	orchestrator session.OrchestratorInterface
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(orchestrator session.OrchestratorInterface) *AdminHandler {
	return &AdminHandler{orchestrator: orchestrator}
}

// InjectQuestion handles POST /api/v1/admin/{roomID}/inject-question
func (h *AdminHandler) InjectQuestion(w http.ResponseWriter, r *http.Request) {
	var req request.InjectQuestionRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	q, err := h.orchestrator.InjectQuestion(r.Context(), roomID(r), middleware.GetAdminToken(r.Context()), session.InjectRequest{
		Text:   req.QuestionText,
		Type:   model.QuestionType(req.QuestionType),
		Target: model.PlayerID(req.TargetPlayerID),
	})
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.QuestionFromModel(q))
}

// ChangeGameMode handles PUT /api/v1/admin/{roomID}/game-mode
func (h *AdminHandler) ChangeGameMode(w http.ResponseWriter, r *http.Request) {
	var req request.ChangeGameModeRequest
	if err := request.Decode(r, &req); err != nil {
		apierr.WriteError(w, err)
		return
	}

	snap, err := h.orchestrator.ChangeMode(r.Context(), roomID(r), middleware.GetAdminToken(r.Context()), model.GameMode(req.GameMode))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomStateFromSnapshot(snap))
}

// ForceNextTurn handles POST /api/v1/admin/{roomID}/force-next-turn
func (h *AdminHandler) ForceNextTurn(w http.ResponseWriter, r *http.Request) {
	snap, err := h.orchestrator.ForceNextTurn(r.Context(), roomID(r), middleware.GetAdminToken(r.Context()))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomStateFromSnapshot(snap))
}
