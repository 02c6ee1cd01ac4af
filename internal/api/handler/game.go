package handler

import (
	"net/http"
	"strings"

	"github.com/mcoot/truthdare-go/internal/api/apierr"
	"github.com/mcoot/truthdare-go/internal/api/middleware"
	"github.com/mcoot/truthdare-go/internal/api/response"
	"github.com/mcoot/truthdare-go/internal/model"
	"github.com/mcoot/truthdare-go/internal/services/session"
)

// GameHandler handles turn and question endpoints
type GameHandler struct {
	orchestrator session.OrchestratorInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(orchestrator session.OrchestratorInterface) *GameHandler {
	return &GameHandler{orchestrator: orchestrator}
}

// Start handles POST /api/v1/game/{roomID}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetAdminToken(r.Context())

	started, err := h.orchestrator.StartGame(r.Context(), roomID(r), token)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if !started {
		apierr.WriteError(w, apierr.NewGameAlreadyStartedError())
		return
	}

	response.JSON(w, http.StatusOK, response.StartGameResponse{Started: true})
}

// Question handles GET /api/v1/game/{roomID}/question?type=TRUTH
func (h *GameHandler) Question(w http.ResponseWriter, r *http.Request) {
	preferred, err := model.ParseQuestionType(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("type"))))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	q, err := h.orchestrator.NextQuestion(r.Context(), roomID(r), preferred)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.QuestionFromModel(q))
}

// NextTurn handles POST /api/v1/game/{roomID}/next-turn
func (h *GameHandler) NextTurn(w http.ResponseWriter, r *http.Request) {
	snap, err := h.orchestrator.AdvanceTurn(r.Context(), roomID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomStateFromSnapshot(snap))
}
