package response

import (
	"time"

	"github.com/samber/lo"

	"github.com/mcoot/truthdare-go/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID   string `json:"player_id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// PlayerFromSummary converts a model.PlayerSummary
func PlayerFromSummary(p model.PlayerSummary) Player {
	return Player{
		ID:   string(p.ID),
		Name: p.Name,
		Role: string(p.Role),
	}
}

// Question represents a question in API responses
type Question struct {
	ID             string `json:"question_id"`
	Text           string `json:"text"`
	Type           string `json:"type"`
	TargetPlayerID string `json:"player_id,omitempty"`
	AdminInjected  bool   `json:"admin_injected"`
}

// QuestionFromModel converts a model.Question
func QuestionFromModel(q *model.Question) Question {
	return Question{
		ID:             string(q.ID),
		Text:           q.Text,
		Type:           string(q.Type),
		TargetPlayerID: string(q.TargetPlayerID),
		AdminInjected:  q.AdminInjected,
	}
}

// RoomState is the full public state of a room
type RoomState struct {
	RoomID           string    `json:"room_id"`
	RoomCode         string    `json:"room_code"`
	GameMode         string    `json:"game_mode"`
	Status           string    `json:"status"`
	Players          []Player  `json:"players"`
	CurrentPlayer    *Player   `json:"current_player"`
	CurrentQuestion  *Question `json:"current_question"`
	CurrentTurnIndex int       `json:"current_turn_index"`
	PendingQuestions int       `json:"pending_admin_questions"`
	CreatedAt        time.Time `json:"created_at"`
	LastActivityAt   time.Time `json:"last_activity_at"`
	Version          uint64    `json:"version"`
}

// RoomStateFromSnapshot converts a model.RoomSnapshot
func RoomStateFromSnapshot(s model.RoomSnapshot) RoomState {
	state := RoomState{
		RoomID:           string(s.ID),
		RoomCode:         string(s.Code),
		GameMode:         string(s.Mode),
		Status:           string(s.Status),
		Players:          lo.Map(s.Players, func(p model.PlayerSummary, _ int) Player { return PlayerFromSummary(p) }),
		CurrentTurnIndex: s.TurnIndex,
		PendingQuestions: s.PendingAdmin,
		CreatedAt:        s.CreatedAt,
		LastActivityAt:   s.LastActivityAt,
		Version:          s.Version,
	}
	if s.CurrentPlayer != nil {
		state.CurrentPlayer = lo.ToPtr(PlayerFromSummary(*s.CurrentPlayer))
	}
	if s.CurrentQuestion != nil {
		state.CurrentQuestion = lo.ToPtr(QuestionFromModel(s.CurrentQuestion))
	}
	return state
}

// CreateRoomResponse is the only response that carries the admin token
type CreateRoomResponse struct {
	RoomID        string    `json:"room_id"`
	RoomCode      string    `json:"room_code"`
	AdminToken    string    `json:"admin_token"`
	AdminPlayerID string    `json:"admin_player_id"`
	State         RoomState `json:"state"`
}

// JoinRoomResponse is the response for joining a room
type JoinRoomResponse struct {
	RoomID   string    `json:"room_id"`
	RoomCode string    `json:"room_code"`
	PlayerID string    `json:"player_id"`
	State    RoomState `json:"state"`
}

// StartGameResponse reports whether the call started the game
type StartGameResponse struct {
	Started bool `json:"started"`
}

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}
