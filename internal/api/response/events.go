package response

import (
	"github.com/mcoot/truthdare-go/internal/model"
)

// Event is the wire envelope pushed to room subscribers
type Event struct {
	EventType string `json:"eventType"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"` // Unix millis
}

// RoomCreatedData is the data for ROOM_CREATED
type RoomCreatedData struct {
	RoomID        string `json:"room_id"`
	RoomCode      string `json:"room_code"`
	AdminPlayerID string `json:"admin_player_id"`
}

// PlayerLeftData is the data for PLAYER_LEFT
type PlayerLeftData struct {
	PlayerID string `json:"player_id"`
}

// GameModeData is the data for GAME_MODE_CHANGED
type GameModeData struct {
	GameMode string `json:"game_mode"`
}

// TurnData is the data for GAME_STARTED and NEXT_TURN
type TurnData struct {
	CurrentPlayer    *Player `json:"current_player"`
	CurrentTurnIndex int     `json:"current_turn_index"`
}

// EventFromModel converts a model.Event to its wire envelope
func EventFromModel(e model.Event) Event {
	return Event{
		EventType: string(e.Type),
		Data:      eventData(e.Payload),
		Timestamp: e.Timestamp.UnixMilli(),
	}
}

// StateEvent wraps a snapshot as a ROOM_STATE envelope
func StateEvent(s model.RoomSnapshot, timestampMillis int64) Event {
	return Event{
		EventType: string(model.EventRoomState),
		Data:      RoomStateFromSnapshot(s),
		Timestamp: timestampMillis,
	}
}

func eventData(payload any) any {
	switch p := payload.(type) {
	case nil:
		return nil
	case model.RoomCreatedPayload:
		return RoomCreatedData{
			RoomID:        string(p.RoomID),
			RoomCode:      string(p.RoomCode),
			AdminPlayerID: string(p.AdminPlayerID),
		}
	case model.PlayerJoinedPayload:
		return PlayerFromSummary(p.Player)
	case model.PlayerLeftPayload:
		return PlayerLeftData{PlayerID: string(p.PlayerID)}
	case model.QuestionPayload:
		return QuestionFromModel(&p.Question)
	case model.GameModeChangedPayload:
		return GameModeData{GameMode: string(p.GameMode)}
	case model.TurnPayload:
		data := TurnData{CurrentTurnIndex: p.TurnIndex}
		if p.CurrentPlayer != nil {
			player := PlayerFromSummary(*p.CurrentPlayer)
			data.CurrentPlayer = &player
		}
		return data
	case model.RoomStatePayload:
		return RoomStateFromSnapshot(p.State)
	default:
		return p
	}
}
