package model

import "time"

// EventType identifies the type of event pushed to room subscribers
type EventType string

const (
	EventRoomCreated     EventType = "ROOM_CREATED"
	EventPlayerJoined    EventType = "PLAYER_JOINED"
	EventPlayerLeft      EventType = "PLAYER_LEFT"
	EventGameStarted     EventType = "GAME_STARTED"
	EventQuestionSent    EventType = "QUESTION_SENT"
	EventAdminOverride   EventType = "ADMIN_OVERRIDE"
	EventNextTurn        EventType = "NEXT_TURN"
	EventGameModeChanged EventType = "GAME_MODE_CHANGED"
	EventRoomState       EventType = "ROOM_STATE"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType
	Timestamp time.Time
	RoomCode  RoomCode
	Payload   any // Type-specific data, nil for signal-only events
}

// RoomCreatedPayload contains data for room created events. It never
// carries the admin token.
type RoomCreatedPayload struct {
	RoomID        RoomID
	RoomCode      RoomCode
	AdminPlayerID PlayerID
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	Player PlayerSummary
}

// PlayerLeftPayload contains data for player left events
type PlayerLeftPayload struct {
	PlayerID PlayerID
}

// QuestionPayload contains data for question sent and admin override events
type QuestionPayload struct {
	Question Question
}

// GameModeChangedPayload contains data for game mode changed events
type GameModeChangedPayload struct {
	GameMode GameMode
}

// RoomStatePayload carries a full room snapshot
type RoomStatePayload struct {
	State RoomSnapshot
}

// TurnPayload contains data for game started and next turn events
type TurnPayload struct {
	CurrentPlayer *PlayerSummary
	TurnIndex     int
}
