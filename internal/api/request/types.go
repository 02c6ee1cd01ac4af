package request

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	GameMode   string `json:"game_mode" validate:"required,oneof=TRUTH_ONLY DARE_ONLY TRUTH_AND_DARE"`
	PlayerName string `json:"player_name" validate:"max=64"`
}

// JoinRoomRequest is the request body for joining a room
type JoinRoomRequest struct {
	RoomCode   string `json:"room_code" validate:"required,max=16"`
	PlayerName string `json:"player_name" validate:"required,max=64"`
}

// LeaveRoomRequest is the request body for leaving a room
type LeaveRoomRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

// InjectQuestionRequest is the request body for injecting an admin question
type InjectQuestionRequest struct {
	QuestionText   string `json:"question_text" validate:"required,max=500"`
	QuestionType   string `json:"question_type" validate:"required,oneof=TRUTH DARE"`
	TargetPlayerID string `json:"target_player_id,omitempty"`
}

// ChangeGameModeRequest is the request body for changing a room's mode
type ChangeGameModeRequest struct {
	GameMode string `json:"game_mode" validate:"required,oneof=TRUTH_ONLY DARE_ONLY TRUTH_AND_DARE"`
}
