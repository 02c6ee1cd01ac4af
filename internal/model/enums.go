package model

import "fmt"

// Role distinguishes the room creator from everyone else
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RolePlayer Role = "PLAYER"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePlayer:
		return true
	default:
		return false
	}
}

// QuestionType is the kind of prompt a player receives.
// The zero value means "no preference" where a preference is optional.
type QuestionType string

const (
	QuestionTypeTruth QuestionType = "TRUTH"
	QuestionTypeDare  QuestionType = "DARE"
)

// Valid reports whether t is TRUTH or DARE
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeTruth, QuestionTypeDare:
		return true
	default:
		return false
	}
}

// ParseQuestionType parses a question type. An empty string yields the zero
// value (no preference).
func ParseQuestionType(s string) (QuestionType, error) {
	if s == "" {
		return "", nil
	}
	t := QuestionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidQuestionType, s)
	}
	return t, nil
}

// GameMode restricts which question types a room draws
type GameMode string

const (
	GameModeTruthOnly    GameMode = "TRUTH_ONLY"
	GameModeDareOnly     GameMode = "DARE_ONLY"
	GameModeTruthAndDare GameMode = "TRUTH_AND_DARE"
)

// Valid reports whether m is a known game mode
func (m GameMode) Valid() bool {
	switch m {
	case GameModeTruthOnly, GameModeDareOnly, GameModeTruthAndDare:
		return true
	default:
		return false
	}
}

// ForcedType returns the question type the mode forces, if any
func (m GameMode) ForcedType() (QuestionType, bool) {
	switch m {
	case GameModeTruthOnly:
		return QuestionTypeTruth, true
	case GameModeDareOnly:
		return QuestionTypeDare, true
	case GameModeTruthAndDare:
		return "", false
	default:
		panic(fmt.Sprintf("unhandled game mode %q", string(m)))
	}
}

// ParseGameMode parses a game mode
func ParseGameMode(s string) (GameMode, error) {
	m := GameMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidGameMode, s)
	}
	return m, nil
}

// RoomStatus is the room lifecycle state. Rooms only move WAITING -> ACTIVE.
type RoomStatus string

const (
	RoomStatusWaiting RoomStatus = "WAITING"
	RoomStatusActive  RoomStatus = "ACTIVE"
)
