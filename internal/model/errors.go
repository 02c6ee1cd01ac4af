package model

import "errors"

// Common errors used across the application
var (
	// Not found
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found")

	// Forbidden
	ErrInvalidAdminToken = errors.New("invalid admin token")

	// Bad input
	ErrBlankName           = errors.New("player name is required")
	ErrDuplicateName       = errors.New("player name already exists in this room")
	ErrBlankQuestion       = errors.New("question text is required")
	ErrInvalidQuestionType = errors.New("invalid question type")
	ErrInvalidGameMode     = errors.New("invalid game mode")

	// Invalid state
	ErrInsufficientPlayers = errors.New("need at least 2 players to start")
	ErrGameNotActive       = errors.New("game is not active")
	ErrGameAlreadyStarted  = errors.New("game has already started")
	ErrNoCurrentPlayer     = errors.New("no current player")

	// Allocation failure
	ErrCodeAllocation = errors.New("failed to allocate a unique room code")
)

// ErrorKind classifies errors for callers that need to react by category
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindForbidden
	KindBadInput
	KindInvalidState
	KindAllocationFailure
)

// String returns a stable label for the kind
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindForbidden:
		return "forbidden"
	case KindBadInput:
		return "bad-input"
	case KindInvalidState:
		return "invalid-state"
	case KindAllocationFailure:
		return "allocation-failure"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// KindOf classifies err. Unknown errors are internal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrPlayerNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidAdminToken):
		return KindForbidden
	case errors.Is(err, ErrBlankName),
		errors.Is(err, ErrDuplicateName),
		errors.Is(err, ErrBlankQuestion),
		errors.Is(err, ErrInvalidQuestionType),
		errors.Is(err, ErrInvalidGameMode):
		return KindBadInput
	case errors.Is(err, ErrInsufficientPlayers),
		errors.Is(err, ErrGameNotActive),
		errors.Is(err, ErrGameAlreadyStarted),
		errors.Is(err, ErrNoCurrentPlayer):
		return KindInvalidState
	case errors.Is(err, ErrCodeAllocation):
		return KindAllocationFailure
	default:
		return KindInternal
	}
}
