package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/truthdare-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeRoomNotFound        = "ROOM_NOT_FOUND"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeInvalidAdminToken   = "INVALID_ADMIN_TOKEN"
	CodeBlankName           = "BLANK_NAME"
	CodeDuplicateName       = "DUPLICATE_NAME"
	CodeBlankQuestion       = "BLANK_QUESTION"
	CodeInvalidQuestionType = "INVALID_QUESTION_TYPE"
	CodeInvalidGameMode     = "INVALID_GAME_MODE"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeGameNotActive       = "GAME_NOT_ACTIVE"
	CodeGameAlreadyStarted  = "GAME_ALREADY_STARTED"
	CodeNoCurrentPlayer     = "NO_CURRENT_PLAYER"
	CodeCodeAllocation      = "CODE_ALLOCATION_FAILED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrInvalidAdminToken):
		return &httpError{http.StatusForbidden, APIError{CodeInvalidAdminToken, "Invalid admin token"}}
	case errors.Is(err, model.ErrBlankName):
		return &httpError{http.StatusBadRequest, APIError{CodeBlankName, "Player name is required"}}
	case errors.Is(err, model.ErrDuplicateName):
		return &httpError{http.StatusBadRequest, APIError{CodeDuplicateName, "Player name already exists in this room"}}
	case errors.Is(err, model.ErrBlankQuestion):
		return &httpError{http.StatusBadRequest, APIError{CodeBlankQuestion, "Question text is required"}}
	case errors.Is(err, model.ErrInvalidQuestionType):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidQuestionType, "Question type must be TRUTH or DARE"}}
	case errors.Is(err, model.ErrInvalidGameMode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGameMode, "Game mode must be TRUTH_ONLY, DARE_ONLY or TRUTH_AND_DARE"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Need at least 2 players to start"}}
	case errors.Is(err, model.ErrGameNotActive):
		return &httpError{http.StatusConflict, APIError{CodeGameNotActive, "Game is not active"}}
	case errors.Is(err, model.ErrGameAlreadyStarted):
		return &httpError{http.StatusConflict, APIError{CodeGameAlreadyStarted, "Game has already started"}}
	case errors.Is(err, model.ErrNoCurrentPlayer):
		return &httpError{http.StatusConflict, APIError{CodeNoCurrentPlayer, "No current player"}}
	case errors.Is(err, model.ErrCodeAllocation):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeCodeAllocation, "Could not allocate a room code, try again"}}
	}

	// Anything else is classified by kind
	switch model.KindOf(err) {
	case model.KindNotFound:
		return &httpError{http.StatusNotFound, APIError{CodeInvalidRequest, "Not found"}}
	case model.KindForbidden:
		return &httpError{http.StatusForbidden, APIError{CodeInvalidAdminToken, "Forbidden"}}
	case model.KindBadInput:
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Invalid request"}}
	case model.KindInvalidState:
		return &httpError{http.StatusConflict, APIError{CodeInvalidRequest, "Invalid state"}}
	case model.KindAllocationFailure:
		return &httpError{http.StatusServiceUnavailable, APIError{CodeCodeAllocation, "Allocation failed"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewGameAlreadyStartedError reports a start request on an active room
func NewGameAlreadyStartedError() error {
	return &httpError{http.StatusConflict, APIError{CodeGameAlreadyStarted, "Game has already started"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
