package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/truthdare-go/internal/model"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"room not found", model.ErrRoomNotFound, http.StatusNotFound, CodeRoomNotFound},
		{"wrapped player not found", fmt.Errorf("%w: p1", model.ErrPlayerNotFound), http.StatusNotFound, CodePlayerNotFound},
		{"bad token", model.ErrInvalidAdminToken, http.StatusForbidden, CodeInvalidAdminToken},
		{"duplicate name", model.ErrDuplicateName, http.StatusBadRequest, CodeDuplicateName},
		{"invalid type", fmt.Errorf("%w: %q", model.ErrInvalidQuestionType, "X"), http.StatusBadRequest, CodeInvalidQuestionType},
		{"insufficient players", model.ErrInsufficientPlayers, http.StatusConflict, CodeInsufficientPlayers},
		{"not active", model.ErrGameNotActive, http.StatusConflict, CodeGameNotActive},
		{"allocation", model.ErrCodeAllocation, http.StatusServiceUnavailable, CodeCodeAllocation},
		{"already started", NewGameAlreadyStartedError(), http.StatusConflict, CodeGameAlreadyStarted},
		{"invalid request", NewInvalidRequestError("nope"), http.StatusBadRequest, CodeInvalidRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.status, Status(tt.err))
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestInternalErrorHidesDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("database password is hunter2"))

	assert.NotContains(t, rr.Body.String(), "hunter2")
}
