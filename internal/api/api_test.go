package api_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/truthdare-go/internal/api"
	"github.com/mcoot/truthdare-go/internal/api/apierr"
	"github.com/mcoot/truthdare-go/internal/api/response"
	"github.com/mcoot/truthdare-go/internal/factory"
	"github.com/mcoot/truthdare-go/internal/model"
	"github.com/mcoot/truthdare-go/internal/services/question"
	"github.com/mcoot/truthdare-go/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		Orchestrator:   app.Orchestrator,
		Rooms:          app.Registry,
		HubManager:     app.HubManager,
		SSEBroadcaster: app.SSEBroadcaster,
		WSManager:      app.WSManager,
		WSBroadcaster:  app.WSBroadcaster,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, adminToken string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if adminToken != "" {
		req.Header.Set("X-Admin-Token", adminToken)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func roomCode(c response.CreateRoomResponse) model.RoomCode {
	return model.RoomCode(c.RoomCode)
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[apierr.ErrorResponse](t, rr).Error.Code
}

func createRoom(t *testing.T, ts *testServer, mode, name string) response.CreateRoomResponse {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/rooms", map[string]string{"game_mode": mode, "player_name": name}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[response.CreateRoomResponse](t, rr)
}

func joinRoom(t *testing.T, ts *testServer, code, name string) response.JoinRoomResponse {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/rooms/join", map[string]string{"room_code": code, "player_name": name}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decode[response.JoinRoomResponse](t, rr)
}

func startedRoom(t *testing.T, ts *testServer) (response.CreateRoomResponse, response.JoinRoomResponse) {
	t.Helper()
	created := createRoom(t, ts, "TRUTH_AND_DARE", "Ana")
	ben := joinRoom(t, ts, created.RoomCode, "Ben")
	rr := ts.request(http.MethodPost, "/api/v1/game/"+created.RoomID+"/start", nil, created.AdminToken)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return created, ben
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	health := decode[response.HealthResponse](t, rr)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 0, health.Rooms)

	createRoom(t, ts, "TRUTH_ONLY", "Ana")
	rr = ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, 1, decode[response.HealthResponse](t, rr).Rooms)
}

func TestAnaBenScenario(t *testing.T) {
	ts := newTestServer(t)

	// Ana creates a room
	created := createRoom(t, ts, "TRUTH_AND_DARE", "Ana")
	assert.Len(t, created.RoomCode, 6)
	assert.Len(t, created.AdminToken, 32)
	assert.NotEmpty(t, created.AdminPlayerID)
	require.Len(t, created.State.Players, 1)
	assert.Equal(t, "ADMIN", created.State.Players[0].Role)

	// "ana" is taken, whatever the case
	rr := ts.request(http.MethodPost, "/api/v1/rooms/join", map[string]string{"room_code": created.RoomCode, "player_name": "ana"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeDuplicateName, errorCode(t, rr))

	// Ben joins with a lower-cased code
	ben := joinRoom(t, ts, strings.ToLower(created.RoomCode), "Ben")
	assert.Equal(t, created.RoomID, ben.RoomID)
	assert.Len(t, ben.State.Players, 2)

	// Admin starts the game
	rr = ts.request(http.MethodPost, "/api/v1/game/"+created.RoomID+"/start", nil, created.AdminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decode[response.StartGameResponse](t, rr).Started)

	// Starting again conflicts
	rr = ts.request(http.MethodPost, "/api/v1/game/"+created.RoomID+"/start", nil, created.AdminToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameAlreadyStarted, errorCode(t, rr))

	// Ana draws a dare from the fallback pool
	rr = ts.request(http.MethodGet, "/api/v1/game/"+created.RoomID+"/question?type=DARE", nil, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	q := decode[response.Question](t, rr)
	assert.Equal(t, "DARE", q.Type)
	assert.Contains(t, question.FallbackPool("DARE"), q.Text)
	assert.Equal(t, created.AdminPlayerID, q.TargetPlayerID)

	// Turn passes to Ben
	rr = ts.request(http.MethodPost, "/api/v1/game/"+created.RoomID+"/next-turn", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	state := decode[response.RoomState](t, rr)
	require.NotNil(t, state.CurrentPlayer)
	assert.Equal(t, ben.PlayerID, state.CurrentPlayer.ID)
	assert.Equal(t, 1, state.CurrentTurnIndex)

	// The admin token never appears in public state
	rr = ts.request(http.MethodGet, "/api/v1/rooms/"+created.RoomCode+"/state", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), created.AdminToken)
}

func TestCreateRoomValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing mode", map[string]string{"player_name": "Ana"}},
		{"bad mode", map[string]string{"game_mode": "CHAOS"}},
		{"long name", map[string]string{"game_mode": "TRUTH_ONLY", "player_name": strings.Repeat("a", 65)}},
		{"not json", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/rooms", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
		})
	}
}

func TestCreateRoomDefaultsCreatorName(t *testing.T) {
	ts := newTestServer(t)

	created := createRoom(t, ts, "DARE_ONLY", "   ")
	require.Len(t, created.State.Players, 1)
	assert.Equal(t, "Admin", created.State.Players[0].Name)
}

func TestJoinUnknownRoom(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/join", map[string]string{"room_code": "NOPE00", "player_name": "Ben"}, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeRoomNotFound, errorCode(t, rr))
}

func TestJoinActiveRoomRefused(t *testing.T) {
	ts := newTestServer(t)
	created, _ := startedRoom(t, ts)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/join", map[string]string{"room_code": created.RoomCode, "player_name": "Cy"}, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameAlreadyStarted, errorCode(t, rr))
}

func TestLeaveRoom(t *testing.T) {
	ts := newTestServer(t)
	created := createRoom(t, ts, "TRUTH_ONLY", "Ana")
	ben := joinRoom(t, ts, created.RoomCode, "Ben")

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+created.RoomCode+"/leave", map[string]string{"player_id": ben.PlayerID}, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+created.RoomCode+"/leave", map[string]string{"player_id": ben.PlayerID}, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodePlayerNotFound, errorCode(t, rr))

	// Last player out removes the room
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+created.RoomCode+"/leave", map[string]string{"player_id": created.AdminPlayerID}, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/"+created.RoomCode+"/state", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStartGameRules(t *testing.T) {
	ts := newTestServer(t)
	created := createRoom(t, ts, "TRUTH_ONLY", "Ana")
	path := "/api/v1/game/" + created.RoomID + "/start"

	// Missing token
	rr := ts.request(http.MethodPost, path, nil, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Wrong token
	rr = ts.request(http.MethodPost, path, nil, "wrong")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeInvalidAdminToken, errorCode(t, rr))

	// Not enough players
	rr = ts.request(http.MethodPost, path, nil, created.AdminToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeInsufficientPlayers, errorCode(t, rr))

	// Unknown room
	rr = ts.request(http.MethodPost, "/api/v1/game/missing/start", nil, created.AdminToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUnknownRoomIsNotFoundWithoutToken(t *testing.T) {
	ts := newTestServer(t)
	created := createRoom(t, ts, "TRUTH_ONLY", "Ana")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"start", http.MethodPost, "/api/v1/game/missing/start", nil},
		{"game mode", http.MethodPut, "/api/v1/admin/missing/game-mode", map[string]string{"game_mode": "DARE_ONLY"}},
		{"force next turn", http.MethodPost, "/api/v1/admin/missing/force-next-turn", nil},
		{"inject", http.MethodPost, "/api/v1/admin/missing/inject-question", map[string]string{"question_text": "x", "question_type": "DARE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(tt.method, tt.path, tt.body, "")
			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.Equal(t, apierr.CodeRoomNotFound, errorCode(t, rr))
		})
	}

	// The same request against a live room is refused
	rr := ts.request(http.MethodPut, "/api/v1/admin/"+created.RoomID+"/game-mode",
		map[string]string{"game_mode": "DARE_ONLY"}, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeInvalidAdminToken, errorCode(t, rr))
}

func TestQuestionRequiresActiveGame(t *testing.T) {
	ts := newTestServer(t)
	created := createRoom(t, ts, "TRUTH_ONLY", "Ana")

	rr := ts.request(http.MethodGet, "/api/v1/game/"+created.RoomID+"/question", nil, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameNotActive, errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/v1/game/"+created.RoomID+"/next-turn", nil, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestQuestionRejectsBadType(t *testing.T) {
	ts := newTestServer(t)
	created, _ := startedRoom(t, ts)

	rr := ts.request(http.MethodGet, "/api/v1/game/"+created.RoomID+"/question?type=BOTH", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidQuestionType, errorCode(t, rr))
}

func TestQuestionUsesProvider(t *testing.T) {
	ts := newTestServer(t)
	created, _ := startedRoom(t, ts)
	ts.app.Provider.Queue("What is your biggest fear?")

	rr := ts.request(http.MethodGet, "/api/v1/game/"+created.RoomID+"/question?type=truth", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	q := decode[response.Question](t, rr)
	assert.Equal(t, "What is your biggest fear?", q.Text)
	assert.Equal(t, "TRUTH", q.Type)
	assert.Equal(t, []string{question.KindTruth}, ts.app.Provider.Kinds())
}

func TestAdminRoutes(t *testing.T) {
	ts := newTestServer(t)
	created, ben := startedRoom(t, ts)
	base := "/api/v1/admin/" + created.RoomID

	// All admin routes reject a bad token
	for _, route := range []struct{ method, path string }{
		{http.MethodPost, base + "/inject-question"},
		{http.MethodPut, base + "/game-mode"},
		{http.MethodPost, base + "/force-next-turn"},
	} {
		rr := ts.request(route.method, route.path, nil, "")
		assert.Equal(t, http.StatusForbidden, rr.Code, route.path)
	}

	// Inject a targeted dare; it is current straight away
	rr := ts.request(http.MethodPost, base+"/inject-question", map[string]string{
		"question_text":    "Do ten push-ups",
		"question_type":    "DARE",
		"target_player_id": ben.PlayerID,
	}, created.AdminToken)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	injected := decode[response.Question](t, rr)
	assert.True(t, injected.AdminInjected)
	assert.Equal(t, ben.PlayerID, injected.TargetPlayerID)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/"+created.RoomCode+"/state", nil, "")
	state := decode[response.RoomState](t, rr)
	require.NotNil(t, state.CurrentQuestion)
	assert.Equal(t, injected.ID, state.CurrentQuestion.ID)
	assert.Equal(t, 1, state.PendingQuestions)

	// Unknown target
	rr = ts.request(http.MethodPost, base+"/inject-question", map[string]string{
		"question_text":    "Sing",
		"question_type":    "DARE",
		"target_player_id": "ghost",
	}, created.AdminToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Invalid type
	rr = ts.request(http.MethodPost, base+"/inject-question", map[string]string{
		"question_text": "Sing",
		"question_type": "SING",
	}, created.AdminToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Change mode
	rr = ts.request(http.MethodPut, base+"/game-mode", map[string]string{"game_mode": "TRUTH_ONLY"}, created.AdminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "TRUTH_ONLY", decode[response.RoomState](t, rr).GameMode)

	// Force next turn
	rr = ts.request(http.MethodPost, base+"/force-next-turn", nil, created.AdminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	state = decode[response.RoomState](t, rr)
	require.NotNil(t, state.CurrentPlayer)
	assert.Equal(t, ben.PlayerID, state.CurrentPlayer.ID)
}

func TestEventsStream(t *testing.T) {
	ts := newTestServer(t)
	created := createRoom(t, ts, "TRUTH_AND_DARE", "Ana")

	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	// Unknown rooms are rejected before streaming
	resp, err := http.Get(srv.URL + "/api/v1/rooms/NOPE00/events")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/rooms/"+created.RoomCode+"/events", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool {
		hub := ts.app.HubManager.GetHub(roomCode(created))
		return hub != nil && hub.ClientCount() == 1
	}, time.Second, 5*time.Millisecond)

	joinRoom(t, ts, created.RoomCode, "Ben")

	var events []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if name, ok := strings.CutPrefix(line, "event: "); ok {
			events = append(events, name)
		}
		if len(events) == 4 {
			break
		}
	}
	assert.Equal(t, []string{"connected", "ROOM_STATE", "PLAYER_JOINED", "ROOM_STATE"}, events)
}

func TestWebSocketStream(t *testing.T) {
	ts := newTestServer(t)
	created := createRoom(t, ts, "TRUTH_AND_DARE", "Ana")

	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/rooms/" + strings.ToLower(created.RoomCode) + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	defer func() { _ = conn.Close() }()

	read := func() response.Event {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		var env response.Event
		require.NoError(t, conn.ReadJSON(&env))
		return env
	}

	assert.Equal(t, "ROOM_STATE", read().EventType)

	require.Eventually(t, func() bool {
		return ts.app.WSManager.ConnCount(roomCode(created)) == 1
	}, time.Second, 5*time.Millisecond)

	joinRoom(t, ts, created.RoomCode, "Ben")
	assert.Equal(t, "PLAYER_JOINED", read().EventType)
	assert.Equal(t, "ROOM_STATE", read().EventType)
}
