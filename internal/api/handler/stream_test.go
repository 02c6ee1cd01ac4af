package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/truthdare-go/internal/dependencies/mocks"
	"github.com/mcoot/truthdare-go/internal/model"
	"github.com/mcoot/truthdare-go/internal/services/session"
	"github.com/mcoot/truthdare-go/internal/testutil"
	"github.com/mcoot/truthdare-go/internal/web/sse"
	"github.com/mcoot/truthdare-go/internal/web/ws"
)

// closingRoom serves the room once, then reports whatever replaced it
type closingRoom struct {
	session.OrchestratorInterface
	snap  model.RoomSnapshot
	after func() (model.RoomSnapshot, error)
	calls atomic.Int32
}

func (o *closingRoom) RoomState(ctx context.Context, code model.RoomCode) (model.RoomSnapshot, error) {
	if o.calls.Add(1) == 1 {
		return o.snap, nil
	}
	return o.after()
}

func torndown() (model.RoomSnapshot, error) {
	return model.RoomSnapshot{}, model.ErrRoomNotFound
}

func reused() (model.RoomSnapshot, error) {
	return model.RoomSnapshot{ID: "room-2", Code: "ABC123"}, nil
}

func newStreamRouter(orch session.OrchestratorInterface) (*mux.Router, *sse.HubManager, *ws.Manager) {
	logger := testutil.NopLogger()
	clock := mocks.NewMockClock(time.UnixMilli(1000))
	hubs := sse.NewHubManager(logger)
	conns := ws.NewManager(logger)
	h := NewStreamHandler(orch, hubs, sse.NewBroadcaster(hubs, clock, logger),
		conns, ws.NewBroadcaster(conns, clock, logger), logger)

	r := mux.NewRouter()
	r.HandleFunc("/rooms/{code}/events", h.Events)
	r.HandleFunc("/rooms/{code}/ws", h.WebSocket)
	return r, hubs, conns
}

func TestEvents_RoomClosedWhileSubscribing(t *testing.T) {
	tests := []struct {
		name  string
		after func() (model.RoomSnapshot, error)
	}{
		{"torn down", torndown},
		{"code reused", reused},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch := &closingRoom{snap: model.RoomSnapshot{ID: "room-1", Code: "ABC123"}, after: tt.after}
			router, hubs, _ := newStreamRouter(orch)
			t.Cleanup(hubs.CloseAll)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/rooms/abc123/events", nil))

			assert.Equal(t, http.StatusGone, rr.Code)
			hub := hubs.GetHub("ABC123")
			require.NotNil(t, hub)
			assert.Eventually(t, func() bool { return hub.ClientCount() == 0 },
				time.Second, 5*time.Millisecond)
		})
	}
}

func TestWebSocket_RoomClosedWhileSubscribing(t *testing.T) {
	orch := &closingRoom{snap: model.RoomSnapshot{ID: "room-1", Code: "ABC123"}, after: torndown}
	router, _, conns := newStreamRouter(orch)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/rooms/ABC123/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	for {
		_, _, err = conn.ReadMessage()
		if err != nil {
			break
		}
	}
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error %v", err)
	assert.Equal(t, 0, conns.ConnCount("ABC123"))
}

func TestWebSocket_LiveRoomStaysSubscribed(t *testing.T) {
	snap := model.RoomSnapshot{ID: "room-1", Code: "ABC123"}
	orch := &closingRoom{snap: snap, after: func() (model.RoomSnapshot, error) { return snap, nil }}
	router, _, conns := newStreamRouter(orch)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	t.Cleanup(conns.CloseAll)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/rooms/ABC123/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })

	assert.Eventually(t, func() bool { return conns.ConnCount("ABC123") == 1 },
		time.Second, 5*time.Millisecond)
}
