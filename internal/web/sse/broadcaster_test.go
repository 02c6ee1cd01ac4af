package sse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mcoot/truthdare-go/internal/api/response"
	"github.com/mcoot/truthdare-go/internal/dependencies/mocks"
	"github.com/mcoot/truthdare-go/internal/model"
	"github.com/mcoot/truthdare-go/internal/testutil"
)

func newTestBroadcaster() (*HubManager, *Broadcaster) {
	manager := NewHubManager(testutil.NopLogger())
	clock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	return manager, NewBroadcaster(manager, clock, testutil.NopLogger())
}

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client did not receive message")
		return ""
	}
}

// dataOf extracts the JSON payload of a single-line SSE message
func dataOf(t *testing.T, msg string) response.Event {
	t.Helper()
	for _, line := range strings.Split(msg, "\n") {
		if strings.HasPrefix(line, "data: ") {
			var env response.Event
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &env); err != nil {
				t.Fatalf("invalid envelope %q: %v", line, err)
			}
			return env
		}
	}
	t.Fatalf("no data line in %q", msg)
	return response.Event{}
}

func TestBroadcaster_BroadcastEvent(t *testing.T) {
	manager, broadcaster := newTestBroadcaster()
	hub := manager.GetOrCreateHub("ABC123")
	defer manager.RemoveHub("ABC123")
	client := NewClient(hub, "c1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.BroadcastEvent(context.Background(), "ABC123", model.Event{
		Type:      model.EventPlayerJoined,
		Timestamp: time.UnixMilli(1000),
		RoomCode:  "ABC123",
		Payload:   model.PlayerJoinedPayload{Player: model.PlayerSummary{ID: "ben", Name: "Ben", Role: model.RolePlayer}},
	})

	msg := receive(t, client)
	if !strings.HasPrefix(msg, "event: PLAYER_JOINED\n") {
		t.Errorf("unexpected event line in %q", msg)
	}
	env := dataOf(t, msg)
	if env.EventType != "PLAYER_JOINED" || env.Timestamp != 1000 {
		t.Errorf("unexpected envelope %+v", env)
	}
}

func TestBroadcaster_BroadcastState(t *testing.T) {
	manager, broadcaster := newTestBroadcaster()
	hub := manager.GetOrCreateHub("ABC123")
	defer manager.RemoveHub("ABC123")
	client := NewClient(hub, "c1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.BroadcastState(context.Background(), model.RoomSnapshot{
		ID:      "room-1",
		Code:    "ABC123",
		Mode:    model.GameModeTruthOnly,
		Status:  model.RoomStatusWaiting,
		Players: []model.PlayerSummary{{ID: "ana", Name: "Ana", Role: model.RoleAdmin}},
	})

	msg := receive(t, client)
	env := dataOf(t, msg)
	if env.EventType != "ROOM_STATE" {
		t.Errorf("EventType = %q, want ROOM_STATE", env.EventType)
	}
	data, _ := json.Marshal(env.Data)
	if !strings.Contains(string(data), `"room_code":"ABC123"`) {
		t.Errorf("state data missing room code: %s", data)
	}
}

func TestBroadcaster_NoHubIsNoop(t *testing.T) {
	manager, broadcaster := newTestBroadcaster()

	broadcaster.BroadcastEvent(context.Background(), "NOPE00", model.Event{Type: model.EventNextTurn})
	broadcaster.BroadcastState(context.Background(), model.RoomSnapshot{Code: "NOPE00"})

	if manager.GetHub("NOPE00") != nil {
		t.Error("broadcast created a hub")
	}
}

func TestBroadcaster_RoomClosedRemovesHub(t *testing.T) {
	manager, broadcaster := newTestBroadcaster()
	manager.GetOrCreateHub("ABC123")

	broadcaster.RoomClosed(context.Background(), model.RoomSnapshot{Code: "ABC123"})

	if manager.GetHub("ABC123") != nil {
		t.Error("hub still exists after RoomClosed")
	}
}

func TestServeSSE_StreamsInitialAndBroadcastMessages(t *testing.T) {
	manager, broadcaster := newTestBroadcaster()
	hub := manager.GetOrCreateHub("ABC123")
	defer manager.RemoveHub("ABC123")

	initial, err := broadcaster.StateMessage(model.RoomSnapshot{ID: "room-1", Code: "ABC123"})
	if err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeSSE(w, r, hub, "c1", nil, initial)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}

	// Wait for the client to register before broadcasting
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	broadcaster.BroadcastEvent(ctx, "ABC123", model.Event{Type: model.EventNextTurn})

	buf := make([]byte, 0, 4096)
	chunk := make([]byte, 1024)
	for !strings.Contains(string(buf), "event: NEXT_TURN") && time.Now().Before(deadline) {
		n, err := resp.Body.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if err != nil {
			break
		}
	}

	out := string(buf)
	for _, want := range []string{"event: connected", "event: ROOM_STATE", "event: NEXT_TURN"} {
		if !strings.Contains(out, want) {
			t.Errorf("stream missing %q:\n%s", want, out)
		}
	}
}
