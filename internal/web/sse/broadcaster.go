package sse

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mcoot/truthdare-go/internal/api/response"
	"github.com/mcoot/truthdare-go/internal/dependencies/clock"
	"github.com/mcoot/truthdare-go/internal/model"
	"github.com/mcoot/truthdare-go/internal/services/session"
)

var _ session.Broadcaster = (*Broadcaster)(nil)

// Broadcaster pushes room events to SSE clients. SSE event names are the
// room event types; data is the JSON envelope.
type Broadcaster struct {
	hubManager *HubManager
	clock      clock.Clock
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, clock clock.Clock, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		clock:      clock,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// BroadcastEvent sends a typed room event to the room's clients
func (b *Broadcaster) BroadcastEvent(ctx context.Context, code model.RoomCode, event model.Event) {
	hub := b.hubManager.GetHub(code)
	if hub == nil {
		return
	}
	b.send(hub, code, response.EventFromModel(event))
}

// BroadcastState sends a ROOM_STATE snapshot to the room's clients
func (b *Broadcaster) BroadcastState(ctx context.Context, snapshot model.RoomSnapshot) {
	hub := b.hubManager.GetHub(snapshot.Code)
	if hub == nil {
		return
	}
	b.send(hub, snapshot.Code, response.StateEvent(snapshot, b.clock.Now().UnixMilli()))
}

// RoomClosed disconnects the room's clients
func (b *Broadcaster) RoomClosed(ctx context.Context, snapshot model.RoomSnapshot) {
	b.hubManager.RemoveHub(snapshot.Code)
}

// StateMessage renders a snapshot as a ready-to-write SSE message
func (b *Broadcaster) StateMessage(snapshot model.RoomSnapshot) ([]byte, error) {
	data, err := json.Marshal(response.StateEvent(snapshot, b.clock.Now().UnixMilli()))
	if err != nil {
		return nil, err
	}
	return formatSSEMessage(string(model.EventRoomState), string(data)), nil
}

func (b *Broadcaster) send(hub *Hub, code model.RoomCode, envelope response.Event) {
	data, err := json.Marshal(envelope)
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("room_code", string(code)),
			slog.String("event_type", envelope.EventType),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(envelope.EventType, string(data))
}
