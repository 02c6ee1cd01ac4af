package ws

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

// Broadcaster pushes room events to websocket subscribers as JSON text
// frames
type Broadcaster struct {
	manager *Manager
	clock   clock.Clock
	logger  *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(manager *Manager, clock clock.Clock, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		manager: manager,
		clock:   clock,
		logger:  logger.With(slog.String("component", "ws-broadcaster")),
	}
}

// BroadcastEvent sends a typed room event to the room's subscribers
func (b *Broadcaster) BroadcastEvent(ctx context.Context, code model.RoomCode, event model.Event) {
	b.send(code, response.EventFromModel(event))
}

// BroadcastState sends a ROOM_STATE snapshot to the room's subscribers
func (b *Broadcaster) BroadcastState(ctx context.Context, snapshot model.RoomSnapshot) {
	b.send(snapshot.Code, response.StateEvent(snapshot, b.clock.Now().UnixMilli()))
}

// RoomClosed disconnects the room's subscribers
func (b *Broadcaster) RoomClosed(ctx context.Context, snapshot model.RoomSnapshot) {
	b.manager.CloseRoom(snapshot.Code)
}

// StateMessage renders a snapshot as a ready-to-send frame
func (b *Broadcaster) StateMessage(snapshot model.RoomSnapshot) ([]byte, error) {
	return json.Marshal(response.StateEvent(snapshot, b.clock.Now().UnixMilli()))
}

func (b *Broadcaster) send(code model.RoomCode, envelope response.Event) {
	if b.manager.ConnCount(code) == 0 {
		return
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		b.logger.Error("ws failed to encode event",
			slog.String("room_code", string(code)),
			slog.String("event_type", envelope.EventType),
			slog.Any("error", err))
		return
	}
	b.manager.Broadcast(code, data)
}
