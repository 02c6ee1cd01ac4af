package session

import (
	"context"

	"github.com/mcoot/truthdare-go/internal/model"
)

// Broadcaster pushes room events and state to the room's subscribers.
// Implementations must not block on slow subscribers.
type Broadcaster interface {
	// BroadcastEvent sends a typed event to everyone watching the room
	BroadcastEvent(ctx context.Context, code model.RoomCode, event model.Event)

	// BroadcastState sends a full ROOM_STATE snapshot
	BroadcastState(ctx context.Context, snapshot model.RoomSnapshot)

	// RoomClosed is called once the room has been torn down, with the
	// room's final snapshot. Nothing is sent for the room afterwards.
	RoomClosed(ctx context.Context, snapshot model.RoomSnapshot)
}
