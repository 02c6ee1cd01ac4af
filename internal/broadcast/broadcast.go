// Package broadcast combines the transports that push room updates to
// subscribers.
package broadcast

import (
	"context"

	"github.com/mcoot/truthdare-go/internal/model"
	"github.com/mcoot/truthdare-go/internal/services/session"
)

// Multi fans every call out to each broadcaster in order
type Multi []session.Broadcaster

var _ session.Broadcaster = Multi(nil)

// NewMulti builds a Multi, skipping nil entries
func NewMulti(broadcasters ...session.Broadcaster) Multi {
	m := make(Multi, 0, len(broadcasters))
	for _, b := range broadcasters {
		if b != nil {
			m = append(m, b)
		}
	}
	return m
}

func (m Multi) BroadcastEvent(ctx context.Context, code model.RoomCode, event model.Event) {
	for _, b := range m {
		b.BroadcastEvent(ctx, code, event)
	}
}

func (m Multi) BroadcastState(ctx context.Context, snapshot model.RoomSnapshot) {
	for _, b := range m {
		b.BroadcastState(ctx, snapshot)
	}
}

func (m Multi) RoomClosed(ctx context.Context, snapshot model.RoomSnapshot) {
	for _, b := range m {
		b.RoomClosed(ctx, snapshot)
	}
}

// Nop discards everything
type Nop struct{}

var _ session.Broadcaster = Nop{}

func (Nop) BroadcastEvent(ctx context.Context, code model.RoomCode, event model.Event) {}

func (Nop) BroadcastState(ctx context.Context, snapshot model.RoomSnapshot) {}

func (Nop) RoomClosed(ctx context.Context, snapshot model.RoomSnapshot) {}
