package factory

import (
	"context"

	"github.com/mcoot/truthdare-go/internal/model"
	"github.com/mcoot/truthdare-go/internal/services/session"
)

var _ session.Broadcaster = (*App)(nil)

// BroadcastEvent fans out to every configured transport
func (a *App) BroadcastEvent(ctx context.Context, code model.RoomCode, event model.Event) {
	a.Broadcaster.BroadcastEvent(ctx, code, event)
}

// BroadcastState fans out to every configured transport
func (a *App) BroadcastState(ctx context.Context, snapshot model.RoomSnapshot) {
	a.Broadcaster.BroadcastState(ctx, snapshot)
}

// RoomClosed fans out to every configured transport
func (a *App) RoomClosed(ctx context.Context, snapshot model.RoomSnapshot) {
	a.Broadcaster.RoomClosed(ctx, snapshot)
}
