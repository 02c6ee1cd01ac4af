package broadcast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/truthdare-go/internal/dependencies/mocks"
	"github.com/mcoot/truthdare-go/internal/model"
)

func TestMultiFansOut(t *testing.T) {
	a := mocks.NewMockBroadcaster()
	b := mocks.NewMockBroadcaster()
	m := NewMulti(a, nil, b)
	assert.Len(t, m, 2)

	ctx := context.Background()
	m.BroadcastEvent(ctx, "ABC123", model.Event{Type: model.EventNextTurn})
	m.BroadcastState(ctx, model.RoomSnapshot{Code: "ABC123"})
	m.RoomClosed(ctx, model.RoomSnapshot{Code: "ABC123"})

	for _, rec := range []*mocks.MockBroadcaster{a, b} {
		assert.Equal(t, []model.EventType{model.EventNextTurn}, rec.EventTypes())
		assert.Len(t, rec.States(), 1)
		assert.Equal(t, []model.RoomCode{"ABC123"}, rec.Closed())
	}
}

func TestNopAndEmptyMulti(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		Nop{}.BroadcastEvent(ctx, "ABC123", model.Event{})
		Nop{}.BroadcastState(ctx, model.RoomSnapshot{})
		NewMulti().BroadcastEvent(ctx, "ABC123", model.Event{})
	})
}
